// Package pdf lays out generated letters on A4 pages. The layout is a fixed
// visual template: 4 mm accent bars top and bottom of every page, structured
// header blocks, wrapped body text, centered footer.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/diewo77/bougeotte/internal/dates"
	"github.com/diewo77/bougeotte/internal/models"
)

const (
	pageWidth   = 210.0
	pageHeight  = 297.0
	marginLeft  = 25.0
	marginRight = 25.0
	barHeight   = 4.0
	footerY     = 285.0

	// vertical cursor thresholds triggering a page break
	letterBreakY   = 270.0
	combinedBreakY = 275.0

	letterFooter   = "Document généré par Bougeotte — bougeotte.fr"
	combinedFooter = "Bougeotte — bougeotte.fr"

	// CombinedFilename is the fixed download name for the all-letters PDF.
	CombinedFilename = "bougeotte_tous_courriers.pdf"

	// ArchiveFilename is the download name for the zip of individual letters.
	ArchiveFilename = "bougeotte_courriers.zip"
)

// accent is the brand indigo used for bars, subject lines and titles.
var accent = [3]int{99, 102, 241}

// LetterFilename is the download name for a single letter.
func LetterFilename(orgID string) string {
	return fmt.Sprintf("changement_adresse_%s.pdf", orgID)
}

func newDoc(footer string) (*gofpdf.Fpdf, func(string) string) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetAutoPageBreak(false, 0)
	doc.SetHeaderFunc(func() {
		doc.SetFillColor(accent[0], accent[1], accent[2])
		doc.Rect(0, 0, pageWidth, barHeight, "F")
	})
	doc.SetFooterFunc(func() {
		doc.SetFont("Helvetica", "", 7)
		doc.SetTextColor(180, 180, 180)
		txt := tr(footer)
		doc.Text(pageWidth/2-doc.GetStringWidth(txt)/2, footerY, txt)
		doc.SetFillColor(accent[0], accent[1], accent[2])
		doc.Rect(0, pageHeight-barHeight, pageWidth, barHeight, "F")
	})
	return doc, tr
}

// Letter renders one formal letter. The structured header (sender, recipient,
// date, subject) is laid out from the organization and profile; the body is
// taken from the computed letter text starting at the salutation line, since
// everything above it is re-rendered structurally.
func Letter(courrier string, org models.Organisme, profile models.UserProfile, now time.Time) ([]byte, error) {
	doc, tr := newDoc(letterFooter)
	doc.AddPage()
	usable := pageWidth - marginLeft - marginRight
	y := 25.0

	// sender, top-left
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	sender := profile.Prenom + " " + profile.Nom + "\n" + profile.AncienneAdresse
	for _, line := range strings.Split(sender, "\n") {
		doc.Text(marginLeft, y, tr(line))
		y += 5
	}

	// recipient, right-aligned
	y += 5
	doc.SetTextColor(50, 50, 50)
	recipient := org.Adresse
	if recipient == "" {
		recipient = org.Nom
	}
	for _, line := range strings.Split(recipient, "\n") {
		t := tr(line)
		doc.Text(pageWidth-marginRight-doc.GetStringWidth(t), y, t)
		y += 5
	}

	// locality and date, right-aligned
	y += 10
	doc.SetTextColor(100, 100, 100)
	dateLine := tr(fmt.Sprintf("%s, le %s", profile.Ville, dates.Format(now)))
	doc.Text(pageWidth-marginRight-doc.GetStringWidth(dateLine), y, dateLine)

	// subject
	y += 15
	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(accent[0], accent[1], accent[2])
	doc.Text(marginLeft, y, tr("Objet : Changement d'adresse"))

	// separator
	y += 5
	doc.SetDrawColor(200, 200, 200)
	doc.Line(marginLeft, y, pageWidth-marginRight, y)

	// body, from the salutation onward
	y += 10
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(40, 40, 40)
	lines := strings.Split(courrier, "\n")
	start := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "Madame, Monsieur") {
			start = i
			break
		}
	}
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			y += 4
			continue
		}
		// SplitLines, not SplitText: the translator emits cp1252 bytes and
		// SplitText would index the core-font width table by rune.
		for _, wl := range doc.SplitLines([]byte(tr(line)), usable) {
			if y > letterBreakY {
				doc.AddPage()
				y = 25
				doc.SetFont("Helvetica", "", 10)
				doc.SetTextColor(40, 40, 40)
			}
			doc.Text(marginLeft, y, string(wl))
			y += 5
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// Combined renders every document as its own section, one new page per
// section after the first, with a title line in place of the structured
// header and a tighter body (font 9, 4.5 mm line step, 275 mm threshold).
func Combined(docs []models.Document, profile models.UserProfile) ([]byte, error) {
	doc, tr := newDoc(combinedFooter)
	usable := pageWidth - marginLeft - marginRight

	for _, d := range docs {
		doc.AddPage()
		y := 25.0

		doc.SetFont("Helvetica", "B", 12)
		doc.SetTextColor(accent[0], accent[1], accent[2])
		doc.Text(marginLeft, y, tr(d.Organisme.Nom))
		y += 8

		doc.SetDrawColor(200, 200, 200)
		doc.Line(marginLeft, y, pageWidth-marginRight, y)
		y += 8

		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(40, 40, 40)
		for _, line := range strings.Split(d.Courrier, "\n") {
			if strings.TrimSpace(line) == "" {
				y += 3
				continue
			}
			for _, wl := range doc.SplitLines([]byte(tr(line)), usable) {
				if y > combinedBreakY {
					doc.AddPage()
					y = 25
					doc.SetFont("Helvetica", "", 9)
					doc.SetTextColor(40, 40, 40)
				}
				doc.Text(marginLeft, y, string(wl))
				y += 4.5
			}
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
