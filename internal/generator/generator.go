// Package generator builds the notification documents (postal letter, email,
// mailto link) for one organization and one move declaration. Everything here
// is a pure function of its inputs and the service clock.
package generator

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/diewo77/bougeotte/internal/dates"
	"github.com/diewo77/bougeotte/internal/models"
)

// objetCourrier selects the trailing clause of the letter subject line by
// category.
var objetCourrier = map[string]string{
	"banque":         "de mon compte bancaire",
	"assurance":      "de mon contrat d'assurance",
	"telecom":        "de mon abonnement",
	"energie":        "de mon contrat d'énergie",
	"sante":          "de mon dossier",
	"administration": "de mon dossier administratif",
	"emploi":         "de mon dossier",
	"transport":      "de mon abonnement transport",
	"logement":       "de mon dossier logement",
}

// objetEmail is the shorter variant used in the email body.
var objetEmail = map[string]string{
	"banque":    "mon compte",
	"assurance": "mon contrat",
	"telecom":   "mon abonnement",
	"energie":   "mon contrat",
	"sante":     "mon dossier santé",
	"emploi":    "mon dossier",
}

type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// NewServiceAt pins the clock, making every output reproducible. Used by
// tests and by the PDF renderer when both must agree on "today".
func NewServiceAt(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Courrier builds the formal postal letter. Optional organization fields
// (postal address, note) drop their fragment when absent; there is no
// failure path.
func (s *Service) Courrier(org models.Organisme, profile models.UserProfile) string {
	dateFormatted := dates.FormatLong(profile.DateDemenagement)

	objet, ok := objetCourrier[org.CategorieID]
	if !ok {
		objet = "de mon dossier client"
	}

	destinataire := org.Adresse
	if destinataire == "" {
		destinataire = org.Nom
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n%s\n\n", profile.Prenom, profile.Nom, profile.AncienneAdresse)
	fmt.Fprintf(&b, "%s\n\n", destinataire)
	fmt.Fprintf(&b, "%s, le %s\n\n", profile.Ville, dates.Format(s.now()))
	fmt.Fprintf(&b, "Objet : Changement d'adresse — Mise à jour %s\n\n", objet)
	b.WriteString("Madame, Monsieur,\n\n")
	fmt.Fprintf(&b, "Par la présente, je vous informe de mon changement d'adresse à compter du %s.\n\n", dateFormatted)
	fmt.Fprintf(&b, "Mon adresse actuelle :\n%s\n\n", profile.AncienneAdresse)
	fmt.Fprintf(&b, "Ma nouvelle adresse :\n%s\n\n", profile.NouvelleAdresse)
	b.WriteString("Je vous serais reconnaissant(e) de bien vouloir mettre à jour mes coordonnées dans vos fichiers afin que l'ensemble de mes correspondances et documents soient désormais adressés à ma nouvelle adresse.\n\n")
	if org.Note != "" {
		fmt.Fprintf(&b, "Note : %s\n", org.Note)
	}
	b.WriteString("Je me tiens à votre disposition pour tout complément d'information.\n\n")
	b.WriteString("Je vous prie d'agréer, Madame, Monsieur, l'expression de mes salutations distinguées.\n\n")
	fmt.Fprintf(&b, "%s %s", profile.Prenom, profile.Nom)
	return b.String()
}

// Email builds the shorter email variant.
func (s *Service) Email(org models.Organisme, profile models.UserProfile) models.Email {
	dateFormatted := dates.FormatLong(profile.DateDemenagement)

	objet, ok := objetEmail[org.CategorieID]
	if !ok {
		objet = "mon dossier client"
	}

	sujet := fmt.Sprintf("Changement d'adresse — %s %s", profile.Prenom, profile.Nom)

	var b strings.Builder
	b.WriteString("Bonjour,\n\n")
	fmt.Fprintf(&b, "Je me permets de vous contacter afin de vous informer de mon changement d'adresse, effectif à compter du %s.\n\n", dateFormatted)
	fmt.Fprintf(&b, "Ancienne adresse :\n%s\n\n", profile.AncienneAdresse)
	fmt.Fprintf(&b, "Nouvelle adresse :\n%s\n\n", profile.NouvelleAdresse)
	fmt.Fprintf(&b, "Pourriez-vous mettre à jour %s avec ces nouvelles coordonnées ?\n\n", objet)
	if org.Note != "" {
		fmt.Fprintf(&b, "Note : %s\n", org.Note)
	}
	b.WriteString("Je vous remercie par avance pour votre diligence.\n\n")
	fmt.Fprintf(&b, "Cordialement,\n%s %s", profile.Prenom, profile.Nom)

	return models.Email{Sujet: sujet, Corps: b.String()}
}

// MailtoLink builds a mailto URI for the organization's email address (empty
// address yields "mailto:?..." on purpose: the user picks a recipient in
// their mail client).
func (s *Service) MailtoLink(org models.Organisme, profile models.UserProfile) string {
	email := s.Email(org, profile)
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		org.Email, encodeComponent(email.Sujet), encodeComponent(email.Corps))
}

// BuildAll generates one Document per organization, in input order. A
// category id missing from the lookup attaches the zero category rather than
// failing.
func (s *Service) BuildAll(orgs []models.Organisme, profile models.UserProfile, categories map[string]models.Categorie) []models.Document {
	docs := make([]models.Document, 0, len(orgs))
	for _, org := range orgs {
		docs = append(docs, models.Document{
			Organisme:  org,
			Categorie:  categories[org.CategorieID],
			Courrier:   s.Courrier(org, profile),
			Email:      s.Email(org, profile),
			MailtoLink: s.MailtoLink(org, profile),
			Type:       org.Type,
			Statut:     "pending",
		})
	}
	return docs
}

// encodeComponent percent-encodes for a mailto query component. QueryEscape
// uses '+' for spaces, which mail clients do not decode; RFC 6068 wants %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
