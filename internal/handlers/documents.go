package handlers

import (
	"archive/zip"
	"bytes"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/httpx"
	"github.com/diewo77/bougeotte/internal/models"
	"github.com/diewo77/bougeotte/internal/pdf"
	"github.com/diewo77/bougeotte/internal/services"
	"github.com/diewo77/bougeotte/internal/session"
	"github.com/diewo77/bougeotte/internal/validation"
	"github.com/diewo77/bougeotte/internal/view"
)

// DocumentHandler owns generation and PDF downloads.
type DocumentHandler struct {
	db    *gorm.DB
	store *session.Store
	docs  *services.DocumentService
	pages *PageHandler
}

func NewDocumentHandler(db *gorm.DB, store *session.Store, docs *services.DocumentService, pages *PageHandler) *DocumentHandler {
	return &DocumentHandler{db: db, store: store, docs: docs, pages: pages}
}

// Generate: POST /documents – validate the wizard form, build the profile,
// initialize the tracker and land on the results view.
func (h *DocumentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}

	profile := models.UserProfile{
		Prenom:           trimmed(r, "prenom"),
		Nom:              trimmed(r, "nom"),
		Ville:            trimmed(r, "ville"),
		DateDemenagement: r.FormValue("date_demenagement"),
		AncienneAdresse:  trimmed(r, "ancienne_adresse"),
		NouvelleAdresse:  trimmed(r, "nouvelle_adresse"),
	}
	selection := r.Form["organismes"]

	v := make(validation.Violations)
	validation.Required("prenom", profile.Prenom, v)
	validation.Required("nom", profile.Nom, v)
	validation.Required("ville", profile.Ville, v)
	validation.Required("date_demenagement", profile.DateDemenagement, v)
	validation.ISODate("date_demenagement", profile.DateDemenagement, v)
	validation.Required("ancienne_adresse", profile.AncienneAdresse, v)
	validation.Required("nouvelle_adresse", profile.NouvelleAdresse, v)
	if len(selection) == 0 {
		v["organismes"] = "required"
	}

	if !v.Empty() {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		h.rerenderForm(w, r, profile, selection, v)
		return
	}

	// keep only ids the catalog knows; checked order is preserved
	orgs := h.docs.SelectedOrganismes(selection)
	if len(orgs) == 0 {
		v["organismes"] = "required"
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		h.rerenderForm(w, r, profile, selection, v)
		return
	}

	snap := session.NewSnapshot()
	snap.UserData = profile
	for _, org := range orgs {
		snap.SelectedOrganismes = append(snap.SelectedOrganismes, org.ID)
		snap.Tracker[org.ID] = services.StatusPending
	}
	snap.CurrentView = "results"

	if token, ok := session.TokenFromContext(r.Context()); ok {
		if err := h.store.Save(token, snap); err != nil {
			// degraded mode: the results page will come up empty on the next
			// visit, but this request can still answer
			log.Printf("session save failed: %v", err)
		}
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{"documents": len(orgs)})
		return
	}
	http.Redirect(w, r, "/resultats", http.StatusSeeOther)
}

// PDF: GET /documents/{id}/pdf – one letter as an attachment.
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap := h.loadSnapshot(r)
	for _, d := range h.docs.FromSnapshot(snap) {
		if d.Organisme.ID != id {
			continue
		}
		data, err := pdf.Letter(d.Courrier, d.Organisme, snap.UserData, time.Now())
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
			return
		}
		serveAttachment(w, pdf.LetterFilename(d.Organisme.ID), data)
		return
	}
	http.NotFound(w, r)
}

// PDFCombined: GET /documents/pdf – every letter in one file.
func (h *DocumentHandler) PDFCombined(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(r)
	docs := h.docs.FromSnapshot(snap)
	if len(docs) == 0 {
		http.NotFound(w, r)
		return
	}
	data, err := pdf.Combined(docs, snap.UserData)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	serveAttachment(w, pdf.CombinedFilename, data)
}

// PDFArchive: GET /documents/zip – the letters as individual PDF files in
// one zip archive, for users who print and post each one separately.
func (h *DocumentHandler) PDFArchive(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(r)
	docs := h.docs.FromSnapshot(snap)
	if len(docs) == 0 {
		http.NotFound(w, r)
		return
	}

	now := time.Now()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range docs {
		data, err := pdf.Letter(d.Courrier, d.Organisme, snap.UserData, now)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
			return
		}
		f, err := zw.Create(pdf.LetterFilename(d.Organisme.ID))
		if err == nil {
			_, err = f.Write(data)
		}
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "archive_failed", nil)
			return
		}
	}
	if err := zw.Close(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "archive_failed", nil)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.ArchiveFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *DocumentHandler) rerenderForm(w http.ResponseWriter, r *http.Request, profile models.UserProfile, selection []string, v validation.Violations) {
	selected := map[string]bool{}
	for _, id := range selection {
		selected[id] = true
	}
	err := view.Render(w, r, "form.html", map[string]any{
		"Groups":   h.pages.catalogGroups(),
		"Profile":  profile,
		"Selected": selected,
		"Count":    len(selection),
		"Errors":   v,
	})
	if err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *DocumentHandler) loadSnapshot(r *http.Request) session.Snapshot {
	token, ok := session.TokenFromContext(r.Context())
	if !ok {
		return session.NewSnapshot()
	}
	return h.store.Load(token)
}

func serveAttachment(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func trimmed(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}
