package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/httpx"
	"github.com/diewo77/bougeotte/internal/models"
	"github.com/diewo77/bougeotte/internal/services"
	"github.com/diewo77/bougeotte/internal/session"
	"github.com/diewo77/bougeotte/internal/view"
)

// CategorieGroup is one section of the selection grid.
type CategorieGroup struct {
	Categorie  models.Categorie
	Organismes []models.Organisme
}

// PageHandler serves the three wizard views: landing, form, results.
type PageHandler struct {
	db      *gorm.DB
	store   *session.Store
	docs    *services.DocumentService
	tracker *services.TrackerService
}

func NewPageHandler(db *gorm.DB, store *session.Store, docs *services.DocumentService, tracker *services.TrackerService) *PageHandler {
	return &PageHandler{db: db, store: store, docs: docs, tracker: tracker}
}

// Landing: GET /
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// Form: GET /demenagement – the three-step wizard with the saved draft
// restored, if any.
func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(r)
	selected := map[string]bool{}
	for _, id := range snap.SelectedOrganismes {
		selected[id] = true
	}
	data := map[string]any{
		"Groups":   h.catalogGroups(),
		"Profile":  snap.UserData,
		"Selected": selected,
		"Count":    len(snap.SelectedOrganismes),
	}
	if err := view.Render(w, r, "form.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// Results: GET /resultats – documents recomputed from the snapshot.
func (h *PageHandler) Results(w http.ResponseWriter, r *http.Request) {
	snap := h.loadSnapshot(r)
	if len(snap.SelectedOrganismes) == 0 {
		if httpx.WantsJSON(r) {
			httpx.JSON(w, http.StatusOK, map[string]any{"documents": []models.Document{}, "progress": 0})
			return
		}
		http.Redirect(w, r, "/demenagement", http.StatusSeeOther)
		return
	}

	docs := h.docs.FromSnapshot(snap)
	courriers := 0
	for _, d := range docs {
		if d.Type == "courrier" || d.Organisme.Adresse != "" {
			courriers++
		}
	}
	progress := h.tracker.Progress(snap.Tracker, len(docs))

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"documents": docs,
			"progress":  progress,
		})
		return
	}
	err := view.Render(w, r, "results.html", map[string]any{
		"Documents": docs,
		"Total":     len(docs),
		"Courriers": courriers,
		"Emails":    len(docs) - courriers,
		"Progress":  progress,
	})
	if err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// ResultDetail: GET /resultats/{id} – full letter and email for one document.
func (h *PageHandler) ResultDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap := h.loadSnapshot(r)
	for _, d := range h.docs.FromSnapshot(snap) {
		if d.Organisme.ID == id {
			if httpx.WantsJSON(r) {
				httpx.JSON(w, http.StatusOK, d)
				return
			}
			if err := view.Render(w, r, "document.html", map[string]any{"Doc": d}); err != nil {
				http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
			}
			return
		}
	}
	http.NotFound(w, r)
}

func (h *PageHandler) loadSnapshot(r *http.Request) session.Snapshot {
	token, ok := session.TokenFromContext(r.Context())
	if !ok {
		return session.NewSnapshot()
	}
	return h.store.Load(token)
}

func (h *PageHandler) catalogGroups() []CategorieGroup {
	var cats []models.Categorie
	h.db.Order("position").Find(&cats)
	var groups []CategorieGroup
	for _, cat := range cats {
		var orgs []models.Organisme
		h.db.Where("categorie_id = ?", cat.ID).Order("nom").Find(&orgs)
		if len(orgs) == 0 {
			continue
		}
		groups = append(groups, CategorieGroup{Categorie: cat, Organismes: orgs})
	}
	return groups
}
