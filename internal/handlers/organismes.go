package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/httpx"
	"github.com/diewo77/bougeotte/internal/models"
)

// OrganismeHandler exposes the catalog as JSON for the selection grid.
type OrganismeHandler struct {
	db *gorm.DB
}

func NewOrganismeHandler(db *gorm.DB) *OrganismeHandler {
	return &OrganismeHandler{db: db}
}

// List: GET /api/organismes – the full catalog grouped by category, in the
// order the grid renders it. ?populaire=1 narrows to the suggested picks.
func (h *OrganismeHandler) List(w http.ResponseWriter, r *http.Request) {
	var cats []models.Categorie
	h.db.Order("position").Find(&cats)

	type group struct {
		Categorie  models.Categorie   `json:"categorie"`
		Organismes []models.Organisme `json:"organismes"`
	}
	groups := make([]group, 0, len(cats))
	for _, cat := range cats {
		q := h.db.Where("categorie_id = ?", cat.ID).Order("nom")
		if r.URL.Query().Get("populaire") == "1" {
			q = q.Where("populaire = ?", true)
		}
		var orgs []models.Organisme
		q.Find(&orgs)
		if len(orgs) == 0 {
			continue
		}
		groups = append(groups, group{Categorie: cat, Organismes: orgs})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": groups})
}
