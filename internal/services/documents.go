package services

import (
	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/generator"
	"github.com/diewo77/bougeotte/internal/models"
	"github.com/diewo77/bougeotte/internal/session"
)

// DocumentService turns a session snapshot back into the full document list.
// Documents are never stored: regenerating from the same snapshot and date
// is idempotent, so the snapshot is the only state.
type DocumentService struct {
	db  *gorm.DB
	gen *generator.Service
}

func NewDocumentService(db *gorm.DB, gen *generator.Service) *DocumentService {
	return &DocumentService{db: db, gen: gen}
}

// FromSnapshot loads the selected organizations (snapshot order preserved,
// unknown ids skipped), generates every document, and applies the tracker.
func (s *DocumentService) FromSnapshot(snap session.Snapshot) []models.Document {
	orgs := s.SelectedOrganismes(snap.SelectedOrganismes)
	docs := s.gen.BuildAll(orgs, snap.UserData, s.categoriesByID())
	for i := range docs {
		if st, ok := snap.Tracker[docs[i].Organisme.ID]; ok && st != "" {
			docs[i].Statut = st
		}
	}
	return docs
}

// SelectedOrganismes resolves ids against the catalog, keeping input order.
func (s *DocumentService) SelectedOrganismes(ids []string) []models.Organisme {
	if len(ids) == 0 {
		return nil
	}
	var rows []models.Organisme
	s.db.Where("id IN ?", ids).Find(&rows)
	byID := make(map[string]models.Organisme, len(rows))
	for _, o := range rows {
		byID[o.ID] = o
	}
	ordered := make([]models.Organisme, 0, len(ids))
	for _, id := range ids {
		if o, ok := byID[id]; ok {
			ordered = append(ordered, o)
		}
	}
	return ordered
}

func (s *DocumentService) categoriesByID() map[string]models.Categorie {
	var cats []models.Categorie
	s.db.Find(&cats)
	m := make(map[string]models.Categorie, len(cats))
	for _, c := range cats {
		m[c.ID] = c
	}
	return m
}
