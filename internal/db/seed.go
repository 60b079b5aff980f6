package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/catalog"
	"github.com/diewo77/bougeotte/internal/models"
)

// Seed loads the static catalog into the reference tables. Existing rows are
// refreshed so catalog edits ship with a release; user data is never touched.
func Seed(conn *gorm.DB) error {
	for _, cat := range catalog.Categories {
		var existing models.Categorie
		err := conn.Where("id = ?", cat.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&cat).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		existing.Label, existing.Icon, existing.Color, existing.Position = cat.Label, cat.Icon, cat.Color, cat.Position
		if err := conn.Save(&existing).Error; err != nil {
			return err
		}
	}
	for _, org := range catalog.Organismes {
		var existing models.Organisme
		err := conn.Where("id = ?", org.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&org).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		existing.Nom = org.Nom
		existing.CategorieID = org.CategorieID
		existing.Type = org.Type
		existing.Adresse = org.Adresse
		existing.Email = org.Email
		existing.Note = org.Note
		existing.Populaire = org.Populaire
		if err := conn.Save(&existing).Error; err != nil {
			return err
		}
	}
	return nil
}
