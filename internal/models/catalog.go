package models

import "time"

// Catalog reference data. Rows are seeded at boot and treated as read-only
// afterwards; identity is the human-readable id ("edf", "banque", ...).

type Categorie struct {
	ID       string `gorm:"primaryKey;size:40" json:"id"`
	Label    string `gorm:"not null" json:"label"`
	Icon     string `json:"icon"`
	Color    string `json:"color"` // CSS accent, ex: "#6366f1"
	Position int    `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Organisme struct {
	ID          string    `gorm:"primaryKey;size:60" json:"id"`
	Nom         string    `gorm:"not null;index" json:"nom"`
	CategorieID string    `gorm:"not null;size:40;index" json:"categorie"`
	Categorie   Categorie `gorm:"foreignKey:CategorieID" json:"-"`
	// Type indique le canal privilégié: "email" ou "courrier".
	Type      string `gorm:"not null;size:10" json:"type"`
	Adresse   string `json:"adresse,omitempty"` // adresse postale, multi-ligne
	Email     string `json:"email,omitempty"`
	Note      string `json:"note,omitempty"` // consigne particulière (délai, pièce à joindre...)
	Populaire bool   `gorm:"not null;default:false" json:"populaire"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
