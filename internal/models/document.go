package models

// UserProfile is the move declaration built from the wizard form. Never
// persisted as columns; it travels inside the session snapshot.
type UserProfile struct {
	Prenom           string `json:"prenom"`
	Nom              string `json:"nom"`
	AncienneAdresse  string `json:"ancienneAdresse"`
	NouvelleAdresse  string `json:"nouvelleAdresse"`
	DateDemenagement string `json:"dateDemenagement"` // ISO, ex: "2025-06-14"
	Ville            string `json:"ville"`
}

// Email is the short notification variant of a generated document.
type Email struct {
	Sujet string `json:"sujet"`
	Corps string `json:"corps"`
}

// Document is a generated notification for one organization. Recomputed from
// the snapshot on demand; generation is idempotent for a fixed profile and
// date, so nothing here is stored.
type Document struct {
	Organisme  Organisme `json:"organisme"`
	Categorie  Categorie `json:"categorie"`
	Courrier   string    `json:"courrier"`
	Email      Email     `json:"email"`
	MailtoLink string    `json:"mailtoLink"`
	Type       string    `json:"type"`
	Statut     string    `json:"statut"` // pending, sent, completed
}
