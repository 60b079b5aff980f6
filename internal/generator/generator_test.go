package generator

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/bougeotte/internal/models"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC) }
}

func testProfile() models.UserProfile {
	return models.UserProfile{
		Prenom:           "Jean",
		Nom:              "Dupont",
		Ville:            "Lyon",
		DateDemenagement: "2025-06-14",
		AncienneAdresse:  "1 rue A",
		NouvelleAdresse:  "2 rue B",
	}
}

func edf() models.Organisme {
	return models.Organisme{ID: "edf", CategorieID: "energie", Nom: "EDF", Email: "contact@edf.fr", Type: "courrier"}
}

func TestCourrierScenario(t *testing.T) {
	s := NewServiceAt(fixedClock())
	lettre := s.Courrier(edf(), testProfile())

	if !strings.Contains(lettre, "Objet : Changement d'adresse — Mise à jour de mon contrat d'énergie") {
		t.Errorf("subject line missing or wrong:\n%s", lettre)
	}
	if !strings.Contains(lettre, "à compter du 14 juin 2025") {
		t.Errorf("move date missing:\n%s", lettre)
	}
	if !strings.Contains(lettre, "Lyon, le 1 juin 2025") {
		t.Errorf("locality/date line missing:\n%s", lettre)
	}
	for _, want := range []string{"1 rue A", "2 rue B", "Madame, Monsieur,", "Jean Dupont"} {
		if !strings.Contains(lettre, want) {
			t.Errorf("letter missing %q", want)
		}
	}
}

func TestCourrierRecipientFallsBackToName(t *testing.T) {
	s := NewServiceAt(fixedClock())
	org := edf() // no postal address set
	lettre := s.Courrier(org, testProfile())
	if !strings.Contains(lettre, "\nEDF\n") {
		t.Errorf("recipient block should fall back to the organization name:\n%s", lettre)
	}

	org.Adresse = "EDF Service Clients\nTSA 20012\n41975 Blois Cedex 9"
	lettre = s.Courrier(org, testProfile())
	if !strings.Contains(lettre, "TSA 20012") {
		t.Errorf("postal address not used when present")
	}
}

func TestCourrierIsPure(t *testing.T) {
	s := NewServiceAt(fixedClock())
	a := s.Courrier(edf(), testProfile())
	b := s.Courrier(edf(), testProfile())
	if a != b {
		t.Fatal("identical inputs must yield byte-identical letters")
	}
}

func TestSubjectDefaultsPerCategory(t *testing.T) {
	s := NewServiceAt(fixedClock())
	cases := []struct {
		categorie string
		want      string
	}{
		{"banque", "de mon compte bancaire"},
		{"assurance", "de mon contrat d'assurance"},
		{"transport", "de mon abonnement transport"},
		{"inconnu", "de mon dossier client"},
		{"", "de mon dossier client"},
	}
	for _, c := range cases {
		org := models.Organisme{ID: "x", Nom: "X", CategorieID: c.categorie}
		lettre := s.Courrier(org, testProfile())
		if !strings.Contains(lettre, "Mise à jour "+c.want) {
			t.Errorf("categorie %q: want clause %q", c.categorie, c.want)
		}
	}
}

func TestEmailScenario(t *testing.T) {
	s := NewServiceAt(fixedClock())
	mail := s.Email(edf(), testProfile())

	if mail.Sujet != "Changement d'adresse — Jean Dupont" {
		t.Errorf("sujet = %q", mail.Sujet)
	}
	for _, want := range []string{"1 rue A", "2 rue B", "14 juin 2025", "mon contrat", "Cordialement,\nJean Dupont"} {
		if !strings.Contains(mail.Corps, want) {
			t.Errorf("email body missing %q:\n%s", want, mail.Corps)
		}
	}
}

func TestNoteAppearsInBothOutputsWhenPresent(t *testing.T) {
	s := NewServiceAt(fixedClock())
	org := edf()
	org.Note = "Relevez les compteurs le jour du déménagement."

	lettre := s.Courrier(org, testProfile())
	mail := s.Email(org, testProfile())
	if !strings.Contains(lettre, "Note : "+org.Note) {
		t.Error("letter should carry the note verbatim")
	}
	if !strings.Contains(mail.Corps, "Note : "+org.Note) {
		t.Error("email should carry the note verbatim")
	}

	org.Note = ""
	if strings.Contains(s.Courrier(org, testProfile()), "Note :") {
		t.Error("letter must not carry a note fragment when the note is absent")
	}
	if strings.Contains(s.Email(org, testProfile()).Corps, "Note :") {
		t.Error("email must not carry a note fragment when the note is absent")
	}
}

func TestMailtoLinkRoundTrip(t *testing.T) {
	s := NewServiceAt(fixedClock())
	link := s.MailtoLink(edf(), testProfile())

	if !strings.HasPrefix(link, "mailto:contact@edf.fr?") {
		t.Fatalf("link prefix wrong: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Error("mailto link must use %20 for spaces, not '+'")
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	mail := s.Email(edf(), testProfile())
	if q.Get("subject") != mail.Sujet {
		t.Errorf("decoded subject = %q, want %q", q.Get("subject"), mail.Sujet)
	}
	if q.Get("body") != mail.Corps {
		t.Errorf("decoded body does not round-trip")
	}
}

func TestMailtoLinkWithoutAddress(t *testing.T) {
	s := NewServiceAt(fixedClock())
	org := edf()
	org.Email = ""
	link := s.MailtoLink(org, testProfile())
	if !strings.HasPrefix(link, "mailto:?subject=") {
		t.Errorf("empty address should yield mailto:?...: %s", link)
	}
}

func TestBuildAllKeepsInputOrderAndAttachesCategories(t *testing.T) {
	s := NewServiceAt(fixedClock())
	orgs := []models.Organisme{
		{ID: "caf", Nom: "CAF", CategorieID: "administration", Type: "courrier"},
		{ID: "edf", Nom: "EDF", CategorieID: "energie", Type: "courrier"},
		{ID: "mystere", Nom: "Mystère", CategorieID: "introuvable", Type: "email"},
	}
	cats := map[string]models.Categorie{
		"administration": {ID: "administration", Label: "Administrations"},
		"energie":        {ID: "energie", Label: "Énergie & eau"},
	}

	docs := s.BuildAll(orgs, testProfile(), cats)
	if len(docs) != 3 {
		t.Fatalf("len = %d", len(docs))
	}
	for i, want := range []string{"caf", "edf", "mystere"} {
		if docs[i].Organisme.ID != want {
			t.Errorf("docs[%d] = %s, want %s (input order must be preserved)", i, docs[i].Organisme.ID, want)
		}
		if docs[i].Statut != "pending" {
			t.Errorf("docs[%d].Statut = %s", i, docs[i].Statut)
		}
	}
	if docs[1].Categorie.Label != "Énergie & eau" {
		t.Errorf("category not attached: %+v", docs[1].Categorie)
	}
	if docs[2].Categorie != (models.Categorie{}) {
		t.Errorf("missing category should stay zero, got %+v", docs[2].Categorie)
	}
}
