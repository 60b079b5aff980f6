package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/db"
	"github.com/diewo77/bougeotte/internal/generator"
	"github.com/diewo77/bougeotte/internal/models"
	"github.com/diewo77/bougeotte/internal/services"
	"github.com/diewo77/bougeotte/internal/session"
)

var testDBCounter int

// setupTestDB creates an in-memory SQLite database seeded with the catalog.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBCounter)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := conn.AutoMigrate(&models.Categorie{}, &models.Organisme{}, &models.MoveSession{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	return conn
}

type testApp struct {
	db      *gorm.DB
	store   *session.Store
	docs    *DocumentHandler
	pages   *PageHandler
	tracker *TrackerHandler
	state   *StateHandler
}

func newTestApp(t *testing.T) *testApp {
	conn := setupTestDB(t)
	store := session.NewStore(conn)
	gen := generator.NewService()
	docSvc := services.NewDocumentService(conn, gen)
	trackSvc := services.NewTrackerService()
	pages := NewPageHandler(conn, store, docSvc, trackSvc)
	return &testApp{
		db:      conn,
		store:   store,
		docs:    NewDocumentHandler(conn, store, docSvc, pages),
		pages:   pages,
		tracker: NewTrackerHandler(store, trackSvc),
		state:   NewStateHandler(store),
	}
}

func jsonRequest(method, target, token string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Accept", "application/json")
	return req.WithContext(session.WithToken(req.Context(), token))
}

func generateForm() url.Values {
	form := url.Values{}
	form.Set("prenom", "Marie")
	form.Set("nom", "Dupont")
	form.Set("ville", "Lyon")
	form.Set("date_demenagement", "2025-07-01")
	form.Set("ancienne_adresse", "12 rue des Lilas, 75011 Paris")
	form.Set("nouvelle_adresse", "8 avenue Jean Jaurès, 69007 Lyon")
	form.Add("organismes", "edf")
	form.Add("organismes", "cpam")
	return form
}

func TestDocumentHandler_Generate_CreatesDocuments(t *testing.T) {
	app := newTestApp(t)
	token := "tok-generate"

	req := jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode())
	rr := httptest.NewRecorder()
	app.docs.Generate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	snap := app.store.Load(token)
	if got := snap.SelectedOrganismes; len(got) != 2 || got[0] != "edf" || got[1] != "cpam" {
		t.Errorf("selection not persisted in order: %v", got)
	}
	if snap.Tracker["edf"] != services.StatusPending {
		t.Errorf("tracker not initialized to pending: %v", snap.Tracker)
	}
	if snap.UserData.Prenom != "Marie" || snap.UserData.Ville != "Lyon" {
		t.Errorf("profile not persisted: %+v", snap.UserData)
	}
	if snap.CurrentView != "results" {
		t.Errorf("expected currentView results, got %q", snap.CurrentView)
	}
}

func TestDocumentHandler_Generate_Validation(t *testing.T) {
	app := newTestApp(t)

	form := generateForm()
	form.Set("prenom", "")
	form.Set("date_demenagement", "01/07/2025")

	req := jsonRequest(http.MethodPost, "/documents", "tok-invalid", form.Encode())
	rr := httptest.NewRecorder()
	app.docs.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad error payload: %v", err)
	}
	if resp.Details["prenom"] == "" {
		t.Error("expected a violation for prenom")
	}
	if resp.Details["date_demenagement"] == "" {
		t.Error("expected a violation for non-ISO date")
	}
}

func TestDocumentHandler_Generate_UnknownOrganismesSkipped(t *testing.T) {
	app := newTestApp(t)
	token := "tok-unknown"

	form := generateForm()
	form.Del("organismes")
	form.Add("organismes", "edf")
	form.Add("organismes", "nonexistent-org")

	req := jsonRequest(http.MethodPost, "/documents", token, form.Encode())
	rr := httptest.NewRecorder()
	app.docs.Generate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	snap := app.store.Load(token)
	if len(snap.SelectedOrganismes) != 1 || snap.SelectedOrganismes[0] != "edf" {
		t.Errorf("unknown id should be dropped, got %v", snap.SelectedOrganismes)
	}
}

func TestPageHandler_Results_JSON(t *testing.T) {
	app := newTestApp(t)
	token := "tok-results"

	req := jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode())
	app.docs.Generate(httptest.NewRecorder(), req)

	rr := httptest.NewRecorder()
	app.pages.Results(rr, jsonRequest(http.MethodGet, "/resultats", token, ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Documents []models.Document `json:"documents"`
		Progress  int               `json:"progress"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(resp.Documents))
	}
	if resp.Documents[0].Organisme.ID != "edf" {
		t.Errorf("selection order lost: %s", resp.Documents[0].Organisme.ID)
	}
	if !strings.Contains(resp.Documents[0].Courrier, "Marie Dupont") {
		t.Error("letter should carry the sender name")
	}
	if resp.Progress != 0 {
		t.Errorf("fresh tracker should report 0%%, got %d", resp.Progress)
	}
}

func TestPageHandler_Results_EmptySelectionRedirects(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/resultats", nil)
	req = req.WithContext(session.WithToken(req.Context(), "tok-empty"))
	rr := httptest.NewRecorder()
	app.pages.Results(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/demenagement" {
		t.Errorf("expected redirect to /demenagement, got %q", loc)
	}
}

func TestPageHandler_ResultDetail_NotFound(t *testing.T) {
	app := newTestApp(t)
	token := "tok-detail"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	req := jsonRequest(http.MethodGet, "/resultats/orange", token, "")
	req.SetPathValue("id", "orange")
	rr := httptest.NewRecorder()
	app.pages.ResultDetail(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("unselected organization should 404, got %d", rr.Code)
	}
}

func TestTrackerHandler_ToggleAndProgress(t *testing.T) {
	app := newTestApp(t)
	token := "tok-tracker"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	toggle := func(id, statut string) (string, int) {
		req := jsonRequest(http.MethodPost, "/tracker/"+id, token, "statut="+statut)
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		app.tracker.Update(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("toggle %s/%s: expected 200, got %d: %s", id, statut, rr.Code, rr.Body.String())
		}
		var resp struct {
			Statut   string `json:"statut"`
			Progress int    `json:"progress"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		return resp.Statut, resp.Progress
	}

	statut, progress := toggle("edf", "completed")
	if statut != services.StatusCompleted {
		t.Errorf("expected completed, got %s", statut)
	}
	// 1 completed of 2 selected
	if progress != 50 {
		t.Errorf("expected 50, got %d", progress)
	}

	statut, progress = toggle("cpam", "sent")
	if statut != services.StatusSent {
		t.Errorf("expected sent, got %s", statut)
	}
	// (1 + 0.5) / 2 = 75
	if progress != 75 {
		t.Errorf("expected 75, got %d", progress)
	}

	// clicking the active status reverts to pending
	statut, progress = toggle("edf", "completed")
	if statut != services.StatusPending {
		t.Errorf("expected pending after re-click, got %s", statut)
	}
	if progress != 25 {
		t.Errorf("expected 25, got %d", progress)
	}
}

func TestTrackerHandler_UnknownID(t *testing.T) {
	app := newTestApp(t)
	token := "tok-tracker-404"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	req := jsonRequest(http.MethodPost, "/tracker/orange", token, "statut=sent")
	req.SetPathValue("id", "orange")
	rr := httptest.NewRecorder()
	app.tracker.Update(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for untracked id, got %d", rr.Code)
	}
}

func TestTrackerHandler_InvalidStatus(t *testing.T) {
	app := newTestApp(t)
	req := jsonRequest(http.MethodPost, "/tracker/edf", "tok-bad-status", "statut=done")
	req.SetPathValue("id", "edf")
	rr := httptest.NewRecorder()
	app.tracker.Update(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", rr.Code)
	}
}

func TestStateHandler_SaveMergesPartial(t *testing.T) {
	app := newTestApp(t)
	token := "tok-state"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	body := `{"userData":{"prenom":"Jeanne","nom":"Dupont","ville":"Lyon","dateDemenagement":"2025-07-01","ancienneAdresse":"a","nouvelleAdresse":"b"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader(body))
	req = req.WithContext(session.WithToken(req.Context(), token))
	rr := httptest.NewRecorder()
	app.state.Save(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	snap := app.store.Load(token)
	if snap.UserData.Prenom != "Jeanne" {
		t.Errorf("profile not merged: %+v", snap.UserData)
	}
	// a draft update must not wipe the selection or the tracker
	if len(snap.SelectedOrganismes) != 2 {
		t.Errorf("selection lost on partial save: %v", snap.SelectedOrganismes)
	}
	if snap.Tracker["edf"] != services.StatusPending {
		t.Errorf("tracker lost on partial save: %v", snap.Tracker)
	}
}

func TestStateHandler_Reset(t *testing.T) {
	app := newTestApp(t)
	token := "tok-reset"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	rr := httptest.NewRecorder()
	app.state.Reset(rr, jsonRequest(http.MethodPost, "/session/reset", token, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	snap := app.store.Load(token)
	if len(snap.SelectedOrganismes) != 0 || len(snap.Tracker) != 0 {
		t.Errorf("reset should clear the snapshot: %+v", snap)
	}
}

func TestDocumentHandler_PDF(t *testing.T) {
	app := newTestApp(t)
	token := "tok-pdf"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	req := jsonRequest(http.MethodGet, "/documents/edf/pdf", token, "")
	req.SetPathValue("id", "edf")
	rr := httptest.NewRecorder()
	app.docs.PDF(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "changement_adresse_edf.pdf") {
		t.Errorf("unexpected filename: %s", cd)
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Error("body is not a PDF")
	}
}

func TestDocumentHandler_PDFArchive(t *testing.T) {
	app := newTestApp(t)
	token := "tok-zip"
	app.docs.Generate(httptest.NewRecorder(), jsonRequest(http.MethodPost, "/documents", token, generateForm().Encode()))

	rr := httptest.NewRecorder()
	app.docs.PDFArchive(rr, jsonRequest(http.MethodGet, "/documents/zip", token, ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("expected application/zip, got %s", ct)
	}
	body := rr.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("body is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected one letter per organization, got %d entries", len(zr.File))
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		head := make([]byte, 4)
		if _, err := io.ReadFull(rc, head); err != nil || string(head) != "%PDF" {
			t.Errorf("entry %s is not a PDF", f.Name)
		}
		rc.Close()
	}
	if !names["changement_adresse_edf.pdf"] || !names["changement_adresse_cpam.pdf"] {
		t.Errorf("unexpected entry names: %v", names)
	}
}

func TestDocumentHandler_PDFCombined_EmptySelection(t *testing.T) {
	app := newTestApp(t)
	rr := httptest.NewRecorder()
	app.docs.PDFCombined(rr, jsonRequest(http.MethodGet, "/documents/pdf", "tok-no-docs", ""))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 with nothing selected, got %d", rr.Code)
	}
}

func TestOrganismeHandler_List(t *testing.T) {
	app := newTestApp(t)
	handler := NewOrganismeHandler(app.db)

	rr := httptest.NewRecorder()
	handler.List(rr, httptest.NewRequest(http.MethodGet, "/api/organismes", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Categories []struct {
			Categorie  models.Categorie   `json:"categorie"`
			Organismes []models.Organisme `json:"organismes"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if len(resp.Categories) == 0 {
		t.Fatal("expected at least one category group")
	}
	if resp.Categories[0].Categorie.ID != "banque" {
		t.Errorf("groups should follow catalog position, got %s first", resp.Categories[0].Categorie.ID)
	}
	for _, g := range resp.Categories {
		if len(g.Organismes) == 0 {
			t.Errorf("empty group %s should be omitted", g.Categorie.ID)
		}
	}
}

func TestAdresseHandler_Search(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("expected limit=5, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"features":[{"properties":{"label":"8 Avenue Jean Jaurès 69007 Lyon","city":"Lyon","postcode":"69007"}}]}`)
	}))
	defer upstream.Close()

	handler := NewAdresseHandler(upstream.URL)
	rr := httptest.NewRecorder()
	handler.Search(rr, httptest.NewRequest(http.MethodGet, "/api/adresse?q=8+avenue+jean", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp adresseResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if len(resp.Features) != 1 || resp.Features[0].Properties.City != "Lyon" {
		t.Errorf("unexpected features: %+v", resp.Features)
	}
}

func TestAdresseHandler_ShortQuery(t *testing.T) {
	handler := NewAdresseHandler("http://127.0.0.1:0/never-called")
	rr := httptest.NewRecorder()
	handler.Search(rr, httptest.NewRequest(http.MethodGet, "/api/adresse?q=ab", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"features":[]`) {
		t.Errorf("short query should return empty features: %s", rr.Body.String())
	}
}

func TestAdresseHandler_UpstreamFailure(t *testing.T) {
	handler := NewAdresseHandler("http://127.0.0.1:0/unreachable")
	rr := httptest.NewRecorder()
	handler.Search(rr, httptest.NewRequest(http.MethodGet, "/api/adresse?q=rue+de+la+paix", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("failures must degrade to 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"features":[]`) {
		t.Errorf("expected empty features on failure: %s", rr.Body.String())
	}
}
