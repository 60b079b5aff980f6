package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/bougeotte/internal/config"
	"github.com/diewo77/bougeotte/internal/generator"
	"github.com/diewo77/bougeotte/internal/handlers"
	"github.com/diewo77/bougeotte/internal/i18n"
	"github.com/diewo77/bougeotte/internal/services"
	"github.com/diewo77/bougeotte/internal/session"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, cfg config.Config) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
	}

	store := session.NewStore(db)
	gen := generator.NewService()
	docSvc := services.NewDocumentService(db, gen)
	trackSvc := services.NewTrackerService()

	pages := handlers.NewPageHandler(db, store, docSvc, trackSvc)
	docs := handlers.NewDocumentHandler(db, store, docSvc, pages)
	tracker := handlers.NewTrackerHandler(store, trackSvc)
	state := handlers.NewStateHandler(store)
	organismes := handlers.NewOrganismeHandler(db)
	adresse := handlers.NewAdresseHandler(cfg.AdresseAPIURL)

	// Pages
	app.mux.HandleFunc("GET /{$}", pages.Landing)
	app.mux.HandleFunc("GET /demenagement", pages.Form)
	app.mux.HandleFunc("GET /resultats", pages.Results)
	app.mux.HandleFunc("GET /resultats/{id}", pages.ResultDetail)

	// Documents
	app.mux.HandleFunc("POST /documents", docs.Generate)
	app.mux.HandleFunc("GET /documents/pdf", docs.PDFCombined)
	app.mux.HandleFunc("GET /documents/zip", docs.PDFArchive)
	app.mux.HandleFunc("GET /documents/{id}/pdf", docs.PDF)

	// Tracker and session state
	app.mux.HandleFunc("POST /tracker/{id}", tracker.Update)
	app.mux.HandleFunc("POST /api/state", state.Save)
	app.mux.HandleFunc("POST /session/reset", state.Reset)

	// JSON APIs
	app.mux.HandleFunc("GET /api/organismes", organismes.List)
	app.mux.HandleFunc("GET /api/adresse", adresse.Search)

	// Static files
	app.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := session.Middleware(withPreferences(a.mux))
	handler.ServeHTTP(w, r)
}

// withPreferences injects the language preference from cookie, query or the
// Accept-Language header.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
