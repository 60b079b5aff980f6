package i18n

import (
	"context"
	"strings"
)

type langKey struct{}

// WithLang returns a new context carrying the given language code.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext retrieves the language from context, defaulting to "fr".
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return "fr"
}

// DetectLanguage picks a supported language from an Accept-Language header.
// French is the product default.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if strings.HasPrefix(h, "en") {
		return "en"
	}
	return "fr"
}

var translations = map[string]map[string]string{
	"fr": {
		"required":            "Requis",
		"invalid_date":        "Date invalide",
		"app_tagline":         "Votre changement d'adresse, sans rien oublier",
		"nav_home":            "Accueil",
		"nav_form":            "Mon déménagement",
		"nav_results":         "Mes documents",
		"cta_start":           "Commencer",
		"step_identity":       "Identité",
		"step_addresses":      "Adresses",
		"step_organismes":     "Organismes",
		"btn_next":            "Suivant",
		"btn_prev":            "Précédent",
		"btn_generate":        "Générer mes documents",
		"search_organisme":    "Rechercher un organisme...",
		"select_popular":      "Les plus courants",
		"select_all":          "Tout sélectionner",
		"deselect_all":        "Tout désélectionner",
		"selected_count":      "organisme(s) sélectionné(s)",
		"results_ready":       "Vos documents sont prêts !",
		"download_all":        "Télécharger tous les PDF",
		"download_zip":        "Télécharger en fichiers séparés (zip)",
		"new_session":         "Nouveau déménagement",
		"status_pending":      "À envoyer",
		"status_sent":         "Envoyé",
		"status_completed":    "Confirmé",
		"progress_label":      "Avancement global",
		"courriers":           "Courrier(s)",
		"emails":              "Email(s)",
		"completion":          "Complété",
		"view_document":       "Voir",
		"download_pdf":        "PDF",
		"send_email":          "Email",
		"copy_text":           "Copier",
		"no_documents":        "Aucun document généré pour le moment.",
		"select_one_organism": "Veuillez sélectionner au moins un organisme.",
	},
	"en": {
		"required":            "Required",
		"invalid_date":        "Invalid date",
		"app_tagline":         "Your change of address, nothing forgotten",
		"nav_home":            "Home",
		"nav_form":            "My move",
		"nav_results":         "My documents",
		"cta_start":           "Get started",
		"step_identity":       "Identity",
		"step_addresses":      "Addresses",
		"step_organismes":     "Organizations",
		"btn_next":            "Next",
		"btn_prev":            "Back",
		"btn_generate":        "Generate my documents",
		"search_organisme":    "Search an organization...",
		"select_popular":      "Most common",
		"select_all":          "Select all",
		"deselect_all":        "Deselect all",
		"selected_count":      "organization(s) selected",
		"results_ready":       "Your documents are ready!",
		"download_all":        "Download all PDFs",
		"download_zip":        "Download as separate files (zip)",
		"new_session":         "New move",
		"status_pending":      "To send",
		"status_sent":         "Sent",
		"status_completed":    "Confirmed",
		"progress_label":      "Overall progress",
		"courriers":           "Letter(s)",
		"emails":              "Email(s)",
		"completion":          "Done",
		"view_document":       "View",
		"download_pdf":        "PDF",
		"send_email":          "Email",
		"copy_text":           "Copy",
		"no_documents":        "No documents generated yet.",
		"select_one_organism": "Please select at least one organization.",
	},
}

// T translates a code for the given language. Unknown languages fall back to
// French; unknown codes fall back to the code itself so templates never break.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if lang != "fr" {
		if s, ok := translations["fr"][code]; ok {
			return s
		}
	}
	return code
}
