package handlers

import (
	"log"
	"net/http"

	"github.com/diewo77/bougeotte/internal/httpx"
	"github.com/diewo77/bougeotte/internal/services"
	"github.com/diewo77/bougeotte/internal/session"
)

// TrackerHandler mutates per-organization follow-up statuses.
type TrackerHandler struct {
	store   *session.Store
	tracker *services.TrackerService
}

func NewTrackerHandler(store *session.Store, tracker *services.TrackerService) *TrackerHandler {
	return &TrackerHandler{store: store, tracker: tracker}
}

// Update: POST /tracker/{id} – toggle a status button. Clicking the active
// status reverts the entry to pending.
func (h *TrackerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	statut := r.FormValue("statut")
	if !h.tracker.ValidStatus(statut) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}

	token, ok := session.TokenFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "no_session", nil)
		return
	}
	snap := h.store.Load(token)
	current, tracked := snap.Tracker[id]
	if !tracked {
		http.NotFound(w, r)
		return
	}

	snap.Tracker[id] = h.tracker.Toggle(current, statut)
	if err := h.store.Save(token, snap); err != nil {
		log.Printf("session save failed: %v", err)
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"statut":   snap.Tracker[id],
			"progress": h.tracker.Progress(snap.Tracker, len(snap.SelectedOrganismes)),
		})
		return
	}
	http.Redirect(w, r, "/resultats", http.StatusSeeOther)
}
