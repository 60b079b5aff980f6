package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/diewo77/bougeotte/internal/httpx"
	"github.com/diewo77/bougeotte/internal/session"
)

// StateHandler is the auto-save endpoint behind the wizard: the client posts
// partial snapshots as the user types, and a reset starts a new move.
type StateHandler struct {
	store *session.Store
}

func NewStateHandler(store *session.Store) *StateHandler {
	return &StateHandler{store: store}
}

// Save: POST /api/state – merge a partial snapshot into the saved one.
// Failures degrade to "no persistence"; the client never sees an error.
func (h *StateHandler) Save(w http.ResponseWriter, r *http.Request) {
	token, ok := session.TokenFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	snap := session.Merge(h.store.Load(token), body)
	if err := h.store.Save(token, snap); err != nil {
		log.Printf("session save failed: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset: POST /session/reset – clear selection, documents and tracker.
func (h *StateHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if token, ok := session.TokenFromContext(r.Context()); ok {
		if err := h.store.Reset(token); err != nil {
			log.Printf("session reset failed: %v", err)
		}
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
		return
	}
	http.Redirect(w, r, "/demenagement", http.StatusSeeOther)
}
