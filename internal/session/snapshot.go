package session

import (
	"encoding/json"

	"github.com/diewo77/bougeotte/internal/models"
)

// Snapshot is the persisted wizard state for one browser. The JSON shape is
// the contract: {userData, selectedOrganismes, tracker, currentView}.
type Snapshot struct {
	UserData           models.UserProfile `json:"userData"`
	SelectedOrganismes []string           `json:"selectedOrganismes"`
	Tracker            map[string]string  `json:"tracker"`
	CurrentView        string             `json:"currentView"`
}

// NewSnapshot returns an empty snapshot with a usable tracker map.
func NewSnapshot() Snapshot {
	return Snapshot{Tracker: map[string]string{}, CurrentView: "landing"}
}

// DecodeSnapshot is deliberately forgiving: a saved blob may be missing,
// truncated, or written by an older release. Whatever fields parse are
// applied; the rest are ignored. A completely unreadable blob yields a
// fresh snapshot, never an error.
func DecodeSnapshot(raw []byte) Snapshot {
	return Merge(NewSnapshot(), raw)
}

// Merge applies the fields present in raw onto snap, field by field. Fields
// that are absent or fail to parse leave snap untouched, which makes partial
// auto-save payloads safe: a draft update cannot wipe the tracker.
func Merge(snap Snapshot, raw []byte) Snapshot {
	if snap.Tracker == nil {
		snap.Tracker = map[string]string{}
	}
	if len(raw) == 0 {
		return snap
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return snap
	}
	if v, ok := fields["userData"]; ok {
		var u models.UserProfile
		if err := json.Unmarshal(v, &u); err == nil {
			snap.UserData = u
		}
	}
	if v, ok := fields["selectedOrganismes"]; ok {
		var sel []string
		if err := json.Unmarshal(v, &sel); err == nil {
			snap.SelectedOrganismes = sel
		}
	}
	if v, ok := fields["tracker"]; ok {
		var tr map[string]string
		if err := json.Unmarshal(v, &tr); err == nil && tr != nil {
			snap.Tracker = tr
		}
	}
	if v, ok := fields["currentView"]; ok {
		var view string
		if err := json.Unmarshal(v, &view); err == nil && view != "" {
			snap.CurrentView = view
		}
	}
	return snap
}

// Encode serializes the snapshot. Marshaling a Snapshot cannot fail; the
// error return exists for symmetry with callers that persist the result.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}
