package services

import "math"

// Tracker statuses. There is no forced progression: sent and completed are
// independent toggles over pending.
const (
	StatusPending   = "pending"
	StatusSent      = "sent"
	StatusCompleted = "completed"
)

// TrackerService owns the per-organization follow-up arithmetic.
type TrackerService struct{}

func NewTrackerService() *TrackerService { return &TrackerService{} }

// ValidStatus reports whether a client-supplied status is one we track.
func (s *TrackerService) ValidStatus(status string) bool {
	return status == StatusPending || status == StatusSent || status == StatusCompleted
}

// Toggle returns the next status after clicking `clicked` while in `current`:
// clicking the active status reverts to pending, anything else wins outright.
func (s *TrackerService) Toggle(current, clicked string) string {
	if current == clicked {
		return StatusPending
	}
	return clicked
}

// Progress computes the completion percentage: a sent document counts half,
// a confirmed one counts full. Zero documents means zero progress.
func (s *TrackerService) Progress(tracker map[string]string, total int) int {
	if total <= 0 {
		return 0
	}
	completed, sent := 0, 0
	for _, st := range tracker {
		switch st {
		case StatusCompleted:
			completed++
		case StatusSent:
			sent++
		}
	}
	return int(math.Round((float64(completed) + 0.5*float64(sent)) / float64(total) * 100))
}
