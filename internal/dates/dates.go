// Package dates renders calendar dates the way French postal mail expects
// them ("14 juin 2025", no zero padding).
package dates

import (
	"fmt"
	"time"
)

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Format renders a time as a French long-form date.
func Format(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatLong parses an ISO calendar date ("2025-06-14") and renders it in
// long form. Unparseable input is returned unchanged rather than failing:
// the generated text degrades, the generation never does.
func FormatLong(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return Format(t)
}

// Today renders the current date in long form.
func Today() string {
	return Format(time.Now())
}
