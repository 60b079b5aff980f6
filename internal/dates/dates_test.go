package dates

import (
	"testing"
	"time"
)

func TestFormatLong(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2025-06-14", "14 juin 2025"},
		{"2025-01-01", "1 janvier 2025"},
		{"2024-08-05", "5 août 2024"},
		{"2026-12-31", "31 décembre 2026"},
	}
	for _, c := range cases {
		if got := FormatLong(c.in); got != c.want {
			t.Errorf("FormatLong(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatLongInvalidInputPassesThrough(t *testing.T) {
	for _, in := range []string{"", "pas-une-date", "2025-13-40"} {
		if got := FormatLong(in); got != in {
			t.Errorf("FormatLong(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestFormat(t *testing.T) {
	d := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)
	if got := Format(d); got != "3 février 2025" {
		t.Errorf("Format = %q", got)
	}
}
