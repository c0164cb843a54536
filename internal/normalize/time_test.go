package normalize

import (
	"strings"
	"testing"
)

func TestCorrectTimeIdempotence(t *testing.T) {
	n := New(sessionWindow())

	// A valid in-window time is never altered.
	for _, in := range []string{"09:15:00", "10:30:45", "15:30:00", "9:25:00"} {
		c, warn, ok := n.correctTime(in)
		if !ok {
			t.Fatalf("correctTime(%q) unexpectedly failed", in)
		}
		if warn != "" {
			t.Errorf("correctTime(%q) produced warning %q, want none", in, warn)
		}
		if got, again, _ := n.correctTime(c.String()); got != c || again != "" {
			t.Errorf("correctTime not idempotent for %q: %s (%q)", in, got, again)
		}
	}
}

func TestCorrectTimeSubstitutions(t *testing.T) {
	n := New(sessionWindow())

	tests := []struct {
		in   string
		want string
	}{
		{"O9:25:00", "09:25:00"}, // O misread for 0
		{"1O:3O", "10:30:00"},
		{"l2:00:00", "12:00:00"}, // l misread for 1
		{"09:2S:00", "09:25:00"},
		{"1Z:15", "12:15:00"},
		{"0:25", "09:25:00"},  // dropped leading 9
		{"1:30", "13:30:00"},  // afternoon time without the 12-hour offset
		{"2:45:10", "14:45:10"},
	}

	for _, tt := range tests {
		c, warn, ok := n.correctTime(tt.in)
		if !ok {
			t.Errorf("correctTime(%q) failed", tt.in)
			continue
		}
		if c.String() != tt.want {
			t.Errorf("correctTime(%q) = %s, want %s", tt.in, c, tt.want)
		}
		if !strings.Contains(warn, "corrected time") {
			t.Errorf("correctTime(%q) warning = %q, want a correction note", tt.in, warn)
		}
	}
}

func TestCorrectTimeOutOfWindowKeepsBestEffort(t *testing.T) {
	n := New(sessionWindow())

	// 17:45 parses fine but no correction lands inside the session; the value
	// is flagged and retained.
	c, warn, ok := n.correctTime("17:45:00")
	if !ok {
		t.Fatal("expected best-effort result")
	}
	if c.String() != "17:45:00" {
		t.Errorf("best-effort time = %s, want 17:45:00", c)
	}
	if !strings.Contains(warn, "outside trading hours") {
		t.Errorf("warning = %q, want an out-of-window flag", warn)
	}
}

func TestCorrectTimeUnparseable(t *testing.T) {
	n := New(sessionWindow())

	for _, in := range []string{"", "??:??", "banana"} {
		if _, _, ok := n.correctTime(in); ok {
			t.Errorf("correctTime(%q) = ok, want failure", in)
		}
	}
}
