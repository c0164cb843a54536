package types

import (
	"fmt"
	"time"
)

// clock layouts tried in order when parsing screenshot times.
var clockLayouts = []string{"15:04:05", "15:04"}

// Clock is a time-of-day within a single trading session. All orders from one
// screenshot share a session, so values are anchored to the zero date and
// compare directly. Marshals as "HH:MM:SS".
type Clock struct {
	t time.Time
}

func ClockOf(hour, min, sec int) Clock {
	return Clock{time.Date(0, time.January, 1, hour, min, sec, 0, time.UTC)}
}

// ParseClock parses an HH:MM or HH:MM:SS value. Single-digit hours are
// accepted the way brokers print them ("9:25:00").
func ParseClock(s string) (Clock, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{t}, nil
		}
	}
	return Clock{}, fmt.Errorf("unparseable clock value %q", s)
}

func (c Clock) Hour() int           { return c.t.Hour() }
func (c Clock) Before(o Clock) bool { return c.t.Before(o.t) }
func (c Clock) After(o Clock) bool  { return c.t.After(o.t) }
func (c Clock) Equal(o Clock) bool  { return c.t.Equal(o.t) }
func (c Clock) IsZero() bool        { return c.t.IsZero() }

// AddHours shifts the clock forward, used by the normalizer's 12-hour
// correction. Wraps within the day.
func (c Clock) AddHours(h int) Clock {
	return ClockOf((c.t.Hour()+h)%24, c.t.Minute(), c.t.Second())
}

func (c Clock) String() string {
	return c.t.Format("15:04:05")
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("clock value must be a string, got %s", string(b))
	}
	parsed, err := ParseClock(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
