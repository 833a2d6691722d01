package view

import "time"

// Clock supplies "now" to time-relative derivations. Production
// code passes a sampled clock that ticks once a minute; tests pass
// a fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// DateOf formats an instant as the ISO date in its own location.
// Local time, not UTC: near midnight the two disagree and the
// operator works in local time.
func DateOf(t time.Time) string { return t.Format("2006-01-02") }

// TimeOf formats an instant as a zero-padded HH:MM clock reading.
func TimeOf(t time.Time) string { return t.Format("15:04") }
