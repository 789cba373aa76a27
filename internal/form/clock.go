package form

import "time"

// Clock supplies the current time. The default period label depends on the
// calendar year, so the clock is injected instead of read from the system.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the real system time.
func SystemClock() Clock { return systemClock{} }

// FixedClock returns a Clock that always reports t. Used in tests.
func FixedClock(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
