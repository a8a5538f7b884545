package gbce

import "time"

// Clock tells the exchange what time it is.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts an ordinary function to a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
