package gbce

import (
	"math"
	"testing"
	"time"
)

// fakeClock is a manually driven clock.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)}
}

// sampleSecurities returns the GBCE sample listing.
func sampleSecurities() []*Security {
	return []*Security{
		NewCommon("TEA", 0, 100),
		NewCommon("POP", 8, 100),
		NewCommon("ALE", 23, 60),
		NewPreferred("GIN", 8, 100, 2),
		NewCommon("JOE", 13, 250),
	}
}

// newSampleExchange returns an exchange listing the GBCE sample.
func newSampleExchange(t *testing.T, opts ...Option) *Exchange {
	t.Helper()
	e := NewExchange(opts...)
	for _, s := range sampleSecurities() {
		if err := e.AddSecurity(s); err != nil {
			t.Fatalf("AddSecurity(%v) unexpected error: %v", s, err)
		}
	}
	return e
}

func almostEqual(a, b float64) bool {
	const epsilon = 1e-9
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
