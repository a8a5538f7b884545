package gbce

import (
	"slices"
	"testing"
	"time"
)

func TestLedger_Record(t *testing.T) {
	l := NewLedger()
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	got := l.Record("TEA", 5, Buy, 10, at)
	if got.Symbol() != "TEA" || got.Quantity() != 5 || got.Direction() != Buy || got.Price() != 10 || !got.Timestamp().Equal(at) {
		t.Errorf("Record() = %v at %v, want buy TEA 5 @ 10 at %v", got, got.Timestamp(), at)
	}
	second := l.Record("TEA", 5, Buy, 10, at)
	if got.ID() == second.ID() {
		t.Errorf("two trades share the same id %v", got.ID())
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestLedger_Within(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	l := NewLedger()
	l.Record("TEA", 1, Buy, 1, now.Add(-time.Hour))               // too old
	l.Record("TEA", 2, Buy, 2, now.Add(-window))                  // on the boundary, excluded
	l.Record("TEA", 3, Sell, 3, now.Add(-window+time.Nanosecond)) // just inside
	l.Record("POP", 4, Buy, 4, now.Add(-time.Minute))             // other symbol
	l.Record("TEA", 5, Buy, 5, now)                               // now

	var quantities []int
	for tr := range l.Within("TEA", window, now) {
		quantities = append(quantities, tr.Quantity())
	}
	if want := []int{3, 5}; !slices.Equal(quantities, want) {
		t.Errorf("Within(TEA) quantities = %v, want %v", quantities, want)
	}

	// The iterator can be stopped early.
	count := 0
	for range l.Within("TEA", window, now) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("early break yielded %d trades, want 1", count)
	}

	if got := slices.Collect(l.Within("ALE", window, now)); len(got) != 0 {
		t.Errorf("Within(ALE) = %v, want nothing", got)
	}
}

func TestLedger_Trades(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	l := NewLedger()
	l.Record("TEA", 1, Buy, 1, at)
	l.Record("POP", 2, Sell, 2, at.Add(time.Minute))
	l.Record("TEA", 3, Sell, 3, at.Add(2*time.Minute))

	testCases := []struct {
		name    string
		filters []func(Trade) bool
		want    []int
	}{
		{"no filter", nil, []int{0, 1, 2}},
		{"accept all", []func(Trade) bool{AcceptAll}, []int{0, 1, 2}},
		{"by symbol", []func(Trade) bool{BySymbol("tea")}, []int{0, 2}},
		{"by symbol and time", []func(Trade) bool{BySymbol("TEA"), After(at)}, []int{2}},
		{"nothing", []func(Trade) bool{BySymbol("GIN")}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []int
			for i := range l.Trades(tc.filters...) {
				got = append(got, i)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("Trades() indexes = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	testCases := []struct {
		input     string
		want      Direction
		expectErr bool
	}{
		{"buy", Buy, false},
		{"Buy", Buy, false},
		{"SELL", Sell, false},
		{"hold", 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseDirection(tc.input)
		if hasErr := err != nil; hasErr != tc.expectErr {
			t.Errorf("ParseDirection(%q) returned error: %v, want error: %v", tc.input, err, tc.expectErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
