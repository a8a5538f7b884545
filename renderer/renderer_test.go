package renderer

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/etnz/gbce"
	"github.com/google/go-cmp/cmp"
)

func TestPrice_String(t *testing.T) {
	testCases := []struct {
		price Price
		want  string
	}{
		{P(60, "GBP"), "£0.60"},
		{P(0, "GBP"), "£0.00"},
		{P(123456, "GBP"), "£1,234.56"},
		{P(10.5, "GBP"), "£0.105"},
		{P(51.666666, "GBP"), "£0.5167"},
		{P(250, "EUR"), "€2.50"},
		{P(math.NaN(), "GBP"), "-"},
		{NoPrice, "-"},
	}
	for _, tc := range testCases {
		if got := tc.price.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestRatio_String(t *testing.T) {
	testCases := []struct {
		ratio Ratio
		want  string
	}{
		{R(0.8), "0.8"},
		{R(0), "0"},
		{R(10), "10"},
		{R(1.0 / 3), "0.3333"},
		{R(math.Inf(1)), "-"},
		{NoRatio, "-"},
	}
	for _, tc := range testCases {
		if got := tc.ratio.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.ratio, got, tc.want)
		}
	}
}

func TestPercent_String(t *testing.T) {
	if got, want := Pct(2).String(), "2%"; got != want {
		t.Errorf("Pct(2).String() = %q, want %q", got, want)
	}
	if got, want := NoPercent.String(), "-"; got != want {
		t.Errorf("NoPercent.String() = %q, want %q", got, want)
	}
}

func TestCheckCurrency(t *testing.T) {
	if err := CheckCurrency("GBP"); err != nil {
		t.Errorf("CheckCurrency(GBP) unexpected error: %v", err)
	}
	if err := CheckCurrency("XXXX"); err == nil {
		t.Error("CheckCurrency(XXXX) expected an error, got nil")
	}
}

// newExchange returns an exchange with TEA and GIN listed, at a fixed time.
func newExchange(t *testing.T) *gbce.Exchange {
	t.Helper()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	e := gbce.NewExchange(gbce.WithClock(gbce.ClockFunc(func() time.Time { return now })))
	for _, s := range []*gbce.Security{
		gbce.NewCommon("TEA", 0, 100),
		gbce.NewPreferred("GIN", 8, 100, 2),
	} {
		if err := e.AddSecurity(s); err != nil {
			t.Fatalf("AddSecurity(%v) unexpected error: %v", s, err)
		}
	}
	return e
}

func TestRenderListing(t *testing.T) {
	e := newExchange(t)

	got := RenderListing(NewListing("GBCE", e, "GBP"))
	for _, want := range []string{
		"# GBCE",
		"0 trades recorded, volume weighted prices over the last 15m0s.",
		"| TEA | common | £0.00 | - | £1.00 | - | - | - | - |",
		"| GIN | preferred | £0.08 | 2% | £1.00 | - | - | - | - |",
		"**All Share Index**: _not available until every security has traded_",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderListing() before trading missing %q, got:\n%s", want, got)
		}
	}

	if _, err := e.MakeTrade("TEA", 10, gbce.Buy, 120); err != nil {
		t.Fatalf("MakeTrade() unexpected error: %v", err)
	}
	if _, err := e.MakeTrade("GIN", 5, gbce.Sell, 80); err != nil {
		t.Fatalf("MakeTrade() unexpected error: %v", err)
	}

	got = RenderListing(NewListing("GBCE", e, "GBP"))
	for _, want := range []string{
		"2 trades recorded",
		"| TEA | common | £0.00 | - | £1.00 | £1.20 | 0 | - | £1.20 |",
		"| GIN | preferred | £0.08 | 2% | £1.00 | £0.80 | 0.025 | 10 | £0.80 |",
		"**All Share Index**: £0.9798",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderListing() after trading missing %q, got:\n%s", want, got)
		}
	}
}

func TestRenderListing_Empty(t *testing.T) {
	got := RenderListing(NewListing("Empty", gbce.NewExchange(), "GBP"))
	if want := "_no security listed_"; !strings.Contains(got, want) {
		t.Errorf("RenderListing() missing %q, got:\n%s", want, got)
	}
}

func TestRenderTrades(t *testing.T) {
	e := newExchange(t)

	got := RenderTrades(NewTrades(e, "", "GBP"))
	if want := "_No trades._"; !strings.Contains(got, want) {
		t.Errorf("RenderTrades() missing %q, got:\n%s", want, got)
	}

	for _, trade := range []struct {
		symbol    string
		quantity  int
		direction gbce.Direction
		price     float64
	}{
		{"TEA", 10, gbce.Buy, 120},
		{"GIN", 5, gbce.Sell, 80},
		{"tea", 2, gbce.Sell, 121.5},
	} {
		if _, err := e.MakeTrade(trade.symbol, trade.quantity, trade.direction, trade.price); err != nil {
			t.Fatalf("MakeTrade() unexpected error: %v", err)
		}
	}

	got = RenderTrades(NewTrades(e, "tea", "GBP"))
	want := `# Trades on TEA

| Time | Symbol | Direction | Quantity | Price |
|:-----|:-------|:----------|---------:|------:|
| 2025-03-14 09:30:00 | TEA | buy | 10 | £1.20 |
| 2025-03-14 09:30:00 | TEA | sell | 2 | £1.215 |
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderTrades() mismatch (-want +got):\n%s", diff)
	}
}

func TestListing_MarshalJSON(t *testing.T) {
	e := newExchange(t)
	if _, err := e.MakeTrade("GIN", 5, gbce.Sell, 80); err != nil {
		t.Fatalf("MakeTrade() unexpected error: %v", err)
	}

	data, err := json.Marshal(NewListing("GBCE", e, "GBP"))
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	var got struct {
		Index      any `json:"index"`
		Securities []struct {
			Symbol        string   `json:"symbol"`
			Price         any      `json:"price"`
			DividendYield *float64 `json:"dividendYield"`
		} `json:"securities"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if got.Index != nil {
		t.Errorf("index = %v, want null", got.Index)
	}
	if len(got.Securities) != 2 {
		t.Fatalf("got %d securities, want 2", len(got.Securities))
	}
	if tea := got.Securities[0]; tea.Price != nil || tea.DividendYield != nil {
		t.Errorf("TEA has not traded, got price %v and yield %v", tea.Price, tea.DividendYield)
	}
	if gin := got.Securities[1]; gin.DividendYield == nil || *gin.DividendYield != 0.025 {
		t.Errorf("GIN dividend yield = %v, want 0.025", gin.DividendYield)
	}
}
