package gbce

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeTrade(t *testing.T) {
	clock := newFakeClock()
	e := newSampleExchange(t, WithClock(clock))
	tr := mustTrade(t, e, "gin", 12, Sell, 101.25)

	var b bytes.Buffer
	if err := EncodeTrade(&b, tr); err != nil {
		t.Fatalf("EncodeTrade() unexpected error: %v", err)
	}

	want := `{"id":"` + tr.ID().String() + `","timestamp":"2025-03-14T09:30:00Z","symbol":"GIN","direction":"sell","quantity":12,"price":101.25}` + "\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeTrade() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeTrade_NonFinitePrice(t *testing.T) {
	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		e := newSampleExchange(t, WithClock(newFakeClock()))
		tr := mustTrade(t, e, "TEA", 1, Buy, price)

		var b bytes.Buffer
		err := EncodeTrade(&b, tr)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("EncodeTrade(price=%v) error = %v, want %v", price, err, ErrInvalidArgument)
		}
		if b.Len() != 0 {
			t.Errorf("EncodeTrade(price=%v) wrote %q, want nothing", price, b.String())
		}
	}
}

func TestEncodeBlotter(t *testing.T) {
	e := newSampleExchange(t, WithClock(newFakeClock()))
	mustTrade(t, e, "TEA", 5, Buy, 10)
	mustTrade(t, e, "POP", 7, Sell, 0.1)
	mustTrade(t, e, "TEA", 25, Sell, 60)

	var b bytes.Buffer
	if err := EncodeBlotter(&b, e); err != nil {
		t.Fatalf("EncodeBlotter() unexpected error: %v", err)
	}

	type line struct {
		Symbol    string  `json:"symbol"`
		Direction string  `json:"direction"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
	}
	var got []line
	scanner := bufio.NewScanner(strings.NewReader(b.String()))
	for scanner.Scan() {
		var l line
		if err := json.Unmarshal(scanner.Bytes(), &l); err != nil {
			t.Fatalf("line %q is not valid JSON: %v", scanner.Text(), err)
		}
		got = append(got, l)
	}

	want := []line{
		{"TEA", "buy", 5, 10},
		{"POP", "sell", 7, 0.1},
		{"TEA", "sell", 25, 60},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeBlotter() mismatch (-want +got):\n%s", diff)
	}
}
