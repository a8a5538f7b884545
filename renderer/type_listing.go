package renderer

import (
	"errors"
	"time"

	"github.com/etnz/gbce"
)

// Listing represents the state of an exchange: its securities, their
// indicators at the last trade price, and the All Share Index.
type Listing struct {
	// Name of the exchange.
	Name string `json:"name,omitempty"`
	// Currency prices are quoted in, in minor units.
	Currency string `json:"currency"`
	// Window used to compute the volume weighted stock prices.
	Window time.Duration `json:"window"`
	// TradeCount is the number of trades recorded so far.
	TradeCount int               `json:"tradeCount"`
	Securities []ListingSecurity `json:"securities"`
	// Index is the All Share Index, when available.
	Index Price `json:"index"`
	// IndexStatus explains why the index is not available.
	IndexStatus string `json:"indexStatus,omitempty"`
}

// ListingSecurity represents a single listed security.
//
// Indicators are computed at the last trade price, and are unavailable when
// the security has not traded yet or when they are undefined.
type ListingSecurity struct {
	Symbol        string  `json:"symbol"`
	Kind          string  `json:"type"`
	LastDividend  Price   `json:"lastDividend"`
	FixedDividend Percent `json:"fixedDividend"`
	ParValue      Price   `json:"parValue"`
	Price         Price   `json:"price"`
	DividendYield Ratio   `json:"dividendYield"`
	PERatio       Ratio   `json:"peRatio"`
	VWSP          Price   `json:"vwsp"`
}

// NewListing creates a Listing from the current state of an exchange.
func NewListing(name string, e *gbce.Exchange, currency string) *Listing {
	l := &Listing{
		Name:       name,
		Currency:   currency,
		Window:     e.Window(),
		TradeCount: e.TradeCount(),
		Securities: make([]ListingSecurity, 0),
		Index:      NoPrice,
	}

	for s := range e.Securities() {
		row := ListingSecurity{
			Symbol:        s.Symbol(),
			Kind:          s.Kind().String(),
			LastDividend:  P(s.LastDividend(), currency),
			FixedDividend: NoPercent,
			ParValue:      P(s.ParValue(), currency),
			Price:         NoPrice,
			DividendYield: NoRatio,
			PERatio:       NoRatio,
			VWSP:          NoPrice,
		}
		if s.Kind() == gbce.Preferred {
			row.FixedDividend = Pct(s.FixedDividend())
		}
		if s.Traded() {
			price := s.Price()
			row.Price = P(price, currency)
			if dy, err := s.DividendYield(price); err == nil {
				row.DividendYield = R(dy)
			}
			if pe, err := s.PriceEarningsRatio(price); err == nil {
				row.PERatio = R(pe)
			}
		}
		if vwsp, err := e.VolumeWeightedPrice(s.Symbol()); err == nil {
			row.VWSP = P(vwsp, currency)
		}
		l.Securities = append(l.Securities, row)
	}

	index, err := e.AllShareIndex()
	switch {
	case err == nil:
		l.Index = P(index, currency)
	case errors.Is(err, gbce.ErrNoData):
		l.IndexStatus = "no security listed"
	case errors.Is(err, gbce.ErrStaleData):
		l.IndexStatus = "not available until every security has traded"
	default:
		l.IndexStatus = err.Error()
	}
	return l
}
