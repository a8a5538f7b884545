package gbce

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Kind is the valuation variant of a security.
type Kind int

const (
	// Common stock pays its last declared dividend.
	Common Kind = iota
	// Preferred stock pays a fixed percentage of its par value.
	Preferred
)

func (k Kind) String() string {
	switch k {
	case Common:
		return "common"
	case Preferred:
		return "preferred"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind. It is case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return Common, nil
	case "preferred":
		return Preferred, nil
	default:
		return 0, fmt.Errorf("%w: unknown security kind %q", ErrInvalidArgument, s)
	}
}

// CanonicalSymbol returns the canonical form of a symbol.
//
// Symbols are case insensitive, "tea", "Tea" and "TEA" are the same symbol.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Security is a stock listed on the exchange.
//
// Its static attributes are set once by NewCommon or NewPreferred. The last
// trade price starts unset (zero) and only the Exchange changes it, when a
// trade is made.
type Security struct {
	symbol        string
	kind          Kind
	lastDividend  float64
	parValue      float64
	fixedDividend float64 // in percent, preferred only.

	price atomic.Uint64 // math.Float64bits of the last trade price.
}

// NewCommon returns a common stock.
func NewCommon(symbol string, lastDividend, parValue float64) *Security {
	return &Security{
		symbol:       CanonicalSymbol(symbol),
		kind:         Common,
		lastDividend: lastDividend,
		parValue:     parValue,
	}
}

// NewPreferred returns a preferred stock paying fixedDividend percent of its par value.
func NewPreferred(symbol string, lastDividend, parValue, fixedDividend float64) *Security {
	return &Security{
		symbol:        CanonicalSymbol(symbol),
		kind:          Preferred,
		lastDividend:  lastDividend,
		parValue:      parValue,
		fixedDividend: fixedDividend,
	}
}

func (s *Security) Symbol() string         { return s.symbol }
func (s *Security) Kind() Kind             { return s.kind }
func (s *Security) LastDividend() float64  { return s.lastDividend }
func (s *Security) ParValue() float64      { return s.parValue }
func (s *Security) FixedDividend() float64 { return s.fixedDividend }

// Price returns the last trade price, or 0 if the security has never traded.
func (s *Security) Price() float64 { return math.Float64frombits(s.price.Load()) }

// Traded reports whether the security has a last trade price.
func (s *Security) Traded() bool { return s.Price() != 0 }

func (s *Security) setPrice(p float64) { s.price.Store(math.Float64bits(p)) }

// DividendYield returns the dividend yield at the given market price.
func (s *Security) DividendYield(price float64) (float64, error) {
	if err := checkPrice(price); err != nil {
		return 0, err
	}
	switch s.kind {
	case Preferred:
		return (s.fixedDividend * 0.01 * s.parValue) / price, nil
	default:
		return s.lastDividend / price, nil
	}
}

// PriceEarningsRatio returns the P/E ratio at the given market price.
//
// It is the same formula for every kind of security, and it is undefined for
// a security that has not declared any dividend.
func (s *Security) PriceEarningsRatio(price float64) (float64, error) {
	if err := checkPrice(price); err != nil {
		return 0, err
	}
	if s.lastDividend == 0 {
		return 0, fmt.Errorf("%w: cannot compute P/E ratio for %s, its last dividend is zero", ErrDomain, s.symbol)
	}
	return price / s.lastDividend, nil
}

// checkPrice rejects a zero market price. Negative prices are let through.
func checkPrice(price float64) error {
	if price == 0 {
		return fmt.Errorf("%w: price must be greater than zero, got %v", ErrInvalidArgument, price)
	}
	return nil
}

func (s *Security) String() string {
	if s.kind == Preferred {
		return fmt.Sprintf("%s (%s, dividend %v%%, par %v)", s.symbol, s.kind, s.fixedDividend, s.parValue)
	}
	return fmt.Sprintf("%s (%s, dividend %v, par %v)", s.symbol, s.kind, s.lastDividend, s.parValue)
}
