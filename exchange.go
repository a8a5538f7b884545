package gbce

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/etnz/gbce/stats"
	"github.com/sirupsen/logrus"
)

// DefaultWindow is the trailing window used by VolumeWeightedPrice.
const DefaultWindow = 15 * time.Minute

// Exchange lists securities and records the trades made on them.
//
// An Exchange is safe for concurrent use. It is the only owner of its
// securities and its ledger: a security's last trade price changes only
// through MakeTrade.
type Exchange struct {
	mu         sync.RWMutex
	securities []*Security          // in listing order.
	index      map[string]*Security // by canonical symbol.
	ledger     *Ledger

	clock  Clock
	window time.Duration
	log    logrus.FieldLogger
}

// Option configures an Exchange.
type Option func(*Exchange)

// WithClock sets the clock used to timestamp trades and to anchor the VWSP window.
func WithClock(c Clock) Option { return func(e *Exchange) { e.clock = c } }

// WithWindow sets the trailing window of VolumeWeightedPrice.
func WithWindow(d time.Duration) Option { return func(e *Exchange) { e.window = d } }

// WithLogger sets the logger. By default the exchange logs nothing.
func WithLogger(l logrus.FieldLogger) Option { return func(e *Exchange) { e.log = l } }

// NewExchange returns an empty exchange.
func NewExchange(opts ...Option) *Exchange {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	e := &Exchange{
		securities: make([]*Security, 0),
		index:      make(map[string]*Security),
		ledger:     NewLedger(),
		clock:      SystemClock{},
		window:     DefaultWindow,
		log:        silent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Window returns the trailing window of VolumeWeightedPrice.
func (e *Exchange) Window() time.Duration { return e.window }

// AddSecurity lists a new security on the exchange.
func (e *Exchange) AddSecurity(s *Security) error {
	if s == nil {
		return fmt.Errorf("%w: security is nil", ErrInvalidArgument)
	}
	if s.symbol == "" {
		return fmt.Errorf("%w: symbol must not be empty", ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.index[s.symbol]; exists {
		return fmt.Errorf("%w: security %s is already listed on this exchange", ErrAlreadyExists, s.symbol)
	}
	e.securities = append(e.securities, s)
	e.index[s.symbol] = s
	e.log.WithFields(logrus.Fields{"symbol": s.symbol, "kind": s.kind}).Debug("security listed")
	return nil
}

// Security returns the security listed under symbol.
func (e *Exchange) Security(symbol string) (*Security, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lookup(symbol)
}

// lookup must be called with the lock held.
func (e *Exchange) lookup(symbol string) (*Security, error) {
	s, ok := e.index[CanonicalSymbol(symbol)]
	if !ok {
		return nil, fmt.Errorf("%w: security %q is not listed on this exchange", ErrNotFound, symbol)
	}
	return s, nil
}

// Len returns the number of listed securities.
func (e *Exchange) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.securities)
}

// TradeCount returns the number of trades made on the exchange.
func (e *Exchange) TradeCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Len()
}

// Securities iterates over the listed securities in listing order.
//
// The iteration works on a snapshot, securities listed meanwhile are not
// yielded.
func (e *Exchange) Securities() iter.Seq[*Security] {
	e.mu.RLock()
	snapshot := slices.Clone(e.securities)
	e.mu.RUnlock()
	return slices.Values(snapshot)
}

// Trades returns a copy of the trades accepted by all filters, in execution order.
func (e *Exchange) Trades(filters ...func(Trade) bool) []Trade {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var trades []Trade
	for _, t := range e.ledger.Trades(filters...) {
		trades = append(trades, t)
	}
	return trades
}

// DividendYield returns the dividend yield of symbol at the given market price.
func (e *Exchange) DividendYield(symbol string, price float64) (float64, error) {
	s, err := e.Security(symbol)
	if err != nil {
		return 0, err
	}
	return s.DividendYield(price)
}

// PriceEarningsRatio returns the P/E ratio of symbol at the given market price.
func (e *Exchange) PriceEarningsRatio(symbol string, price float64) (float64, error) {
	s, err := e.Security(symbol)
	if err != nil {
		return 0, err
	}
	return s.PriceEarningsRatio(price)
}

// MarketPrice returns the last trade price of symbol, zero if it has not
// traded yet.
func (e *Exchange) MarketPrice(symbol string) (float64, error) {
	s, err := e.Security(symbol)
	if err != nil {
		return 0, err
	}
	return s.Price(), nil
}

// MakeTrade records a trade on symbol, timestamped now, and sets the
// security's last trade price.
//
// Neither quantity nor price are validated.
func (e *Exchange) MakeTrade(symbol string, quantity int, direction Direction, price float64) (Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.lookup(symbol)
	if err != nil {
		return Trade{}, err
	}
	t := e.ledger.Record(s.symbol, quantity, direction, price, e.clock.Now())
	s.setPrice(price)

	e.log.WithFields(logrus.Fields{
		"id":        t.id,
		"symbol":    t.symbol,
		"direction": t.direction,
		"quantity":  t.quantity,
		"price":     t.price,
	}).Debug("trade executed")
	return t, nil
}

// VolumeWeightedPrice returns the volume weighted stock price of symbol,
// computed on the trades made within the exchange window.
func (e *Exchange) VolumeWeightedPrice(symbol string) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, err := e.lookup(symbol)
	if err != nil {
		return 0, err
	}

	now := e.clock.Now()
	var turnover, volume float64
	count := 0
	for t := range e.ledger.Within(s.symbol, e.window, now) {
		turnover += t.price * float64(t.quantity)
		volume += float64(t.quantity)
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: no trade found for %s in the previous %v", ErrNoData, s.symbol, e.window)
	}
	return turnover / volume, nil
}

// AllShareIndex returns the geometric mean of the last trade prices of all
// listed securities.
//
// Every security must have traded at least once. Otherwise the error names
// the first such security in alphabetical order. An exchange without any
// listed security has no index and returns ErrNoData.
func (e *Exchange) AllShareIndex() (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.securities) == 0 {
		return 0, fmt.Errorf("%w: no security listed on this exchange", ErrNoData)
	}

	var stale *Security
	prices := make([]float64, 0, len(e.securities))
	for _, s := range e.securities {
		p := s.Price()
		if p == 0 && (stale == nil || s.symbol < stale.symbol) {
			stale = s
		}
		prices = append(prices, p)
	}
	if stale != nil {
		return 0, fmt.Errorf("%w: the stock %s is listed as having a zero market price", ErrStaleData, stale.symbol)
	}
	return stats.GeometricMean(prices...), nil
}
