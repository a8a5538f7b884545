package gbce

import (
	"iter"
	"time"

	"github.com/google/uuid"
)

// Ledger is the append-only record of executed trades.
//
// Trades are kept in the order they were recorded. A Ledger does not validate
// anything and is not safe for concurrent use, the Exchange takes care of
// both.
type Ledger struct {
	trades []Trade
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{trades: make([]Trade, 0)}
}

// Record appends a new trade and returns it.
func (l *Ledger) Record(symbol string, quantity int, direction Direction, price float64, timestamp time.Time) Trade {
	t := Trade{
		id:        uuid.New(),
		symbol:    symbol,
		timestamp: timestamp,
		quantity:  quantity,
		direction: direction,
		price:     price,
	}
	l.trades = append(l.trades, t)
	return t
}

// Len returns the number of recorded trades.
func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns an iterator over the trades accepted by all filters, in
// recording order.
func (l *Ledger) Trades(filters ...func(Trade) bool) iter.Seq2[int, Trade] {
	return func(yield func(int, Trade) bool) {
	next:
		for i, t := range l.trades {
			for _, filter := range filters {
				if !filter(t) {
					continue next
				}
			}
			if !yield(i, t) {
				return
			}
		}
	}
}

// Within returns the trades on symbol whose timestamp is strictly after
// now-window.
func (l *Ledger) Within(symbol string, window time.Duration, now time.Time) iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range l.Trades(BySymbol(symbol), After(now.Add(-window))) {
			if !yield(t) {
				return
			}
		}
	}
}

// AcceptAll is a filter that accepts every trade.
func AcceptAll(Trade) bool { return true }

// BySymbol returns a filter accepting trades on symbol.
func BySymbol(symbol string) func(Trade) bool {
	symbol = CanonicalSymbol(symbol)
	return func(t Trade) bool { return t.symbol == symbol }
}

// After returns a filter accepting trades strictly after since.
func After(since time.Time) func(Trade) bool {
	return func(t Trade) bool { return t.timestamp.After(since) }
}
