package renderer

import (
	"time"

	"github.com/etnz/gbce"
)

// Trades represents a blotter: a list of trades in execution order.
type Trades struct {
	// Symbol the trades were filtered on, empty for all.
	Symbol   string     `json:"symbol,omitempty"`
	Currency string     `json:"currency"`
	Rows     []TradeRow `json:"trades"`
}

// TradeRow represents a single trade.
type TradeRow struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Symbol    string `json:"symbol"`
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	Price     Price  `json:"price"`
}

// NewTrades creates a Trades struct from the exchange's trades, restricted
// to symbol unless it is empty.
func NewTrades(e *gbce.Exchange, symbol, currency string) *Trades {
	filter := gbce.AcceptAll
	if symbol != "" {
		symbol = gbce.CanonicalSymbol(symbol)
		filter = gbce.BySymbol(symbol)
	}
	t := &Trades{
		Symbol:   symbol,
		Currency: currency,
		Rows:     make([]TradeRow, 0),
	}
	for _, trade := range e.Trades(filter) {
		t.Rows = append(t.Rows, TradeRow{
			ID:        trade.ID().String(),
			Time:      trade.Timestamp().Format(time.DateTime),
			Symbol:    trade.Symbol(),
			Direction: trade.Direction().String(),
			Quantity:  trade.Quantity(),
			Price:     P(trade.Price(), currency),
		})
	}
	return t
}
