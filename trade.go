package gbce

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the side of a trade.
type Direction int

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseDirection parses "buy" or "sell", in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: unknown trade direction %q", ErrInvalidArgument, s)
	}
}

// Trade is an executed trade. It is immutable.
type Trade struct {
	id        uuid.UUID
	symbol    string
	timestamp time.Time
	quantity  int
	direction Direction
	price     float64
}

func (t Trade) ID() uuid.UUID        { return t.id }
func (t Trade) Symbol() string       { return t.symbol }
func (t Trade) Timestamp() time.Time { return t.timestamp }
func (t Trade) Quantity() int        { return t.quantity }
func (t Trade) Direction() Direction { return t.direction }
func (t Trade) Price() float64       { return t.price }
func (t Trade) String() string {
	return fmt.Sprintf("%s %s %d @ %v", t.direction, t.symbol, t.quantity, t.price)
}

// MarshalJSON writes the trade with a stable field order.
//
// A trade with a NaN or infinite price cannot be written.
func (t Trade) MarshalJSON() ([]byte, error) {
	if math.IsNaN(t.price) || math.IsInf(t.price, 0) {
		return nil, fmt.Errorf("%w: trade price %v is not a finite number", ErrInvalidArgument, t.price)
	}
	var w jsonObjectWriter
	w.Optional("id", t.id)
	w.Append("timestamp", t.timestamp.UTC().Format(time.RFC3339Nano))
	w.Append("symbol", t.symbol)
	w.Append("direction", t.direction.String())
	w.Append("quantity", t.quantity)
	w.Append("price", decimal.NewFromFloat(t.price))
	return w.MarshalJSON()
}
