package gbce

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTrade writes a single trade as one JSON line.
func EncodeTrade(w io.Writer, t Trade) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal trade %s: %w", t.id, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write trade: %w", err)
	}
	return nil
}

// EncodeTrades writes trades in JSONL format, one trade per line.
func EncodeTrades(w io.Writer, trades iter.Seq[Trade]) error {
	for t := range trades {
		if err := EncodeTrade(w, t); err != nil {
			return err
		}
	}
	return nil
}

// EncodeBlotter writes all the trades of the exchange in execution order.
func EncodeBlotter(w io.Writer, e *Exchange) error {
	return EncodeTrades(w, slices.Values(e.Trades()))
}
