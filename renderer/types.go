package renderer

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// maxExtraDigits is the number of digits kept below the currency's minor unit.
const maxExtraDigits = 2

// CheckCurrency returns an error if code is not a known ISO 4217 currency.
func CheckCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// Price is an amount quoted in minor units of a currency, pence for GBP.
//
// A Price may be unavailable, it is then rendered as "-".
type Price struct {
	value    float64
	currency string
	valid    bool
}

// P returns a valid price.
func P(value float64, currency string) Price {
	return Price{value: value, currency: currency, valid: !math.IsNaN(value) && !math.IsInf(value, 0)}
}

// NoPrice is an unavailable price.
var NoPrice = Price{}

func (p Price) Valid() bool { return p.valid }

// String formats the price in major units, using the currency's symbol.
// Fractions of the minor unit are kept up to two digits.
func (p Price) String() string {
	if !p.valid {
		return "-"
	}
	cur := *money.New(0, p.currency).Currency()
	d := decimal.NewFromFloat(p.value).Round(maxExtraDigits)
	extra := 0
	for extra < maxExtraDigits && !d.Shift(int32(extra)).Equal(d.Shift(int32(extra)).Truncate(0)) {
		extra++
	}
	f := money.NewFormatter(cur.Fraction+extra, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(d.Shift(int32(extra)).IntPart())
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}{p.currency, decimal.NewFromFloat(p.value)})
}

// Ratio is a dimensionless indicator such as a dividend yield.
type Ratio struct {
	value float64
	valid bool
}

// R returns a valid ratio.
func R(value float64) Ratio {
	return Ratio{value: value, valid: !math.IsNaN(value) && !math.IsInf(value, 0)}
}

// NoRatio is an unavailable ratio.
var NoRatio = Ratio{}

func (r Ratio) Valid() bool { return r.valid }

// String formats the ratio with at most four decimals.
func (r Ratio) String() string {
	if !r.valid {
		return "-"
	}
	return decimal.NewFromFloat(r.value).Round(4).String()
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return decimal.NewFromFloat(r.value).MarshalJSON()
}

// Percent is a rate expressed in percent, such as a fixed dividend.
type Percent struct {
	value float64
	valid bool
}

func Pct(value float64) Percent { return Percent{value: value, valid: true} }

var NoPercent = Percent{}

func (p Percent) String() string {
	if !p.valid {
		return "-"
	}
	return decimal.NewFromFloat(p.value).String() + "%"
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return decimal.NewFromFloat(p.value).MarshalJSON()
}
