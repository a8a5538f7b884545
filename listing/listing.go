// Package listing reads the securities to list on an exchange from a JSON
// document.
//
// The securities are selected in the document with a JSONPath expression, so
// that a listing can be extracted from a larger document, like an exchange
// reference data file.
package listing

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/gbce"
)

// DefaultPath selects the securities of a document shaped like the sample listing.
const DefaultPath = "$.securities[*]"

//go:embed gbce.json
var sample []byte

// Entry declares a security in a listing document.
type Entry struct {
	Symbol        string  `json:"symbol"`
	Type          string  `json:"type"`
	LastDividend  float64 `json:"lastDividend"`
	FixedDividend float64 `json:"fixedDividend"` // in percent, preferred only.
	ParValue      float64 `json:"parValue"`
}

// Security creates the security declared by this entry.
func (e Entry) Security() (*gbce.Security, error) {
	if gbce.CanonicalSymbol(e.Symbol) == "" {
		return nil, fmt.Errorf("%w: missing symbol", gbce.ErrInvalidArgument)
	}
	kind := gbce.Common
	if e.Type != "" {
		var err error
		if kind, err = gbce.ParseKind(e.Type); err != nil {
			return nil, fmt.Errorf("security %s: %w", e.Symbol, err)
		}
	}
	if kind == gbce.Preferred {
		return gbce.NewPreferred(e.Symbol, e.LastDividend, e.ParValue, e.FixedDividend), nil
	}
	return gbce.NewCommon(e.Symbol, e.LastDividend, e.ParValue), nil
}

// Sample returns the Global Beverage Corporation Exchange sample listing.
func Sample() []*gbce.Security {
	secs, err := Decode(bytes.NewReader(sample), DefaultPath)
	if err != nil {
		panic("invalid embedded sample listing: " + err.Error())
	}
	return secs
}

// Load reads the listing in file.
func Load(file, path string) ([]*gbce.Security, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	secs, err := Decode(f, path)
	if err != nil {
		return nil, fmt.Errorf("invalid listing %q: %w", file, err)
	}
	return secs, nil
}

// Decode reads a JSON document and returns the securities selected by path.
//
// Every invalid entry is reported, and no security is returned in that case.
func Decode(r io.Reader, path string) ([]*gbce.Security, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode listing: %w", err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath returns a single value for a non wildcard path.
	items, ok := selected.([]any)
	if !ok {
		items = []any{selected}
	}

	var errs error
	secs := make([]*gbce.Security, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			errs = errors.Join(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		sec, err := entry.Security()
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		secs = append(secs, sec)
	}
	if errs != nil {
		return nil, errs
	}
	return secs, nil
}

// Register lists every security on the exchange. It keeps going after a
// failure and returns all the errors.
func Register(e *gbce.Exchange, secs []*gbce.Security) error {
	var errs error
	for _, s := range secs {
		errs = errors.Join(errs, e.AddSecurity(s))
	}
	return errs
}
