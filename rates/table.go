package rates

import (
	"errors"
	"fmt"

	"go-currency-converter/domain"
)

var (
	ErrEmptyTable   = errors.New("rate table is empty")
	ErrInvalidRate  = errors.New("rate must be positive")
	ErrDuplicate    = errors.New("duplicate currency")
	ErrMissingBase  = errors.New("base currency not in table")
	ErrBaseNotUnity = errors.New("base currency rate must be 1")
)

// Entry one row of a rate table
type Entry struct {
	Code domain.Currency
	Rate domain.Rate
}

// Table a fixed set of exchange rates relative to a base currency.
// A Table is never mutated after construction and is safe to share.
type Table struct {
	// base the currency mapped to rate 1
	base domain.Currency

	// codes supported currencies in display order
	codes []domain.Currency

	// rates maps a currency code to its rate against base
	rates domain.Rates
}

// NewTable constructs a valid Table. Entries keep their order for display.
func NewTable(base domain.Currency, entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	base = domain.NormalizeCurrency(string(base))
	t := &Table{
		base:  base,
		codes: make([]domain.Currency, 0, len(entries)),
		rates: make(domain.Rates, len(entries)),
	}
	for _, e := range entries {
		code := domain.NormalizeCurrency(string(e.Code))
		if code == "" {
			return nil, fmt.Errorf("entry %d: empty currency code", len(t.codes))
		}
		if !(e.Rate > 0) {
			return nil, fmt.Errorf("%v [%v]: %w", code, e.Rate, ErrInvalidRate)
		}
		if _, ok := t.rates[code]; ok {
			return nil, fmt.Errorf("%v: %w", code, ErrDuplicate)
		}
		t.rates[code] = e.Rate
		t.codes = append(t.codes, code)
	}

	rate, ok := t.rates[base]
	if !ok {
		return nil, fmt.Errorf("%v: %w", base, ErrMissingBase)
	}
	if rate != 1 {
		return nil, fmt.Errorf("%v [%v]: %w", base, rate, ErrBaseNotUnity)
	}

	return t, nil
}

// DefaultBase the base currency of the built-in table
const DefaultBase domain.Currency = "PKR"

// DefaultEntries the built-in rates, PKR based
func DefaultEntries() []Entry {
	return []Entry{
		{"PKR", 1},
		{"USD", 0.0035},
		{"EUR", 0.0031},
		{"GBP", 0.0027},
		{"JPY", 0.50},
		{"INR", 0.29},
	}
}

// Default returns the built-in table
func Default() *Table {
	t, err := NewTable(DefaultBase, DefaultEntries())
	if err != nil {
		panic(err) // built-in entries are known good
	}
	return t
}

// Lookup returns the rate of code against the base currency
func (t *Table) Lookup(code domain.Currency) (domain.Rate, bool) {
	rate, ok := t.rates[code]
	return rate, ok
}

// Contains reports whether code is a supported currency
func (t *Table) Contains(code domain.Currency) bool {
	_, ok := t.rates[code]
	return ok
}

// Codes returns the supported currencies in display order
func (t *Table) Codes() []domain.Currency {
	codes := make([]domain.Currency, len(t.codes))
	copy(codes, t.codes)
	return codes
}

// Base returns the base currency
func (t *Table) Base() domain.Currency {
	return t.base
}

// Entries returns the table rows in display order
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.codes))
	for _, code := range t.codes {
		entries = append(entries, Entry{Code: code, Rate: t.rates[code]})
	}
	return entries
}
