package domain

import (
	"math"
	"strconv"
	"strings"
)

// Currency a currency code
type Currency string

// NormalizeCurrency trims and upper-cases a user or config supplied code.
func NormalizeCurrency(s string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(s)))
}

// Amount a monetary amount... which should be a float...
type Amount float64

// String renders the amount in its shortest form, e.g. 100 or 12.5.
// Magnitudes from 1e21 up or below 1e-6 use exponent form, e.g. 1e+21 or 1.5e-7.
func (a Amount) String() string {
	f := float64(a)
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) || math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// Rate an exchange rate relative to the base currency
type Rate float64

type Rates map[Currency]Rate

// Request one conversion asked for by the user. It lives for a single loop iteration.
type Request struct {
	Amount Amount   `validate:"gt=0"`
	From   Currency `validate:"required,uppercase"`
	To     Currency `validate:"required,uppercase"`
}

// Exchanged the outcome of a conversion
type Exchanged struct {
	// Rate effective cross rate, rate(to) / rate(from)
	Rate   Rate
	Amount Amount
}
