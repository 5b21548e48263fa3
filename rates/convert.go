package rates

import "go-currency-converter/domain"

// Convert computes amount of from expressed in to. Both codes must be in t.
// Converting a currency to itself returns amount untouched.
func Convert(t *Table, amount domain.Amount, from domain.Currency, to domain.Currency) domain.Amount {
	if from == to {
		return amount
	}
	base := float64(amount) / float64(t.rates[from])
	return domain.Amount(base * float64(t.rates[to]))
}

// CrossRate the rate applied when converting from into to
func CrossRate(t *Table, from domain.Currency, to domain.Currency) domain.Rate {
	if from == to {
		return 1
	}
	return t.rates[to] / t.rates[from]
}
