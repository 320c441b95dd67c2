package entity

import "fmt"

// Currency is the closed set of currencies an account can be denominated in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyRUB Currency = "RUB"
)

// Currencies returns all supported currencies in declaration order.
// A new user gets one default account per entry.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyRUB}
}

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case CurrencyUSD, CurrencyEUR, CurrencyRUB:
		return Currency(s), nil
	}
	return "", fmt.Errorf("unsupported currency %q", s)
}

func (c Currency) String() string { return string(c) }
