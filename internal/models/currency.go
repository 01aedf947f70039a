package models

const (
	CurrencyRUB = "RUB"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"

	// DefaultCurrency is the home currency assumed when a request omits one.
	DefaultCurrency = CurrencyRUB
)

// AllowedCurrencies lists every currency an instrument or transaction may hold.
var AllowedCurrencies = []string{CurrencyRUB, CurrencyUSD, CurrencyEUR}

// IsValidCurrency checks if the currency code is one of the allowed codes
func IsValidCurrency(currency string) bool {
	switch currency {
	case CurrencyRUB, CurrencyUSD, CurrencyEUR:
		return true
	default:
		return false
	}
}
