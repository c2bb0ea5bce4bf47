package view

import "fmt"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"RUB": "₽",
	"IDR": "Rp",
}

// FormatMoney renders an amount with its currency symbol. Unknown
// currencies fall back to an ISO-code prefix.
func FormatMoney(amount float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// Convert applies an exchange rate exactly once. Callers converting an
// already-discounted price must pass the discounted amount here, never
// re-apply the discount afterwards.
func Convert(amount, rate float64) float64 {
	return amount * rate
}
