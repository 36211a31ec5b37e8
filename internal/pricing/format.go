package pricing

import "strconv"

// NoPrice is rendered when a listing has no price set.
const NoPrice = "Contact for price"

var symbols = map[string]string{
	"USD": "$",
	"CAD": "C$",
	"GBP": "£",
	"EUR": "€",
}

// Format renders a listing price for display: "$25" for USD 25.00,
// "C$25" for CAD, NoPrice when price is nil. Unknown currencies fall
// back to "<CODE> <amount>".
func Format(price *float64, currency string) string {
	if price == nil {
		return NoPrice
	}
	amount := strconv.FormatFloat(*price, 'f', -1, 64)
	if sym, ok := symbols[currency]; ok {
		return sym + amount
	}
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}
