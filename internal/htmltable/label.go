package htmltable

import (
	"strings"
	"unicode"
)

// NormalizeLabel turns a display label into a record key:
// "Transaction ID" -> "transaction_id", "Amount ($)" -> "amount_".
func NormalizeLabel(label string) string {
	label = strings.ReplaceAll(label, " ", "_")
	label = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return -1
	}, label)
	return strings.ToLower(label)
}
