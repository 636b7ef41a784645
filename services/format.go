package services

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown in place of a metric whose mean is undefined
const NotAvailable = "N/A"

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators, e.g. 50,000
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatMoney renders an optional amount as "$1234.50" followed by suffix,
// or NotAvailable when absent
func FormatMoney(v *float64, suffix string) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf("$%.2f%s", *v, suffix)
}
