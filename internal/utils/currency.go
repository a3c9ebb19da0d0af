package utils

import (
	"github.com/shopspring/decimal" // Decimal money values
	"golang.org/x/text/language"    // Locale tags
	"golang.org/x/text/message"     // Locale-aware number printing
)

var vnPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount the way the storefront shows prices, e.g. "1.500.000 ₫".
// Fractions are rounded away.
func FormatVND(amount decimal.Decimal) string {
	return vnPrinter.Sprintf("%d ₫", amount.Round(0).IntPart())
}
