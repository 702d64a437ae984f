package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatTZS renders an amount as "TZS 60,000": grouped thousands, no decimals,
// half-even rounding. A missing amount renders as "TZS 0".
func FormatTZS(v decimal.NullDecimal) string {
	if !v.Valid {
		return "TZS 0"
	}
	return amountPrinter.Sprintf("TZS %d", v.Decimal.RoundBank(0).IntPart())
}
