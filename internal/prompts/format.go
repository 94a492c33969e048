package prompts

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// num renders v the shortest way that round-trips: 50, 12.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// grouped renders v with thousands separators and at most three decimals:
// 1,500,000 or 2,500.75.
func grouped(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
