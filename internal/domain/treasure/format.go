package treasure

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var grouped = message.NewPrinter(language.English)

// FormatValue renders an amount in a system currency: thousands of gold
// collapse to "1.5k gp", dollars and eurodollars get digit grouping, any
// other currency is printed as "<value> <currency>".
func FormatValue(value int, currency string) string {
	switch currency {
	case "gp":
		if value >= 1000 {
			return fmt.Sprintf("%.1fk gp", float64(value)/1000)
		}
		return fmt.Sprintf("%d gp", value)
	case "$":
		return grouped.Sprintf("$%d", value)
	case "eb":
		return grouped.Sprintf("%d eb", value)
	default:
		return fmt.Sprintf("%d %s", value, currency)
	}
}
