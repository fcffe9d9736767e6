package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders 1234567 as "1,234,567" for chat display.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
