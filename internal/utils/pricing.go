package utils

import "fmt"

// FormatCents renders a cent amount as a dollar string, e.g. 149900 -> "$1499.00".
func FormatCents(cents int32) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
