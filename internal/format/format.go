// Package format renders values for terminal output.
package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "02 Jan 2006"
	DateTimeLayout = "02 Jan 2006 15:04"
	none           = "-"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"AUD": "A$",
	"CAD": "C$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Money renders an amount in minor units, e.g. 125050 USD as "$1,250.50".
// Unknown currencies are rendered with their code.
func Money(cents int64, currency string) string {
	currency = strings.ToUpper(currency)
	if currency == "" {
		currency = "USD"
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	amount := fmt.Sprintf("%s.%02d", groupThousands(cents/100), cents%100)
	if currency == "JPY" {
		amount = groupThousands(cents)
	}
	if symbol, ok := currencySymbols[currency]; ok {
		return sign + symbol + amount
	}
	return sign + amount + " " + currency
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Date renders t in local time, or "-" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return none
	}
	return t.Local().Format(DateLayout)
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return none
	}
	return t.Local().Format(DateTimeLayout)
}

// Until renders the time left before t relative to now, e.g. "in 42m" or "expired".
func Until(t, now time.Time) string {
	if t.IsZero() {
		return none
	}
	d := t.Sub(now)
	if d <= 0 {
		return "expired"
	}
	return "in " + d.Round(time.Minute).String()
}

// Or returns s, or "-" when s is empty.
func Or(s string) string {
	if s == "" {
		return none
	}
	return s
}
