package format_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/storedesk/internal/format"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		cents    int64
		currency string
		want     string
	}{
		{cents: 0, currency: "USD", want: "$0.00"},
		{cents: 5, currency: "usd", want: "$0.05"},
		{cents: 125050, currency: "USD", want: "$1,250.50"},
		{cents: 123456789, currency: "GBP", want: "£1,234,567.89"},
		{cents: -1999, currency: "EUR", want: "-€19.99"},
		{cents: 1500, currency: "JPY", want: "¥1,500"},
		{cents: 1000, currency: "CHF", want: "10.00 CHF"},
		{cents: 250, currency: "", want: "$2.50"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, format.Money(tc.cents, tc.currency))
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "in 42m0s", format.Until(now.Add(42*time.Minute), now))
	assert.Equal(t, "expired", format.Until(now.Add(-time.Second), now))
	assert.Equal(t, "-", format.Until(time.Time{}, now))
}

func TestDateAndOr(t *testing.T) {
	assert.Equal(t, "-", format.Date(time.Time{}))
	assert.Equal(t, "-", format.DateTime(time.Time{}))
	assert.NotEqual(t, "-", format.Date(time.Now()))
	assert.Equal(t, "-", format.Or(""))
	assert.Equal(t, "x", format.Or("x"))
}
