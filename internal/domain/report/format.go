package report

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is used wherever a calendar day is printed
	DateLayout = "2006-01-02"
	// DateTimeLayout is used for individual sale timestamps
	DateTimeLayout = "2006-01-02 15:04:05"
)

// FormatMoney prints a monetary value with two decimals.
// Every report shape prints money through this helper.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatQuantity prints a quantity without trailing zeros
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}

// FormatDate prints the calendar day of t in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
