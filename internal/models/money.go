package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCurrencySymbol is used when no symbol is configured
const DefaultCurrencySymbol = "$"

// FormatMoney renders an amount in cents with the default currency symbol, e.g. $12.50
func FormatMoney(cents int64) string {
	return FormatMoneyWithSymbol(DefaultCurrencySymbol, cents)
}

// FormatMoneyWithSymbol renders an amount in cents rounded to 2 places.
// Cents are integers so no float rounding is involved.
func FormatMoneyWithSymbol(symbol string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}

// ParseMoney converts a decimal string such as "12.5" or "$12.50" into cents.
// More than two fractional digits is rejected rather than rounded.
func ParseMoney(value string) (int64, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, DefaultCurrencySymbol)
	if value == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}

	whole, fraction, hasFraction := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, value)
	}

	var cents int64
	if hasFraction {
		if len(fraction) == 0 || len(fraction) > 2 {
			return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, value)
		}
		if len(fraction) == 1 {
			fraction += "0"
		}
		cents, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, value)
		}
	}

	return units*100 + cents, nil
}
