// Package currencyutils converts between the amount representations used by
// Fedwire payloads (zero-padded minor units) and ISO 20022 documents
// (decimal text).
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultCurrency is used when a payload carries no currency code.
const DefaultCurrency = "USD"

// MinorUnitsWidth is the width of a Fedwire amount field.
const MinorUnitsWidth = 12

var log = logrus.New()

var (
	digitsPattern   = regexp.MustCompile(`^[0-9]+$`)
	symbolsPattern  = regexp.MustCompile(`[€$£¥\s]`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseMinorUnits parses a Fedwire amount such as "000000001000" (cents)
// into a decimal amount (10).
func ParseMinorUnits(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !digitsPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid minor-unit amount '%s'", s)
	}
	units, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid minor-unit amount '%s': %w", s, err)
	}
	return units.Shift(-2), nil
}

// FormatISOAmount renders an amount the way ISO 20022 documents produced by
// this tool carry it: shortest decimal form, always with a fractional part
// ("10.0", "10.5", "12.34").
func FormatISOAmount(amount decimal.Decimal) string {
	s := amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ToMinorUnits renders a decimal amount as zero-padded minor units.
// Sub-cent precision is rounded half away from zero.
func ToMinorUnits(amount decimal.Decimal) (string, error) {
	if IsNegative(amount) {
		return "", fmt.Errorf("negative amount %s cannot be expressed in minor units", amount.String())
	}
	units := amount.Shift(2).Round(0).StringFixed(0)
	if len(units) > MinorUnitsWidth {
		return "", fmt.Errorf("amount %s exceeds %d minor-unit digits", amount.String(), MinorUnitsWidth)
	}
	if !amount.Shift(2).Equal(amount.Shift(2).Round(0)) {
		log.WithField("amount", amount.String()).Warn("Rounding sub-cent amount to minor units")
	}
	return strings.Repeat("0", MinorUnitsWidth-len(units)) + units, nil
}

// ParseAmount parses decimal text as found in an ISO 20022 amount element.
// Currency symbols and whitespace are ignored. An empty string is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if amountStr == "" {
		return decimal.Zero, nil
	}
	standardized := symbolsPattern.ReplaceAllString(amountStr, "")
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// NormalizeCurrency upper-cases a currency code, defaulting to USD.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if !currencyPattern.MatchString(code) {
		return "", fmt.Errorf("invalid currency code '%s'", code)
	}
	return code, nil
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}
