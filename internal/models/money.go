package models

import (
	"fmt"

	"fjacquet/iso20022-gen/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// NewMoneyFromAmount converts a Fedwire amount (minor units plus optional
// currency, USD by default) into Money.
func NewMoneyFromAmount(a Amount) (Money, error) {
	value, err := currencyutils.ParseMinorUnits(a.Amount)
	if err != nil {
		return Money{}, err
	}
	ccy, err := currencyutils.NormalizeCurrency(a.Currency)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(value, ccy), nil
}

// NewMoneyFromISO parses the decimal text and Ccy attribute of an ISO 20022
// amount element.
func NewMoneyFromISO(text, currency string) (Money, error) {
	value, err := currencyutils.ParseAmount(text)
	if err != nil {
		return Money{}, err
	}
	ccy, err := currencyutils.NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(value, ccy), nil
}

// ISOText renders the amount as ISO 20022 element text ("10.0").
func (m Money) ISOText() string {
	return currencyutils.FormatISOAmount(m.Amount)
}

// ToAmount converts back to a Fedwire amount.
func (m Money) ToAmount() (Amount, error) {
	units, err := currencyutils.ToMinorUnits(m.Amount)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Amount: units, Currency: m.Currency}, nil
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// String returns a string representation of the money value
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// Equal returns true if two Money values are equal (same amount and currency)
func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency == other.Currency
}
