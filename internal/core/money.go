// Package core provides the portfolio domain model: assets, transactions,
// exact money/quantity types and the aggregate calculations over them.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

type (
	// Money is an exact monetary amount in cents.
	Money struct {
		Cents int64
	}

	// Quantity is an exact share count in ten-thousandths of a share,
	// matching the four-decimal precision of the asset forms.
	Quantity struct {
		Units int64
	}
)

// ParseMoney converts a decimal string to Money. It accepts both dot
// (12.34) and comma (12,34) separators and rounds half-up beyond two
// decimal places. The amount must be positive.
func ParseMoney(s string) (Money, error) {
	d, err := parsePositiveDecimal(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: d.Shift(2).Round(0).IntPart()}, nil
}

// ParseSignedMoney is ParseMoney without the positivity requirement,
// used for transaction amounts whose sign the system does not interpret.
// Zero is still rejected.
func ParseSignedMoney(s string) (Money, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Money{}, err
	}
	cents := d.Shift(2).Round(0).IntPart()
	if cents == 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

// ParseQuantity converts a decimal string to a share Quantity, rounding
// half-up beyond four decimal places. The quantity must be positive.
func ParseQuantity(s string) (Quantity, error) {
	d, err := parsePositiveDecimal(s)
	if err != nil {
		return Quantity{}, err
	}
	units := d.Shift(4).Round(0).IntPart()
	if units == 0 {
		return Quantity{}, ErrInvalidShares
	}
	return Quantity{Units: units}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

func parsePositiveDecimal(s string) (decimal.Decimal, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// Decimal returns the amount in currency units for exact arithmetic.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with two decimal places (e.g. "1500.00").
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MoneyFromDecimal rounds a decimal currency amount to cents.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Shift(2).Round(0).IntPart()}
}

// Decimal returns the share count for exact arithmetic.
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.New(q.Units, -4)
}

// String formats the quantity with trailing zeros trimmed (e.g. "10",
// "2.5", "0.0001").
func (q Quantity) String() string {
	return q.Decimal().String()
}
