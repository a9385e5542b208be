package kernel

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or ZeroMoney constructors")

// Money represents a non-negative monetary amount in the smallest currency
// unit (cents). Order lines freeze unit prices as Money at commit time, so
// the amount never changes with later catalog edits.
//
// Money is an immutable value object; arithmetic returns new values.
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoney creates a Money amount from cents. Negative amounts are rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}

	return Money{
		cents: cents,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ZeroMoney returns a valid zero amount.
func ZeroMoney() Money {
	m, _ := NewMoney(0)
	return m
}

// Cents returns the amount in the smallest currency unit.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	sum, _ := NewMoney(m.cents + other.cents)
	return sum
}

// MultiplyQty returns the amount multiplied by a line quantity.
func (m Money) MultiplyQty(qty int) Money {
	product, _ := NewMoney(m.cents * int64(qty))
	return product
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount with two decimal places, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Validate returns ErrMoneyIsNotConstructed for a zero-value Money.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
