// Package cart contains the Cart aggregate: a per-owner mutable list of
// (item, quantity) lines pending purchase. Cart contents are not reserved
// against inventory; stock is validated at checkout, not at cart-edit time,
// since stock may change between add and checkout.
package cart

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// Domain errors for cart operations.
var (
	// ErrCartIsNotConstructed is returned when using an improperly initialized Cart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
)

// Line is one (item, quantity) pair in a cart. Quantity is always positive;
// a quantity reaching zero means the line is removed, never stored.
type Line struct {
	itemID   kernel.UUID
	quantity int
}

// NewLine creates a cart line with a valid item id and positive quantity.
func NewLine(itemID kernel.UUID, quantity int) (Line, error) {
	if err := itemID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Line{itemID: itemID, quantity: quantity}, nil
}

// ItemID returns the line's item identifier.
func (l Line) ItemID() kernel.UUID {
	return l.itemID
}

// Quantity returns the line's unit count.
func (l Line) Quantity() int {
	return l.quantity
}

// Cart is the aggregate holding an owner's pending purchase lines.
//
// Invariants:
//   - every line has quantity > 0
//   - at most one line per item: duplicate adds merge by summation, never
//     produce separate rows
//
// The same contract serves authenticated customers and guest sessions;
// the storage backend differs by owner kind.
type Cart struct {
	// owner identifies the customer or guest session the cart belongs to
	owner kernel.OwnerRef
	// lines are the pending (item, quantity) pairs, at most one per item
	lines []Line
	// guard ensures the cart was properly constructed
	guard guard.ConstructorGuard
}

// NewCart creates an empty cart for the given owner.
func NewCart(owner kernel.OwnerRef) (*Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		owner: owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreCart reconstructs a cart from persistent storage. Lines must
// already satisfy the one-line-per-item invariant.
func RestoreCart(owner kernel.OwnerRef, lines []Line) (*Cart, error) {
	cart, err := NewCart(owner)
	if err != nil {
		return nil, err
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.itemID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("cart lines",
				fmt.Errorf("duplicate line for item %s", line.itemID))
		}
		seen[line.itemID] = struct{}{}
	}
	cart.lines = lines

	return cart, nil
}

// Validate ensures the cart was constructed via NewCart.
func (c *Cart) Validate() error {
	if c == nil || c.guard.Validate(ErrCartIsNotConstructed) != nil {
		return ErrCartIsNotConstructed
	}
	return nil
}

// Owner returns the cart's owner reference.
func (c *Cart) Owner() kernel.OwnerRef {
	return c.owner
}

// Lines returns the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	return c.lines
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddItem adds quantity units of an item. An existing line for the same
// item absorbs the addition by summation. Zero or negative quantities are
// rejected.
func (c *Cart) AddItem(itemID kernel.UUID, quantity int) error {
	line, err := NewLine(itemID, quantity)
	if err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].itemID.IsEqual(itemID) {
			c.lines[i].quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, line)
	return nil
}

// UpdateQuantity replaces the quantity of an existing line. Zero or
// negative quantities are rejected; use RemoveItem to drop a line. Stock is
// deliberately not checked here.
func (c *Cart) UpdateQuantity(itemID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	for i := range c.lines {
		if c.lines[i].itemID.IsEqual(itemID) {
			c.lines[i].quantity = quantity
			return nil
		}
	}

	return errs.NewObjectNotFoundError("cart line", itemID.String())
}

// RemoveItem drops the line for an item, if present.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	for i := range c.lines {
		if c.lines[i].itemID.IsEqual(itemID) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("cart line", itemID.String())
}

// MergeFrom absorbs another cart's lines, summing quantities line by line.
// Used when a guest cart is transferred into a customer cart at login; the
// caller destroys the source afterwards so a retry cannot duplicate lines.
func (c *Cart) MergeFrom(other *Cart) error {
	if err := other.Validate(); err != nil {
		return err
	}

	for _, line := range other.lines {
		if err := c.AddItem(line.itemID, line.quantity); err != nil {
			return err
		}
	}

	return nil
}
