package inventory

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// Domain errors for reservation operations.
var (
	// ErrReservationAlreadyReleased is returned when a released reservation
	// is released again. The guard prevents double-crediting stock.
	ErrReservationAlreadyReleased = errors.New("reservation already released")
	// ErrReservationHasNoLines is returned when creating a reservation with no lines.
	ErrReservationHasNoLines = errs.NewValueIsRequiredError("reservation lines")
	// ErrReservationIsNotConstructed is returned when using an improperly initialized Reservation.
	ErrReservationIsNotConstructed = errors.New("Reservation must be created via NewReservation constructor")
)

// ReservationLine is one (item, quantity) pair of a reservation.
// Quantity is always positive.
type ReservationLine struct {
	itemID   kernel.UUID
	quantity int
}

// NewReservationLine creates a line with a valid item id and positive quantity.
func NewReservationLine(itemID kernel.UUID, quantity int) (ReservationLine, error) {
	if err := itemID.Validate(); err != nil {
		return ReservationLine{}, err
	}
	if quantity <= 0 {
		return ReservationLine{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return ReservationLine{itemID: itemID, quantity: quantity}, nil
}

// ItemID returns the reserved item's identifier.
func (l ReservationLine) ItemID() kernel.UUID {
	return l.itemID
}

// Quantity returns the reserved unit count.
func (l ReservationLine) Quantity() int {
	return l.quantity
}

// Reservation is the token produced by an atomic stock decrement at
// checkout. It records exactly which quantities were taken from which
// items, and whether they have been credited back.
//
// A reservation is releasable exactly once: MarkReleased flips the flag and
// rejects a second call. The persistence adapter mirrors this with a
// conditional update so the guard also holds across processes.
type Reservation struct {
	// id is the reservation token
	id kernel.UUID
	// orderID links the reservation to the order it backs (nil until the
	// order row is persisted in the same transaction)
	orderID *kernel.UUID
	// lines are the reserved (item, quantity) pairs
	lines []ReservationLine
	// released marks that stock has been credited back
	released bool
	// guard ensures the reservation was properly constructed
	guard guard.ConstructorGuard
}

// NewReservation creates an unreleased reservation over the given lines.
func NewReservation(id kernel.UUID, lines []ReservationLine) (*Reservation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrReservationHasNoLines
	}

	return &Reservation{
		id:    id,
		lines: lines,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreReservation reconstructs a reservation from persistent storage.
func RestoreReservation(
	id kernel.UUID,
	orderID *kernel.UUID,
	lines []ReservationLine,
	released bool,
) (*Reservation, error) {
	reservation, err := NewReservation(id, lines)
	if err != nil {
		return nil, err
	}

	if orderID != nil {
		if err = reservation.AttachOrder(*orderID); err != nil {
			return nil, err
		}
	}
	reservation.released = released

	return reservation, nil
}

// Validate ensures the reservation was constructed via NewReservation.
func (r *Reservation) Validate() error {
	if r == nil || r.guard.Validate(ErrReservationIsNotConstructed) != nil {
		return ErrReservationIsNotConstructed
	}
	return nil
}

// ID returns the reservation token.
func (r *Reservation) ID() kernel.UUID {
	return r.id
}

// OrderID returns the linked order id, or nil before linking.
func (r *Reservation) OrderID() *kernel.UUID {
	return r.orderID
}

// Lines returns the reserved (item, quantity) pairs.
func (r *Reservation) Lines() []ReservationLine {
	return r.lines
}

// Released reports whether stock has already been credited back.
func (r *Reservation) Released() bool {
	return r.released
}

// AttachOrder links the reservation to the order it backs.
func (r *Reservation) AttachOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = &orderID
	return nil
}

// MarkReleased flips the release flag. A second call returns
// ErrReservationAlreadyReleased so stock is never credited twice.
func (r *Reservation) MarkReleased() error {
	if r.released {
		return ErrReservationAlreadyReleased
	}
	r.released = true
	return nil
}
