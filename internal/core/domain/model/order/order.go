package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoLines is returned when an order is created with no lines.
	ErrOrderHasNoLines = errors.New("order must contain at least one line")
)

// NewOrderNumber generates a human-facing order number of the form
// "ORD-XXXXXXXX". The suffix is derived from a fresh UUID, so numbers are
// unique for all practical purposes while staying short enough to read over
// the phone.
func NewOrderNumber() string {
	raw := kernel.NewUUID().String()
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(raw, "-", "")[:8])
}

// Order is the aggregate root for a customer purchase. It owns the
// lifecycle from checkout (or prescription upload) through pharmacist
// review, driver handoff and final delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owner
//   - Must contain at least one line; line prices are frozen at checkout
//   - Status transitions follow the Status state machine
//   - Terminal orders (Delivered, Failed, Cancelled) never change again
//   - Can only be created through NewOrder or RestoreOrder
//
// Concurrent modification is controlled by the version counter: the
// persistence layer only applies an update when the stored version still
// matches the version the aggregate was loaded with.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the short human-facing reference ("ORD-XXXXXXXX")
	orderNumber string

	// owner identifies the customer or guest session the order belongs to
	owner kernel.OwnerRef

	// lines are the purchased positions with frozen prices
	lines []Line

	// status is the current state in the order lifecycle
	status Status

	// deliveryAddress is the destination street address
	deliveryAddress string

	// deliveryWindow is the agreed delivery time slot
	deliveryWindow kernel.DeliveryWindow

	// reservationID links the stock reservation backing this order
	// (nil for preliminary orders created before checkout)
	reservationID *kernel.UUID

	// prescriptionID links the prescription under review (nil when the
	// order has no prescription-only items)
	prescriptionID *kernel.UUID

	// createdAt is when the order was placed
	createdAt time.Time

	// version supports optimistic concurrency control in storage
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to
// create a valid order at checkout time.
//
// The initial status depends on the order's contents: orders containing at
// least one prescription-only item start in PendingPrescription and must be
// cleared by a pharmacist; all other orders start in Ready.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - owner: the purchasing customer or guest session
//   - lines: purchased positions (at least one, prices already frozen)
//   - deliveryAddress: destination address (must be non-empty)
//   - deliveryWindow: agreed time slot
//   - needsPrescription: whether any line requires pharmacist review
//   - now: order creation time, passed in for testability
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
func NewOrder(
	id kernel.UUID,
	owner kernel.OwnerRef,
	lines []Line,
	deliveryAddress string,
	deliveryWindow kernel.DeliveryWindow,
	needsPrescription bool,
	now time.Time,
) (*Order, error) {
	status := Ready
	if needsPrescription {
		status = PendingPrescription
	}

	order := &Order{
		orderNumber:   NewOrderNumber(),
		status:        status,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwner(owner),
		order.setLines(lines),
		order.setDeliveryAddress(deliveryAddress),
		order.setDeliveryWindow(deliveryWindow),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistent storage without
// re-running creation-time rules. The stored status and version are
// trusted as previously validated.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	owner kernel.OwnerRef,
	lines []Line,
	status Status,
	deliveryAddress string,
	deliveryWindow kernel.DeliveryWindow,
	reservationID *kernel.UUID,
	prescriptionID *kernel.UUID,
	createdAt time.Time,
	version int,
) (*Order, error) {
	order := &Order{
		orderNumber:    orderNumber,
		status:         status,
		reservationID:  reservationID,
		prescriptionID: prescriptionID,
		createdAt:      createdAt,
		version:        version,
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwner(owner),
		order.setLines(lines),
		order.setDeliveryAddress(deliveryAddress),
		order.setDeliveryWindow(deliveryWindow),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the short human-facing reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Owner returns the order's owner reference.
func (o *Order) Owner() kernel.OwnerRef {
	return o.owner
}

// Lines returns the purchased positions with frozen prices.
func (o *Order) Lines() []Line {
	return o.lines
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryAddress returns the destination street address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryWindow returns the agreed delivery time slot.
func (o *Order) DeliveryWindow() kernel.DeliveryWindow {
	return o.deliveryWindow
}

// Reservation returns the linked stock reservation's ID.
// Returns nil for preliminary orders without reserved stock.
func (o *Order) Reservation() *kernel.UUID {
	return o.reservationID
}

// Prescription returns the linked prescription's ID.
// Returns nil when the order needs no pharmacist review.
func (o *Order) Prescription() *kernel.UUID {
	return o.prescriptionID
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic concurrency counter.
func (o *Order) Version() int {
	return o.version
}

// Total returns the sum of all line totals.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range o.lines {
		total = total.Add(line.Total())
	}
	return total
}

// AttachReservation links the stock reservation that backs this order.
// Used at checkout and when a preliminary prescription order is fulfilled.
func (o *Order) AttachReservation(reservationID kernel.UUID) error {
	if err := reservationID.Validate(); err != nil {
		return err
	}

	o.reservationID = &reservationID
	return nil
}

// AttachPrescription links the prescription a pharmacist must review
// before the order can proceed.
func (o *Order) AttachPrescription(prescriptionID kernel.UUID) error {
	if err := prescriptionID.Validate(); err != nil {
		return err
	}

	o.prescriptionID = &prescriptionID
	return nil
}

// UpdateDeliveryDetails replaces the address and window. Only allowed
// before a driver takes the order.
func (o *Order) UpdateDeliveryDetails(address string, window kernel.DeliveryWindow) error {
	if o.status != PendingPrescription && o.status != Ready {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s does not allow changing delivery details", o.status))
	}

	if err := errors.Join(
		o.setDeliveryAddress(address),
		o.setDeliveryWindow(window),
	); err != nil {
		return err
	}

	return nil
}

// Approve moves the order out of prescription review into Ready.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Assign marks the order as taken by a driver.
func (o *Order) Assign() error {
	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// PickUp marks the parcel as collected from the pharmacy.
func (o *Order) PickUp() error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartTransit marks the parcel as on its way to the customer.
func (o *Order) StartTransit() error {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered. Terminal.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fail marks the delivery attempt as abandoned. Terminal. The caller is
// responsible for releasing the backing reservation afterwards.
func (o *Order) Fail() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order before driver pickup. Terminal. The caller is
// responsible for releasing the backing reservation afterwards.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOwner validates and sets the order's owner reference.
// This is a private method used only during construction.
func (o *Order) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	o.owner = owner
	return nil
}

// setLines validates and sets the purchased positions.
// This is a private method used only during construction.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	o.lines = lines
	return nil
}

// setDeliveryAddress validates and sets the destination address.
// This is a private method used only during construction.
func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

// setDeliveryWindow validates and sets the delivery time slot.
// This is a private method used only during construction.
func (o *Order) setDeliveryWindow(window kernel.DeliveryWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	o.deliveryWindow = window
	return nil
}
