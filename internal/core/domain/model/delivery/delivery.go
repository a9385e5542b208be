package delivery

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly
	// initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery is the aggregate root for one driver's run for one order.
// It is created at assignment time and progresses alongside the order's
// own status; the order remains the source of truth for the customer,
// while the delivery carries driver-facing details the order does not
// need (ETA, courier notes, proof of handover).
type Delivery struct {
	// id uniquely identifies the delivery
	id kernel.UUID
	// orderID links the order being delivered
	orderID kernel.UUID
	// driverID links the driver responsible for the run
	driverID kernel.UUID
	// status is the current state of the run
	status Status
	// eta is the driver's estimated arrival time (nil until in transit)
	eta *time.Time
	// notes are free-form driver remarks ("gate code 4821")
	notes string
	// recipientName records who accepted the parcel (set on completion)
	recipientName string
	// proofRef is an opaque reference to the proof of handover (photo,
	// signature), stored and served elsewhere
	proofRef string
	// failureReason explains an abandoned run (set on failure)
	failureReason string
	// assignedAt is when the run was created
	assignedAt time.Time
	// finishedAt is when the run reached a terminal state
	finishedAt *time.Time
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates a run in Assigned status linking an order to a driver.
func NewDelivery(id, orderID, driverID kernel.UUID, now time.Time) (*Delivery, error) {
	d := &Delivery{
		status:     Assigned,
		assignedAt: now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistent storage.
func RestoreDelivery(
	id, orderID, driverID kernel.UUID,
	status Status,
	eta *time.Time,
	notes, recipientName, proofRef, failureReason string,
	assignedAt time.Time,
	finishedAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        status,
		eta:           eta,
		notes:         notes,
		recipientName: recipientName,
		proofRef:      proofRef,
		failureReason: failureReason,
		assignedAt:    assignedAt,
		finishedAt:    finishedAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks if the Delivery was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the unique identifier of the delivery.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Order returns the delivered order's identifier.
func (d *Delivery) Order() kernel.UUID {
	return d.orderID
}

// Driver returns the responsible driver's identifier.
func (d *Delivery) Driver() kernel.UUID {
	return d.driverID
}

// Status returns the current state of the run.
func (d *Delivery) Status() Status {
	return d.status
}

// ETA returns the driver's estimated arrival time, nil until set.
func (d *Delivery) ETA() *time.Time {
	return d.eta
}

// Notes returns free-form driver remarks.
func (d *Delivery) Notes() string {
	return d.notes
}

// RecipientName returns who accepted the parcel. Empty until completion.
func (d *Delivery) RecipientName() string {
	return d.recipientName
}

// ProofRef returns the proof of handover reference. Empty until completion
// and optional even then.
func (d *Delivery) ProofRef() string {
	return d.proofRef
}

// FailureReason returns why the run was abandoned. Empty unless Failed.
func (d *Delivery) FailureReason() string {
	return d.failureReason
}

// AssignedAt returns when the run was created.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// FinishedAt returns when the run reached a terminal state, nil while active.
func (d *Delivery) FinishedAt() *time.Time {
	return d.finishedAt
}

// IsActive reports whether the run still occupies the driver.
func (d *Delivery) IsActive() bool {
	return d.status.IsActive()
}

// PickUp marks the parcel as collected from the pharmacy.
func (d *Delivery) PickUp() error {
	newStatus, err := d.status.PickUp()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// StartTransit marks the parcel as on its way and records the driver's ETA
// and optional notes for the customer.
func (d *Delivery) StartTransit(eta time.Time, notes string) error {
	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.eta = &eta
	d.notes = notes
	return nil
}

// Complete marks the run as finished and records who accepted the parcel.
// The proof reference is optional and opaque.
func (d *Delivery) Complete(recipientName, proofRef string, now time.Time) error {
	if recipientName == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}

	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.recipientName = recipientName
	d.proofRef = proofRef
	d.finishedAt = &now
	return nil
}

// Fail marks the run as abandoned with a mandatory reason.
func (d *Delivery) Fail(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}

	newStatus, err := d.status.Fail()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.failureReason = reason
	d.finishedAt = &now
	return nil
}

// setID sets the delivery's unique identifier with validation.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setOrderID sets the delivered order with validation.
func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

// setDriverID sets the responsible driver with validation.
func (d *Delivery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	d.driverID = driverID
	return nil
}
