package order

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	PendingPrescription ──> Ready ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	        │                 │          │            │             │
//	        └──> Cancelled <──┘          └────────────┴──> Failed <─┘
//
// Delivered, Failed and Cancelled are terminal: no transition leaves them.
// Failure is only reachable once a driver holds the order; before that,
// cancellation is the only way out.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPrescription is the initial status for orders that contain at
	// least one prescription-only item. The order waits for a pharmacist
	// decision before it can be fulfilled.
	PendingPrescription

	// Ready indicates the order is cleared for fulfilment and waiting for a
	// driver. Orders without prescription items start here.
	Ready

	// Assigned indicates a driver has accepted responsibility for the order.
	Assigned

	// PickedUp indicates the driver has collected the parcel from the pharmacy.
	PickedUp

	// InTransit indicates the parcel is on its way to the customer.
	InTransit

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Failed indicates the delivery attempt was abandoned. Terminal; reserved
	// stock is returned to the shelf when an order fails.
	Failed

	// Cancelled indicates the order was withdrawn before a driver picked it
	// up. Terminal; reserved stock is returned to the shelf.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		PendingPrescription: "PendingPrescription",
		Ready:               "Ready",
		Assigned:            "Assigned",
		PickedUp:            "PickedUp",
		InTransit:           "InTransit",
		Delivered:           "Delivered",
		Failed:              "Failed",
		Cancelled:           "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingPrescription: "PendingPrescription",
		Ready:               "Ready",
		Assigned:            "Assigned",
		PickedUp:            "PickedUp",
		InTransit:           "InTransit",
		Delivered:           "Delivered",
		Failed:              "Failed",
		Cancelled:           "Cancelled",
	}
}

// StatusFromString parses a persisted status name back into a Status.
// Returns an error for unrecognized names, including "Unknown".
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", name))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values outside the defined set are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Terminal statuses are Delivered, Failed and Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// Approve transitions the status to Ready after a pharmacist cleared the
// prescription.
//
// Valid transitions:
//   - PendingPrescription -> Ready
//
// Returns:
//   - (Ready, nil) on valid transition
//   - (0, error) if the order was not waiting on a prescription
func (s Status) Approve() (Status, error) {
	if s != PendingPrescription {
		return 0, errs.NewInvalidTransitionError(s.String(), Ready.String())
	}
	return Ready, nil
}

// Assign transitions the status to Assigned when a driver takes the order.
//
// Valid transitions:
//   - Ready -> Assigned
//
// Reassignment of an already assigned order is not allowed; the current
// driver must fail the delivery first, which is terminal for the order.
func (s Status) Assign() (Status, error) {
	if s != Ready {
		return 0, errs.NewInvalidTransitionError(s.String(), Assigned.String())
	}
	return Assigned, nil
}

// PickUp transitions the status to PickedUp when the driver collects the
// parcel.
//
// Valid transitions:
//   - Assigned -> PickedUp
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidTransitionError(s.String(), PickedUp.String())
	}
	return PickedUp, nil
}

// StartTransit transitions the status to InTransit.
//
// Valid transitions:
//   - PickedUp -> InTransit
func (s Status) StartTransit() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewInvalidTransitionError(s.String(), InTransit.String())
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered. Terminal.
//
// Valid transitions:
//   - InTransit -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidTransitionError(s.String(), Delivered.String())
	}
	return Delivered, nil
}

// Fail transitions the status to Failed. Terminal.
//
// Valid transitions:
//   - InTransit -> Failed
//
// Problems before transit surface on the delivery run; the order itself
// only fails once the parcel is on the road.
func (s Status) Fail() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidTransitionError(s.String(), Failed.String())
	}
	return Failed, nil
}

// Cancel transitions the status to Cancelled. Terminal.
//
// Valid transitions:
//   - PendingPrescription -> Cancelled
//   - Ready -> Cancelled
//   - Assigned -> Cancelled
//
// Once a driver has picked up the order, cancellation is no longer
// possible.
func (s Status) Cancel() (Status, error) {
	if s != PendingPrescription && s != Ready && s != Assigned {
		return 0, errs.NewInvalidTransitionError(s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
