package delivery

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Status represents the state of one driver's run for one order.
//
// State transitions:
//
//	Assigned ──> PickedUp ──> InTransit ──> Completed
//	    │            │            │
//	    └────────────┴────────────┴──> Failed
//
// Completed and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned means the driver accepted the run but has not collected the
	// parcel yet.
	Assigned

	// PickedUp means the parcel left the pharmacy.
	PickedUp

	// InTransit means the parcel is on its way to the customer.
	InTransit

	// Completed means the parcel was handed over. Terminal.
	Completed

	// Failed means the run was abandoned. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

// StatusFromString parses a persisted status name back into a Status.
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
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the run still occupies the driver.
// Active runs count towards the driver's load limit.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// PickUp transitions the status from Assigned to PickedUp.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidTransitionError(s.String(), PickedUp.String())
	}
	return PickedUp, nil
}

// StartTransit transitions the status from PickedUp to InTransit.
func (s Status) StartTransit() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewInvalidTransitionError(s.String(), InTransit.String())
	}
	return InTransit, nil
}

// Complete transitions the status from InTransit to Completed. Terminal.
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidTransitionError(s.String(), Completed.String())
	}
	return Completed, nil
}

// Fail transitions any active status to Failed. Terminal.
func (s Status) Fail() (Status, error) {
	if !s.IsActive() {
		return 0, errs.NewInvalidTransitionError(s.String(), Failed.String())
	}
	return Failed, nil
}
