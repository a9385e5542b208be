package prescription

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Status represents the review state of an uploaded prescription.
//
// State transitions:
//
//	Pending ──┬──> Approved
//	          └──> Rejected ──> Pending (re-upload)
//
// Approved is final. Rejected is not: a customer may upload a replacement
// document, which returns the prescription to Pending for a fresh review.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the prescription awaits a pharmacist decision.
	Pending

	// Approved means a pharmacist cleared the prescription.
	Approved

	// Rejected means a pharmacist turned the prescription down. The
	// rejection reason is mandatory and shown to the customer.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
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

// Approve transitions the status from Pending to Approved.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError(s.String(), Approved.String())
	}
	return Approved, nil
}

// Reject transitions the status from Pending to Rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError(s.String(), Rejected.String())
	}
	return Rejected, nil
}

// Reopen transitions the status from Rejected back to Pending after the
// customer uploads a replacement document.
func (s Status) Reopen() (Status, error) {
	if s != Rejected {
		return 0, errs.NewInvalidTransitionError(s.String(), Pending.String())
	}
	return Pending, nil
}
