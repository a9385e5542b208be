package prescription

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

var (
	// ErrPrescriptionIsNotConstructed is returned when a Prescription instance
	// was not created through a constructor.
	ErrPrescriptionIsNotConstructed = errors.New("Prescription must be created via NewPrescription constructor")
)

// Prescription is the aggregate root for an uploaded prescription document
// and its review by a pharmacist.
//
// Invariants:
//   - Must have a valid identifier, customer and document reference
//   - Rejection always records a non-empty reason
//   - Review decisions are only possible while Pending
//   - A replacement upload clears the previous decision and returns the
//     prescription to Pending
type Prescription struct {
	// id is the unique identifier for the prescription
	id kernel.UUID

	// customerID is the uploading customer
	customerID kernel.UUID

	// fileRef points at the stored document (object storage key)
	fileRef string

	// status is the current review state
	status Status

	// rejectionReason explains a rejection to the customer (empty unless Rejected)
	rejectionReason string

	// reviewedBy is the pharmacist who made the decision (nil while Pending)
	reviewedBy *kernel.UUID

	// reviewedAt is when the decision was made (nil while Pending)
	reviewedAt *time.Time

	// orderID links the order created for this prescription, if any
	orderID *kernel.UUID

	// uploadedAt is when the document was first uploaded
	uploadedAt time.Time

	// isConstructed ensures the prescription was created via a constructor
	isConstructed bool
}

// NewPrescription creates a Pending prescription for an uploaded document.
func NewPrescription(id, customerID kernel.UUID, fileRef string, now time.Time) (*Prescription, error) {
	p := &Prescription{
		status:        Pending,
		uploadedAt:    now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomerID(customerID),
		p.setFileRef(fileRef),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePrescription reconstructs a prescription from persistent storage.
func RestorePrescription(
	id, customerID kernel.UUID,
	fileRef string,
	status Status,
	rejectionReason string,
	reviewedBy *kernel.UUID,
	reviewedAt *time.Time,
	orderID *kernel.UUID,
	uploadedAt time.Time,
) (*Prescription, error) {
	p := &Prescription{
		status:          status,
		rejectionReason: rejectionReason,
		reviewedBy:      reviewedBy,
		reviewedAt:      reviewedAt,
		orderID:         orderID,
		uploadedAt:      uploadedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomerID(customerID),
		p.setFileRef(fileRef),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Prescription instance was properly constructed.
func (p *Prescription) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPrescriptionIsNotConstructed
	}
	return nil
}

// ID returns the prescription's unique identifier.
func (p *Prescription) ID() kernel.UUID {
	return p.id
}

// CustomerID returns the uploading customer's identifier.
func (p *Prescription) CustomerID() kernel.UUID {
	return p.customerID
}

// FileRef returns the stored document reference.
func (p *Prescription) FileRef() string {
	return p.fileRef
}

// Status returns the current review state.
func (p *Prescription) Status() Status {
	return p.status
}

// RejectionReason returns the pharmacist's reason. Empty unless Rejected.
func (p *Prescription) RejectionReason() string {
	return p.rejectionReason
}

// ReviewedBy returns the deciding pharmacist's ID, nil while Pending.
func (p *Prescription) ReviewedBy() *kernel.UUID {
	return p.reviewedBy
}

// ReviewedAt returns the decision time, nil while Pending.
func (p *Prescription) ReviewedAt() *time.Time {
	return p.reviewedAt
}

// Order returns the linked order's ID, nil when no order exists yet.
func (p *Prescription) Order() *kernel.UUID {
	return p.orderID
}

// UploadedAt returns when the document was first uploaded.
func (p *Prescription) UploadedAt() time.Time {
	return p.uploadedAt
}

// AttachOrder links the order this prescription belongs to.
func (p *Prescription) AttachOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	p.orderID = &orderID
	return nil
}

// Approve records a pharmacist's approval. Only Pending prescriptions can
// be approved.
func (p *Prescription) Approve(pharmacistID kernel.UUID, now time.Time) error {
	if err := pharmacistID.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.Approve()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.reviewedBy = &pharmacistID
	p.reviewedAt = &now
	return nil
}

// Reject records a pharmacist's rejection. The reason is mandatory; it is
// shown to the customer together with the option to upload a replacement.
func (p *Prescription) Reject(pharmacistID kernel.UUID, reason string, now time.Time) error {
	if err := pharmacistID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}

	newStatus, err := p.status.Reject()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.rejectionReason = reason
	p.reviewedBy = &pharmacistID
	p.reviewedAt = &now
	return nil
}

// Reupload replaces the document of a rejected prescription and returns it
// to Pending. The previous decision and reason are cleared.
func (p *Prescription) Reupload(fileRef string, now time.Time) error {
	newStatus, err := p.status.Reopen()
	if err != nil {
		return err
	}

	if err := p.setFileRef(fileRef); err != nil {
		return err
	}

	p.status = newStatus
	p.rejectionReason = ""
	p.reviewedBy = nil
	p.reviewedAt = nil
	p.uploadedAt = now
	return nil
}

// setID validates and sets the prescription's unique identifier.
func (p *Prescription) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setCustomerID validates and sets the uploading customer.
func (p *Prescription) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

// setFileRef validates and sets the stored document reference.
func (p *Prescription) setFileRef(fileRef string) error {
	if fileRef == "" {
		return errs.NewValueIsRequiredError("fileRef")
	}
	p.fileRef = fileRef
	return nil
}
