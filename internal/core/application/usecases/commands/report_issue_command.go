package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrReportIssueCommandIsNotConstructed = errors.New(
		"ReportIssueCommand must be created via NewReportIssueCommand constructor",
	)
)

// ReportIssueCommand represents a driver abandoning a delivery run, for
// example when nobody answers at the address or the package is damaged.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	driverID    kernel.UUID
	issueType   string
	description string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates a command to fail a delivery.
// The issue type is mandatory so dispatchers can follow up; the description
// adds free-form detail.
func NewReportIssueCommand(
	deliveryID, driverID kernel.UUID,
	issueType, description string,
) (ReportIssueCommand, error) {
	cmd := ReportIssueCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
		cmd.setIssueType(issueType),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// DeliveryID returns the failing delivery run.
func (c ReportIssueCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the acting driver.
func (c ReportIssueCommand) DriverID() kernel.UUID {
	return c.driverID
}

// IssueType returns the issue category ("recipient_absent", "damaged").
func (c ReportIssueCommand) IssueType() string {
	return c.issueType
}

// Description returns free-form detail about the issue.
func (c ReportIssueCommand) Description() string {
	return c.description
}

// Reason renders the issue as a single failure reason string.
func (c ReportIssueCommand) Reason() string {
	if c.description == "" {
		return c.issueType
	}
	return c.issueType + ": " + c.description
}

func (c *ReportIssueCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *ReportIssueCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *ReportIssueCommand) setIssueType(issueType string) error {
	if issueType == "" {
		return errs.NewValueIsRequiredError("issueType")
	}

	c.issueType = issueType
	return nil
}
