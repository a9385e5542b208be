package driver

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver on the pharmacy's roster.
// It is an aggregate root that manages driver identity and availability.
//
// A driver's current workload is deliberately not a field here. Storing a
// counter would let it drift from reality when deliveries complete or fail;
// the assignment flow always counts active deliveries in storage instead.
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is the driver's contact number (optional)
	phone string
	// serviceArea is a free-form label of the district the driver covers
	serviceArea string
	// available reports whether the driver currently accepts assignments
	available bool
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified parameters.
// New drivers start available.
//
// Parameters:
//   - id: Unique identifier for the driver (must be a valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number (may be empty)
//   - serviceArea: District label (may be empty)
//
// Returns:
//   - *Driver: A fully initialized driver
//   - error: Validation error if any parameter is invalid
func NewDriver(id kernel.UUID, name, phone, serviceArea string) (*Driver, error) {
	d := &Driver{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	d.phone = phone
	d.serviceArea = serviceArea
	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
func RestoreDriver(id kernel.UUID, name, phone, serviceArea string, available bool) (*Driver, error) {
	d, err := NewDriver(id, name, phone, serviceArea)
	if err != nil {
		return nil, err
	}

	d.available = available
	return d, nil
}

// Validate checks if the Driver was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// ServiceArea returns the district label the driver covers.
func (d *Driver) ServiceArea() string {
	return d.serviceArea
}

// IsAvailable reports whether the driver currently accepts assignments.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// SetAvailable toggles whether the driver accepts new assignments.
// Availability does not affect deliveries the driver already holds.
func (d *Driver) SetAvailable(available bool) {
	d.available = available
}

// setID sets the driver's unique identifier with validation.
// This is an internal setter used during driver construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setName sets the driver's name with validation.
// This is an internal setter used during driver construction.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}
