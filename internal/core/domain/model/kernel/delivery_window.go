package kernel

import (
	"fmt"
	"time"

	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// deliveryWindowLayout is the time-of-day format for window bounds.
const deliveryWindowLayout = "15:04"

// ErrDeliveryWindowIsNotConstructed is returned when validating a zero-value DeliveryWindow.
var ErrDeliveryWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery window must be created via NewDeliveryWindow or StandardDeliveryWindow constructors")

// DeliveryWindow is the time slot an order is scheduled into, e.g.
// "09:00 - 12:00". Capacity planning groups active deliveries by window, so
// the label is canonical: equal windows compare equal as strings.
//
// StandardDeliveryWindow covers preliminary orders created from a
// prescription upload before the customer confirms a slot.
type DeliveryWindow struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewDeliveryWindow creates a window from "HH:MM" bounds. The start must
// precede the end.
func NewDeliveryWindow(start, end string) (DeliveryWindow, error) {
	from, err := time.Parse(deliveryWindowLayout, start)
	if err != nil {
		return DeliveryWindow{}, errs.NewValueIsInvalidErrorWithCause("deliveryWindow start", err)
	}

	to, err := time.Parse(deliveryWindowLayout, end)
	if err != nil {
		return DeliveryWindow{}, errs.NewValueIsInvalidErrorWithCause("deliveryWindow end", err)
	}

	if !from.Before(to) {
		return DeliveryWindow{}, errs.NewValueIsInvalidErrorWithCause("deliveryWindow",
			fmt.Errorf("start %s is not before end %s", start, end))
	}

	return DeliveryWindow{
		start: from,
		end:   to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// DeliveryWindowFromString parses the canonical "HH:MM - HH:MM" label.
func DeliveryWindowFromString(label string) (DeliveryWindow, error) {
	var start, end string
	if _, err := fmt.Sscanf(label, "%s - %s", &start, &end); err != nil {
		return DeliveryWindow{}, errs.NewValueIsInvalidErrorWithCause("deliveryWindow", err)
	}
	return NewDeliveryWindow(start, end)
}

// StandardDeliveryWindow returns the default slot used for preliminary
// orders created before the customer confirms delivery details.
func StandardDeliveryWindow() DeliveryWindow {
	w, _ := NewDeliveryWindow("09:00", "12:00")
	return w
}

// Start returns the window's opening bound as "HH:MM".
func (w DeliveryWindow) Start() string {
	return w.start.Format(deliveryWindowLayout)
}

// End returns the window's closing bound as "HH:MM".
func (w DeliveryWindow) End() string {
	return w.end.Format(deliveryWindowLayout)
}

// IsEqual reports whether two windows denote the same slot.
func (w DeliveryWindow) IsEqual(other DeliveryWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// String returns the canonical label, e.g. "09:00 - 12:00".
func (w DeliveryWindow) String() string {
	return w.Start() + " - " + w.End()
}

// Validate returns ErrDeliveryWindowIsNotConstructed for a zero value.
func (w DeliveryWindow) Validate() error {
	return w.guard.Validate(ErrDeliveryWindowIsNotConstructed)
}
