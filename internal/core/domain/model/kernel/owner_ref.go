package kernel

import (
	"fmt"
	"strings"

	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// OwnerKind discriminates the two kinds of cart/order owners.
type OwnerKind int

const (
	// OwnerKindUnknown is the invalid zero value.
	OwnerKindUnknown OwnerKind = iota

	// OwnerKindCustomer identifies an authenticated customer by UUID.
	// Customer-owned carts live in durable storage.
	OwnerKindCustomer

	// OwnerKindGuest identifies an anonymous browser session by its token.
	// Guest carts live in ephemeral storage and are merged into the
	// customer cart at login.
	OwnerKindGuest
)

// ErrOwnerRefIsNotConstructed is returned when validating a zero-value OwnerRef.
var ErrOwnerRefIsNotConstructed = errs.NewValueIsRequiredError(
	"owner reference must be created via NewCustomerRef or NewGuestRef constructors")

// OwnerRef identifies the owner of a cart or order: either an authenticated
// customer or an anonymous guest session. Carts and orders treat both the
// same; only the storage backend differs, selected by Kind.
type OwnerRef struct { //nolint:recvcheck //using for validation
	kind         OwnerKind
	customerID   UUID
	sessionToken string
	guard        guard.ConstructorGuard
}

// NewCustomerRef creates an owner reference for an authenticated customer.
func NewCustomerRef(customerID UUID) (OwnerRef, error) {
	if err := customerID.Validate(); err != nil {
		return OwnerRef{}, err
	}

	return OwnerRef{
		kind:       OwnerKindCustomer,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewGuestRef creates an owner reference for an anonymous guest session.
// The token must be non-empty and must not contain the ':' separator used
// by the canonical string form.
func NewGuestRef(sessionToken string) (OwnerRef, error) {
	if sessionToken == "" {
		return OwnerRef{}, errs.NewValueIsRequiredError("sessionToken")
	}
	if strings.Contains(sessionToken, ":") {
		return OwnerRef{}, errs.NewValueIsInvalidErrorWithCause("sessionToken",
			fmt.Errorf("%q contains reserved separator", sessionToken))
	}

	return OwnerRef{
		kind:         OwnerKindGuest,
		sessionToken: sessionToken,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// OwnerRefFromString parses the canonical form produced by String:
// "customer:<uuid>" or "guest:<token>". Used when restoring owners from
// persistence.
func OwnerRefFromString(s string) (OwnerRef, error) {
	kind, value, found := strings.Cut(s, ":")
	if !found {
		return OwnerRef{}, errs.NewValueIsInvalidErrorWithCause("ownerRef",
			fmt.Errorf("%q has no kind separator", s))
	}

	switch kind {
	case "customer":
		id, err := UUIDFromString(value)
		if err != nil {
			return OwnerRef{}, err
		}
		return NewCustomerRef(id)
	case "guest":
		return NewGuestRef(value)
	default:
		return OwnerRef{}, errs.NewValueIsInvalidErrorWithCause("ownerRef",
			fmt.Errorf("%q is not a known owner kind", kind))
	}
}

// Kind returns the owner kind.
func (o OwnerRef) Kind() OwnerKind {
	return o.kind
}

// CustomerID returns the customer UUID for customer-kind references.
// The second return value is false for guest references.
func (o OwnerRef) CustomerID() (UUID, bool) {
	if o.kind != OwnerKindCustomer {
		return UUID{}, false
	}
	return o.customerID, true
}

// SessionToken returns the session token for guest-kind references.
// The second return value is false for customer references.
func (o OwnerRef) SessionToken() (string, bool) {
	if o.kind != OwnerKindGuest {
		return "", false
	}
	return o.sessionToken, true
}

// IsEqual reports whether two owner references identify the same owner.
func (o OwnerRef) IsEqual(other OwnerRef) bool {
	return o.kind == other.kind &&
		o.customerID == other.customerID &&
		o.sessionToken == other.sessionToken
}

// String returns the canonical form, e.g. "customer:<uuid>" or "guest:<token>".
// Persistence adapters use it as the owner key.
func (o OwnerRef) String() string {
	switch o.kind {
	case OwnerKindCustomer:
		return "customer:" + o.customerID.String()
	case OwnerKindGuest:
		return "guest:" + o.sessionToken
	default:
		return "unknown"
	}
}

// Validate returns ErrOwnerRefIsNotConstructed for a zero-value OwnerRef.
func (o OwnerRef) Validate() error {
	return o.guard.Validate(ErrOwnerRefIsNotConstructed)
}
