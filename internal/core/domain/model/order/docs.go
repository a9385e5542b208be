// Package order provides domain entities and business logic for order
// management in the pharmacy platform. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, lines, and lifecycle
//   - Line: A purchased position with name and unit price frozen at checkout
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, owner, address and at least one line
//   - Orders with prescription items start in PendingPrescription, others in Ready
//   - Delivered, Failed and Cancelled are terminal states
//   - Cancellation is only possible before a driver takes the order
//   - The version counter supports optimistic concurrency in storage
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
