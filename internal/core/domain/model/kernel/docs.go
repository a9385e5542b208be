// Package kernel contains shared value objects used across the domain
// model: identifiers, money amounts, owner references, and delivery
// windows.
//
// All types in this package are immutable value objects. Their zero values
// are invalid; instances must be created through the provided constructor
// functions, which enforce the type's invariants. Validate reports whether
// a value was properly constructed, which matters when values are
// reconstructed from persistence or external input.
package kernel
