// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the pharmacy platform. It implements
// business logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - CapacityPlanner: Groups orders into delivery windows and rates how
//     full each window is against a configured ceiling
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
