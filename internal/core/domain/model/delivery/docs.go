// Package delivery provides the Delivery aggregate: the driver-facing leg
// of an order, created when a dispatcher assigns the order to a driver.
//
// The package includes:
//   - Delivery: The aggregate root tracking one driver's run for one order
//   - Status: Assigned -> PickedUp -> InTransit -> Completed, with Failed
//     reachable from every non-terminal state
//
// Key business rules:
//   - A delivery is always linked to exactly one order and one driver
//   - Completion records who received the parcel
//   - Failure records a reason; the order's reserved stock is returned to
//     the shelf by the surrounding workflow
//   - A delivery counts towards the driver's load while it is active
package delivery
