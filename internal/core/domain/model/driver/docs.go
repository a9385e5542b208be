// Package driver provides the Driver aggregate: a courier on the pharmacy's
// roster who carries orders to customers.
//
// Key business rules:
//   - Drivers must have a valid UUID and a non-empty name
//   - Availability is an explicit flag toggled by managers and the driver
//   - Current workload is never stored on the aggregate; it is always
//     derived from active deliveries at assignment time
package driver
