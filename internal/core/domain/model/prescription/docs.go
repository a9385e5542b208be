// Package prescription provides domain entities for pharmacist review of
// uploaded prescriptions. It implements the Prescription aggregate root
// with a small review state machine.
//
// The package includes:
//   - Prescription: The aggregate root holding the uploaded document reference
//     and the review outcome
//   - Status: Pending, Approved or Rejected
//
// Key business rules:
//   - Every uploaded prescription starts Pending
//   - Rejection always carries a reason for the customer
//   - A rejected prescription returns to Pending when the customer uploads a
//     replacement document
//   - Approval and rejection record the reviewing pharmacist and time
package prescription
