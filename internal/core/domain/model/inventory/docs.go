// Package inventory contains the stock side of the order lifecycle engine:
// the StockItem aggregate and the Reservation aggregate that ties a
// checkout's atomic stock decrement to a token usable exactly once for a
// matching release.
//
// The invariant the package exists for: quantityOnHand never goes negative,
// for any item, at any observable point. The conditional-update enforcement
// lives in the persistence adapter; the domain types here carry the data
// and the release-once guard.
package inventory
