// Package cartrepo provides durable persistence for customer carts. Guest
// carts never reach this package; the cart router keeps them in process
// memory for the lifetime of the browsing session.
package cartrepo

import (
	"github.com/google/uuid"
)

// CartLineDTO represents one line of a stored cart. A cart is nothing more
// than its lines, so there is no separate cart row: the owner reference on
// each line is the whole identity.
type CartLineDTO struct {
	OwnerRef string    `gorm:"primaryKey"`
	ItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity int
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}
