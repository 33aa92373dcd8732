package model

import "time"

// ProductEntity is the purchasable snapshot the cart reads: current price
// and active flag. Catalog management lives elsewhere.
type ProductEntity struct {
	ID        uint64    `db:"id" json:"id"`
	SellerID  uint64    `db:"seller_id" json:"seller_id"`
	Name      string    `db:"name" json:"name"`
	Price     int64     `db:"price" json:"price"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
