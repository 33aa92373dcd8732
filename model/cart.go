package model

import (
	"encoding/json"
	"time"
)

type CartEntity struct {
	ID             uint64     `db:"id" json:"id"`
	UserID         uint64     `db:"user_id" json:"user_id"`
	TotalItems     int        `db:"total_items" json:"total_items"`
	TotalPrice     int64      `db:"total_price" json:"total_price"`
	DiscountCode   *string    `db:"discount_code" json:"discount_code,omitempty"`
	DiscountAmount int64      `db:"discount_amount" json:"discount_amount"`
	FinalPrice     int64      `db:"final_price" json:"final_price"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type CartItemEntity struct {
	ID         uint64    `db:"id" json:"id"`
	CartID     uint64    `db:"cart_id" json:"cart_id"`
	ProductID  uint64    `db:"product_id" json:"product_id"`
	SellerID   uint64    `db:"seller_id" json:"seller_id"`
	Price      int64     `db:"price" json:"price"`
	Quantity   int       `db:"quantity" json:"quantity"`
	TotalPrice int64     `db:"total_price" json:"total_price"`
	Options    string    `db:"options" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// OptionsMap decodes the JSON options column; an empty column is an empty map.
func (i CartItemEntity) OptionsMap() map[string]string {
	out := map[string]string{}
	if i.Options != "" {
		_ = json.Unmarshal([]byte(i.Options), &out)
	}
	return out
}

type AddCartItemRequest struct {
	ProductID uint64            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity" validate:"required,gte=1,lte=10"`
	Options   map[string]string `json:"options"`
}

type UpdateCartItemRequest struct {
	Quantity int               `json:"quantity" validate:"required,gte=1,lte=10"`
	Options  map[string]string `json:"options"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

type CartItemResponse struct {
	ID         uint64            `json:"id"`
	ProductID  uint64            `json:"product_id"`
	Price      int64             `json:"price"`
	Quantity   int               `json:"quantity"`
	TotalPrice int64             `json:"total_price"`
	Options    map[string]string `json:"options"`
}

type CartResponse struct {
	TotalItems     int                `json:"total_items"`
	TotalPrice     int64              `json:"total_price"`
	DiscountCode   *string            `json:"discount_code,omitempty"`
	DiscountAmount int64              `json:"discount_amount"`
	FinalPrice     int64              `json:"final_price"`
	Items          []CartItemResponse `json:"items"`
}
