package model

import (
	"io"
	"time"

	"github.com/nedasoft/marketplace-api/constant"
)

type OrderEntity struct {
	ID                uint64                 `db:"id" json:"id"`
	OrderNumber       string                 `db:"order_number" json:"order_number"`
	UserID            uint64                 `db:"user_id" json:"user_id"`
	TotalPrice        int64                  `db:"total_price" json:"total_price"`
	DiscountCode      *string                `db:"discount_code" json:"discount_code,omitempty"`
	DiscountAmount    int64                  `db:"discount_amount" json:"discount_amount"`
	FinalPrice        int64                  `db:"final_price" json:"final_price"`
	Status            constant.OrderStatus   `db:"status" json:"status"`
	PaymentMethod     constant.PaymentMethod `db:"payment_method" json:"payment_method"`
	Notes             *string                `db:"notes" json:"notes,omitempty"`
	AdminID           *uint64                `db:"admin_id" json:"admin_id,omitempty"`
	AdminApprovedAt   *time.Time             `db:"admin_approved_at" json:"admin_approved_at,omitempty"`
	SellerDeliveredAt *time.Time             `db:"seller_delivered_at" json:"seller_delivered_at,omitempty"`
	CreatedAt         time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time             `db:"updated_at" json:"updated_at,omitempty"`
}

type OrderItemEntity struct {
	ID         uint64               `db:"id" json:"id"`
	OrderID    uint64               `db:"order_id" json:"order_id"`
	ProductID  uint64               `db:"product_id" json:"product_id"`
	SellerID   uint64               `db:"seller_id" json:"seller_id"`
	Price      int64                `db:"price" json:"price"`
	Quantity   int                  `db:"quantity" json:"quantity"`
	TotalPrice int64                `db:"total_price" json:"total_price"`
	Options    string               `db:"options" json:"-"`
	Status     constant.OrderStatus `db:"status" json:"status"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

// InsertOrderTxItem is the frozen copy of the cart written at checkout.
type InsertOrderTxItem struct {
	OrderNumber    string
	UserID         uint64
	TotalPrice     int64
	DiscountCode   *string
	DiscountAmount int64
	FinalPrice     int64
	Status         constant.OrderStatus
	PaymentMethod  constant.PaymentMethod
	Notes          *string
}

type StatusHistoryEntity struct {
	ID         uint64               `db:"id" json:"id"`
	OrderID    uint64               `db:"order_id" json:"order_id"`
	FromStatus constant.OrderStatus `db:"from_status" json:"from_status"`
	ToStatus   constant.OrderStatus `db:"to_status" json:"to_status"`
	AdminID    *uint64              `db:"admin_id" json:"admin_id,omitempty"`
	Notes      *string              `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes"`
}

type OrderResponse struct {
	OrderNumber    string                 `json:"order_number"`
	Status         constant.OrderStatus   `json:"status"`
	PaymentMethod  constant.PaymentMethod `json:"payment_method"`
	TotalPrice     int64                  `json:"total_price"`
	DiscountAmount int64                  `json:"discount_amount"`
	FinalPrice     int64                  `json:"final_price"`
	CreatedAt      time.Time              `json:"created_at"`
	Items          []OrderItemEntity      `json:"items"`
}

// DeliveryUpload is a streamed seller delivery: the reader is copied to blob
// storage under the configured size ceiling before any database write.
type DeliveryUpload struct {
	Filename    string
	Content     io.Reader
	Description *string
	ExpiresAt   *time.Time
}

// MessageAttachment is an optional streamed file on an order message.
type MessageAttachment struct {
	Filename string
	Content  io.Reader
}

type DeliveryFileEntity struct {
	ID           uint64     `db:"id" json:"id"`
	OrderItemID  uint64     `db:"order_item_id" json:"order_item_id"`
	Path         string     `db:"path" json:"-"`
	OriginalName string     `db:"original_name" json:"original_name"`
	Description  *string    `db:"description" json:"description,omitempty"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
