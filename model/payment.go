package model

import (
	"time"

	"github.com/nedasoft/marketplace-api/constant"
)

type PaymentEntity struct {
	ID              uint64                 `db:"id" json:"id"`
	OrderID         uint64                 `db:"order_id" json:"order_id"`
	UserID          uint64                 `db:"user_id" json:"user_id"`
	Amount          int64                  `db:"amount" json:"amount"`
	Kind            constant.PaymentKind   `db:"kind" json:"kind"`
	Method          constant.PaymentMethod `db:"method" json:"method"`
	Status          constant.PaymentStatus `db:"status" json:"status"`
	TrackingCode    string                 `db:"tracking_code" json:"tracking_code"`
	GatewayRef      *string                `db:"gateway_ref" json:"gateway_ref,omitempty"`
	GatewayPayload  *string                `db:"gateway_payload" json:"-"`
	RefundMethod    *string                `db:"refund_method" json:"refund_method,omitempty"`
	RefundReference *string                `db:"refund_reference" json:"refund_reference,omitempty"`
	Description     *string                `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time             `db:"updated_at" json:"updated_at,omitempty"`
}

type InsertPaymentTxItem struct {
	OrderID      uint64
	UserID       uint64
	Amount       int64
	Kind         constant.PaymentKind
	Method       constant.PaymentMethod
	Status       constant.PaymentStatus
	TrackingCode string
	RefundMethod *string
	Description  *string
}

type ProcessPaymentRequest struct {
	Method string  `json:"method" validate:"required,oneof=online wallet"`
	Notes  *string `json:"notes"`
}

type ProcessPaymentResponse struct {
	OrderNumber string  `json:"order_number"`
	PaymentID   uint64  `json:"payment_id"`
	Status      string  `json:"status"`
	RedirectURL *string `json:"redirect_url,omitempty"`
	CallbackURL *string `json:"callback_url,omitempty"`
}

// CheckoutResponse is the pre-payment snapshot with the payment options the
// caller may pick from.
type CheckoutResponse struct {
	Cart           CartResponse    `json:"cart"`
	PaymentOptions []PaymentOption `json:"payment_options"`
}

type PaymentOption struct {
	Method    constant.PaymentMethod `json:"method"`
	Available bool                   `json:"available"`
	Reason    string                 `json:"reason,omitempty"`
}

type VerifyPaymentResponse struct {
	OrderNumber string                 `json:"order_number"`
	Status      constant.PaymentStatus `json:"status"`
}
