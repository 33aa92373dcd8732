package model

import "time"

type GiftCardEntity struct {
	ID          uint64     `db:"id" json:"id"`
	Code        string     `db:"code" json:"code"`
	Amount      int64      `db:"amount" json:"amount"`
	ExpiryDate  time.Time  `db:"expiry_date" json:"expiry_date"`
	Status      string     `db:"status" json:"status"`
	IsUsed      bool       `db:"is_used" json:"is_used"`
	UserID      *uint64    `db:"user_id" json:"user_id,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UsedAt      *time.Time `db:"used_at" json:"used_at,omitempty"`
}

const (
	GiftCardStatusActive = "active"
	GiftCardStatusUsed   = "used"
)

type CreateGiftCardRequest struct {
	Amount     int64      `json:"amount" validate:"required,gt=0"`
	ExpiryDate *time.Time `json:"expiry_date"`
	UserID     *uint64    `json:"user_id"`
}

type RedeemGiftCardRequest struct {
	Code string `json:"code" validate:"required"`
}

type RedeemGiftCardResponse struct {
	Amount      int64 `json:"amount"`
	GiftBalance int64 `json:"gift_balance"`
}
