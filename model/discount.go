package model

import (
	"time"

	"github.com/nedasoft/marketplace-api/constant"
)

type DiscountCodeEntity struct {
	ID             uint64                `db:"id" json:"id"`
	Code           string                `db:"code" json:"code"`
	Type           constant.DiscountType `db:"type" json:"type"`
	Value          int64                 `db:"value" json:"value"`
	IsActive       bool                  `db:"is_active" json:"is_active"`
	ExpiresAt      *time.Time            `db:"expires_at" json:"expires_at,omitempty"`
	MaxUses        int                   `db:"max_uses" json:"max_uses"`
	MaxUsesPerUser int                   `db:"max_uses_per_user" json:"max_uses_per_user"`
	MinOrderAmount int64                 `db:"min_order_amount" json:"min_order_amount"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
}

// DiscountValidateInput carries everything the eligibility chain needs.
type DiscountValidateInput struct {
	Code       string
	UserID     uint64
	Amount     int64
	ProductIDs []uint64
}
