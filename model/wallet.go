package model

import (
	"time"

	"github.com/nedasoft/marketplace-api/constant"
)

type WalletEntity struct {
	ID          uint64     `db:"id" json:"id"`
	UserID      uint64     `db:"user_id" json:"user_id"`
	Balance     int64      `db:"balance" json:"balance"`
	GiftBalance int64      `db:"gift_balance" json:"gift_balance"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type WalletTransactionEntity struct {
	ID          uint64                `db:"id" json:"id"`
	WalletID    uint64                `db:"wallet_id" json:"wallet_id"`
	OrderID     *uint64               `db:"order_id" json:"order_id,omitempty"`
	Amount      int64                 `db:"amount" json:"amount"`
	Kind        constant.WalletTxKind `db:"kind" json:"kind"`
	Description string                `db:"description" json:"description"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
}
