package model

import (
	"time"

	"github.com/nedasoft/marketplace-api/constant"
)

type OrderMessageEntity struct {
	ID             uint64        `db:"id" json:"id"`
	OrderID        uint64        `db:"order_id" json:"order_id"`
	SenderID       uint64        `db:"sender_id" json:"sender_id"`
	SenderRole     constant.Role `db:"sender_role" json:"sender_role"`
	Body           string        `db:"body" json:"body"`
	AttachmentPath *string       `db:"attachment_path" json:"-"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

type PostMessageRequest struct {
	Body string `json:"body" validate:"required"`
}
