package model

type RequestRefundRequest struct {
	OrderID     uint64 `json:"order_id" validate:"required"`
	Method      string `json:"method" validate:"required,oneof=wallet gift_card bank"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
}

type ProcessRefundRequest struct {
	TransactionID uint64  `json:"transaction_id" validate:"required"`
	Decision      string  `json:"decision" validate:"required,oneof=approved rejected"`
	Notes         *string `json:"notes"`
}

type RefundResponse struct {
	TransactionID uint64 `json:"transaction_id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
}
