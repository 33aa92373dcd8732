package constant

type PaymentMethod string

const (
	PaymentMethodOnline   PaymentMethod = "online"
	PaymentMethodWallet   PaymentMethod = "wallet"
	PaymentMethodGiftCard PaymentMethod = "gift_card"
	PaymentMethodBank     PaymentMethod = "bank"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentKind separates forward payments from compensating refunds on the
// same payment table.
type PaymentKind string

const (
	PaymentKindPayment PaymentKind = "payment"
	PaymentKindRefund  PaymentKind = "refund"
)

type RefundMethod string

const (
	RefundMethodWallet   RefundMethod = "wallet"
	RefundMethodGiftCard RefundMethod = "gift_card"
	RefundMethodBank     RefundMethod = "bank"
)

type RefundDecision string

const (
	RefundDecisionApproved RefundDecision = "approved"
	RefundDecisionRejected RefundDecision = "rejected"
)

type WalletTxKind string

const (
	WalletTxDebit      WalletTxKind = "debit"
	WalletTxCredit     WalletTxKind = "credit"
	WalletTxGiftCredit WalletTxKind = "gift_credit"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)
