package constant

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// ConversationRetentionDays is how long order conversations are kept after
// the order completes before the cleanup job purges them.
const ConversationRetentionDays = 15

// GiftCardRefundExpiryMonths is the validity window of refund-issued gift cards.
const GiftCardRefundExpiryMonths = 3

// CartItemMaxQuantity caps the quantity of a single cart line.
const CartItemMaxQuantity = 10
