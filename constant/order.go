package constant

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusAdminApproved   OrderStatus = "admin_approved"
	OrderStatusSentToSeller    OrderStatus = "sent_to_seller"
	OrderStatusSellerUploaded  OrderStatus = "seller_uploaded"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusDisputed        OrderStatus = "disputed"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusRefundRequested OrderStatus = "refund_requested"
	OrderStatusRefunded        OrderStatus = "refunded"
	OrderStatusRefundRejected  OrderStatus = "refund_rejected"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending: {}, OrderStatusPaid: {}, OrderStatusAdminApproved: {},
	OrderStatusSentToSeller: {}, OrderStatusSellerUploaded: {}, OrderStatusCompleted: {},
	OrderStatusDelivered: {}, OrderStatusDisputed: {}, OrderStatusRejected: {},
	OrderStatusCancelled: {}, OrderStatusRefundRequested: {}, OrderStatusRefunded: {},
	OrderStatusRefundRejected: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// ApprovableFrom lists statuses an admin approval may start from.
var ApprovableFrom = map[OrderStatus]struct{}{
	OrderStatusPaid: {},
}

// RejectableFrom lists statuses an admin rejection may start from.
var RejectableFrom = map[OrderStatus]struct{}{
	OrderStatusPaid:          {},
	OrderStatusAdminApproved: {},
}

// UploadableFrom lists parent-order statuses that accept seller delivery files.
var UploadableFrom = map[OrderStatus]struct{}{
	OrderStatusAdminApproved:  {},
	OrderStatusSentToSeller:   {},
	OrderStatusSellerUploaded: {},
}

// RefundableFrom lists statuses a refund request may start from.
var RefundableFrom = map[OrderStatus]struct{}{
	OrderStatusCompleted: {},
	OrderStatusDelivered: {},
	OrderStatusDisputed:  {},
}
