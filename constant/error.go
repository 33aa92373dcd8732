package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrCredentialExists
	ErrInvalidPassword
	ErrProductInactive
	ErrItemNotFound
	ErrInvalidDiscountCode
	ErrEmptyCart
	ErrWalletNotFound
	ErrInsufficientBalance
	ErrInvalidOrderStatus
	ErrAmountExceedsOrder
	ErrAlreadyProcessed
	ErrGiftCardUnavailable
	ErrFileTooLarge
	ErrExternalDependency
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthorize:         "unauthorize request",
	ErrForbidden:           "permission denied",
	ErrCredentialExists:    "email or phone already exists",
	ErrInvalidPassword:     "password invalid",
	ErrProductInactive:     "product is not purchasable",
	ErrItemNotFound:        "item not found in cart",
	ErrInvalidDiscountCode: "discount code is not valid",
	ErrEmptyCart:           "cart is empty",
	ErrWalletNotFound:      "wallet not found",
	ErrInsufficientBalance: "insufficient wallet balance",
	ErrInvalidOrderStatus:  "operation not allowed for current order status",
	ErrAmountExceedsOrder:  "refund amount exceeds order amount",
	ErrAlreadyProcessed:    "transaction already processed",
	ErrGiftCardUnavailable: "gift card is not redeemable",
	ErrFileTooLarge:        "uploaded file exceeds size limit",
	ErrExternalDependency:  "external service failure",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidRequest:      http.StatusUnprocessableEntity,
	ErrUnauthorize:         http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrCredentialExists:    http.StatusBadRequest,
	ErrInvalidPassword:     http.StatusBadRequest,
	ErrProductInactive:     http.StatusBadRequest,
	ErrItemNotFound:        http.StatusNotFound,
	ErrInvalidDiscountCode: http.StatusBadRequest,
	ErrEmptyCart:           http.StatusBadRequest,
	ErrWalletNotFound:      http.StatusBadRequest,
	ErrInsufficientBalance: http.StatusBadRequest,
	ErrInvalidOrderStatus:  http.StatusBadRequest,
	ErrAmountExceedsOrder:  http.StatusBadRequest,
	ErrAlreadyProcessed:    http.StatusBadRequest,
	ErrGiftCardUnavailable: http.StatusBadRequest,
	ErrFileTooLarge:        http.StatusBadRequest,
	ErrExternalDependency:  http.StatusInternalServerError,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthorize:         "0004",
	ErrForbidden:           "0005",
	ErrCredentialExists:    "0006",
	ErrInvalidPassword:     "0007",
	ErrProductInactive:     "0008",
	ErrItemNotFound:        "0009",
	ErrInvalidDiscountCode: "0010",
	ErrEmptyCart:           "0011",
	ErrWalletNotFound:      "0012",
	ErrInsufficientBalance: "0013",
	ErrInvalidOrderStatus:  "0014",
	ErrAmountExceedsOrder:  "0015",
	ErrAlreadyProcessed:    "0016",
	ErrGiftCardUnavailable: "0017",
	ErrFileTooLarge:        "0018",
	ErrExternalDependency:  "0019",
}
