package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	authapp "github.com/nedasoft/marketplace-api/application/auth"
	cartapp "github.com/nedasoft/marketplace-api/application/cart"
	checkoutapp "github.com/nedasoft/marketplace-api/application/checkout"
	giftcardapp "github.com/nedasoft/marketplace-api/application/giftcard"
	orderapp "github.com/nedasoft/marketplace-api/application/order"
	refundapp "github.com/nedasoft/marketplace-api/application/refund"
	walletapp "github.com/nedasoft/marketplace-api/application/wallet"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	"github.com/nedasoft/marketplace-api/utils/errors"
	validatorx "github.com/nedasoft/marketplace-api/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	AuthApp     authapp.AuthApp
	CartApp     cartapp.CartApp
	CheckoutApp checkoutapp.CheckoutApp
	OrderApp    orderapp.OrderApp
	RefundApp   refundapp.RefundApp
	WalletApp   walletapp.WalletApp
	GiftCardApp giftcardapp.GiftCardApp
}

func NewTransport(rh *RestHandler, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/auth/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)

	// Gateway callbacks (no user token; the payment id binds the callback)
	mux.HandleFunc("/payments/gateway/{paymentId}", rh.PaymentCallback).Methods(http.MethodGet)
	mux.HandleFunc("/payments/verify/{paymentId}", rh.PaymentCallback).Methods(http.MethodGet)

	// Cart
	mux.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart", rh.ClearCart).Methods(http.MethodDelete)
	mux.HandleFunc("/cart/items", rh.AddCartItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items/{id}", rh.UpdateCartItem).Methods(http.MethodPut)
	mux.HandleFunc("/cart/items/{id}", rh.RemoveCartItem).Methods(http.MethodDelete)
	mux.HandleFunc("/cart/discount", rh.ApplyDiscount).Methods(http.MethodPost)
	mux.HandleFunc("/cart/discount", rh.RemoveDiscount).Methods(http.MethodDelete)

	// Checkout
	mux.HandleFunc("/checkout", rh.CheckoutPreview).Methods(http.MethodGet)
	mux.HandleFunc("/checkout/pay", rh.ProcessPayment).Methods(http.MethodPost)

	// Orders
	mux.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/approve", rh.ApproveOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}/reject", rh.RejectOrder).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}/status", rh.UpdateOrderStatus).Methods(http.MethodPost)
	mux.HandleFunc("/orders/{id}/messages", rh.ListOrderMessages).Methods(http.MethodGet)
	mux.HandleFunc("/orders/{id}/messages", rh.PostOrderMessage).Methods(http.MethodPost)
	mux.HandleFunc("/order-items/{id}/upload-file", rh.UploadDeliveryFile).Methods(http.MethodPost)

	// Refunds
	mux.HandleFunc("/refunds/request", rh.RequestRefund).Methods(http.MethodPost)
	mux.HandleFunc("/refunds/process", rh.ProcessRefund).Methods(http.MethodPost)
	mux.HandleFunc("/refunds/mine", rh.ListMyRefunds).Methods(http.MethodGet)
	mux.HandleFunc("/refunds/all", rh.ListPendingRefunds).Methods(http.MethodGet)

	// Wallet
	mux.HandleFunc("/wallet", rh.GetWallet).Methods(http.MethodGet)
	mux.HandleFunc("/wallet/transactions", rh.ListWalletTransactions).Methods(http.MethodGet)

	// Gift cards
	mux.HandleFunc("/giftcards", rh.CreateGiftCard).Methods(http.MethodPost)
	mux.HandleFunc("/giftcards", rh.ListGiftCards).Methods(http.MethodGet)
	mux.HandleFunc("/giftcards/redeem", rh.RedeemGiftCard).Methods(http.MethodPost)

	// Internal (API key, not user token)
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/purge-conversations", rh.PurgeConversations).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.AuthApp))

	return mux
}

// Register handler
// @Summary Register user
// @Description Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 422 {object} errors.CustomError
// @Router /auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} errors.CustomError
// @Router /auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
