package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	discountapp "github.com/nedasoft/marketplace-api/application/discount"
	walletapp "github.com/nedasoft/marketplace-api/application/wallet"
	"github.com/nedasoft/marketplace-api/cmd/config"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	cartrepo "github.com/nedasoft/marketplace-api/repository/cart"
	orderrepo "github.com/nedasoft/marketplace-api/repository/order"
	paymentrepo "github.com/nedasoft/marketplace-api/repository/payment"
	txrepo "github.com/nedasoft/marketplace-api/repository/tx"
	"github.com/nedasoft/marketplace-api/thirdparty/gateway"
	"github.com/nedasoft/marketplace-api/thirdparty/rabbitmq"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type CheckoutApp interface {
	Preview(ctx context.Context, userID uint64) (*model.CheckoutResponse, error)
	ProcessPayment(ctx context.Context, userID uint64, req *model.ProcessPaymentRequest) (*model.ProcessPaymentResponse, error)
	VerifyPayment(ctx context.Context, paymentID uint64, gatewayFields map[string]string) (*model.VerifyPaymentResponse, error)
}

type checkoutAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	cartRepo    cartrepo.CartRepository
	orderRepo   orderrepo.OrderRepository
	paymentRepo paymentrepo.PaymentRepository
	walletApp   walletapp.WalletApp
	discountApp discountapp.DiscountApp
	gateway     gateway.PaymentGateway
	publisher   *rabbitmq.Publisher
}

func NewCheckoutApp(
	config *config.Config,
	txRepo txrepo.TxRepository,
	cartRepo cartrepo.CartRepository,
	orderRepo orderrepo.OrderRepository,
	paymentRepo paymentrepo.PaymentRepository,
	walletApp walletapp.WalletApp,
	discountApp discountapp.DiscountApp,
	gw gateway.PaymentGateway,
	publisher *rabbitmq.Publisher,
) CheckoutApp {
	return &checkoutAppImpl{
		config:      config,
		txRepo:      txRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		walletApp:   walletApp,
		discountApp: discountApp,
		gateway:     gw,
		publisher:   publisher,
	}
}

func (s *checkoutAppImpl) Preview(ctx context.Context, userID uint64) (*model.CheckoutResponse, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("[Preview] get cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if cart == nil || cart.TotalItems == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		logger.Error("[Preview] list items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	wallet, err := s.walletApp.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	options := []model.PaymentOption{
		{Method: constant.PaymentMethodOnline, Available: true},
	}
	if wallet.Balance >= cart.FinalPrice {
		options = append(options, model.PaymentOption{Method: constant.PaymentMethodWallet, Available: true})
	} else {
		options = append(options, model.PaymentOption{
			Method:    constant.PaymentMethodWallet,
			Available: false,
			Reason:    constant.ErrorTypeMessage[constant.ErrInsufficientBalance],
		})
	}

	return &model.CheckoutResponse{
		Cart:           *cartSnapshot(cart, items),
		PaymentOptions: options,
	}, nil
}

// ProcessPayment freezes the cart into an order and dispatches to the chosen
// payment path. The wallet path is fully settled in one transaction: order,
// items, payment row, debit and cart clear commit together or not at all.
func (s *checkoutAppImpl) ProcessPayment(ctx context.Context, userID uint64, req *model.ProcessPaymentRequest) (*model.ProcessPaymentResponse, error) {
	method := constant.PaymentMethod(req.Method)

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ProcessPayment] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	cart, err := s.cartRepo.GetByUserIDForUpdateTx(ctx, tx, userID)
	if err != nil {
		logger.Error("[ProcessPayment] lock cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if cart == nil || cart.TotalItems == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	items, err := s.cartRepo.ListItemsTx(ctx, tx, cart.ID)
	if err != nil {
		logger.Error("[ProcessPayment] list items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	orderNumber := newOrderNumber()
	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		OrderNumber:    orderNumber,
		UserID:         userID,
		TotalPrice:     cart.TotalPrice,
		DiscountCode:   cart.DiscountCode,
		DiscountAmount: cart.DiscountAmount,
		FinalPrice:     cart.FinalPrice,
		Status:         constant.OrderStatusPending,
		PaymentMethod:  method,
		Notes:          req.Notes,
	})
	if err != nil {
		logger.Error("[ProcessPayment] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, items); err != nil {
		logger.Error("[ProcessPayment] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if cart.DiscountCode != nil {
		if err := s.discountApp.RecordUsageTx(ctx, tx, *cart.DiscountCode, userID, orderID); err != nil {
			logger.Error("[ProcessPayment] record discount usage", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	switch method {
	case constant.PaymentMethodWallet:
		return s.payWithWallet(ctx, tx, &committed, cart, userID, orderID, orderNumber)
	case constant.PaymentMethodOnline:
		return s.startOnlinePayment(ctx, tx, &committed, userID, orderID, orderNumber, cart.FinalPrice)
	default:
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
}

func (s *checkoutAppImpl) payWithWallet(ctx context.Context, tx *sqlx.Tx, committed *bool, cart *model.CartEntity, userID, orderID uint64, orderNumber string) (*model.ProcessPaymentResponse, error) {
	// Sufficiency is re-checked here under the wallet row lock, not just at
	// preview time: two concurrent checkouts cannot both pass.
	if err := s.walletApp.DebitForOrderTx(ctx, tx, userID, orderID, cart.FinalPrice, "payment for order "+orderNumber); err != nil {
		return nil, err
	}

	paymentID, err := s.paymentRepo.InsertTx(ctx, tx, &model.InsertPaymentTxItem{
		OrderID:      orderID,
		UserID:       userID,
		Amount:       cart.FinalPrice,
		Kind:         constant.PaymentKindPayment,
		Method:       constant.PaymentMethodWallet,
		Status:       constant.PaymentStatusPaid,
		TrackingCode: newTrackingCode(),
	})
	if err != nil {
		logger.Error("[payWithWallet] insert payment", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.markOrderPaidTx(ctx, tx, orderID); err != nil {
		return nil, err
	}

	if err := s.clearCartTx(ctx, tx, cart); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[payWithWallet] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	*committed = true

	s.publishOrderUpdated(orderID, orderNumber, userID, constant.OrderStatusPending, constant.OrderStatusPaid)

	return &model.ProcessPaymentResponse{
		OrderNumber: orderNumber,
		PaymentID:   paymentID,
		Status:      string(constant.PaymentStatusPaid),
	}, nil
}

func (s *checkoutAppImpl) startOnlinePayment(ctx context.Context, tx *sqlx.Tx, committed *bool, userID, orderID uint64, orderNumber string, amount int64) (*model.ProcessPaymentResponse, error) {
	trackingCode := newTrackingCode()
	paymentID, err := s.paymentRepo.InsertTx(ctx, tx, &model.InsertPaymentTxItem{
		OrderID:      orderID,
		UserID:       userID,
		Amount:       amount,
		Kind:         constant.PaymentKindPayment,
		Method:       constant.PaymentMethodOnline,
		Status:       constant.PaymentStatusPending,
		TrackingCode: trackingCode,
	})
	if err != nil {
		logger.Error("[startOnlinePayment] insert payment", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// order and payment stay pending until the gateway callback; the cart is
	// only cleared on a verified payment
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[startOnlinePayment] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	*committed = true

	callbackURL := fmt.Sprintf("%s/payments/verify/%d", s.config.Server.BaseURL, paymentID)
	gwResp, err := s.gateway.CreateTransaction(ctx, &gateway.CreateTransactionRequest{
		Amount:      amount,
		Description: "order " + orderNumber,
		CallbackURL: callbackURL,
		TrackingID:  trackingCode,
	})
	if err != nil {
		logger.Error("[startOnlinePayment] gateway handoff", zap.String("error", err.Error()), zap.Uint64("payment_id", paymentID))
		return nil, errors.SetCustomError(constant.ErrExternalDependency)
	}

	if err := s.paymentRepo.SetGatewayRef(ctx, paymentID, gwResp.Authority); err != nil {
		logger.Error("[startOnlinePayment] set gateway ref", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProcessPaymentResponse{
		OrderNumber: orderNumber,
		PaymentID:   paymentID,
		Status:      string(constant.PaymentStatusPending),
		RedirectURL: &gwResp.RedirectURL,
		CallbackURL: &callbackURL,
	}, nil
}

// VerifyPayment settles a gateway callback. The pending -> paid|failed
// transition is a conditional update, so a duplicate callback finds nothing
// to transition and cannot re-run the success path.
func (s *checkoutAppImpl) VerifyPayment(ctx context.Context, paymentID uint64, gatewayFields map[string]string) (*model.VerifyPaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		logger.Error("[VerifyPayment] get payment", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if payment == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if payment.Status != constant.PaymentStatusPending {
		return nil, errors.SetCustomError(constant.ErrAlreadyProcessed)
	}

	authority := ""
	if payment.GatewayRef != nil {
		authority = *payment.GatewayRef
	}
	if a, ok := gatewayFields["authority"]; ok && authority == "" {
		authority = a
	}

	verify, err := s.gateway.Verify(ctx, &gateway.VerifyRequest{Authority: authority, Amount: payment.Amount})
	if err != nil {
		logger.Error("[VerifyPayment] gateway verify", zap.String("error", err.Error()), zap.Uint64("payment_id", paymentID))
		return nil, errors.SetCustomError(constant.ErrExternalDependency)
	}

	payload := encodePayload(gatewayFields, verify.RefID, verify.RawStatus)

	order, err := s.orderRepo.GetOrder(ctx, payment.OrderID)
	if err != nil {
		logger.Error("[VerifyPayment] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[VerifyPayment] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if !verify.OK {
		ok, err := s.paymentRepo.TransitionStatusTx(ctx, tx, paymentID, constant.PaymentStatusFailed, &payload)
		if err != nil {
			logger.Error("[VerifyPayment] mark failed", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if !ok {
			return nil, errors.SetCustomError(constant.ErrAlreadyProcessed)
		}
		if err := s.txRepo.CommitTx(tx); err != nil {
			logger.Error("[VerifyPayment] commit tx", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		committed = true
		return &model.VerifyPaymentResponse{OrderNumber: order.OrderNumber, Status: constant.PaymentStatusFailed}, nil
	}

	ok, err := s.paymentRepo.TransitionStatusTx(ctx, tx, paymentID, constant.PaymentStatusPaid, &payload)
	if err != nil {
		logger.Error("[VerifyPayment] mark paid", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrAlreadyProcessed)
	}

	if err := s.markOrderPaidTx(ctx, tx, payment.OrderID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserIDForUpdateTx(ctx, tx, order.UserID)
	if err != nil {
		logger.Error("[VerifyPayment] lock cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if cart != nil {
		if err := s.clearCartTx(ctx, tx, cart); err != nil {
			return nil, err
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[VerifyPayment] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishOrderUpdated(order.ID, order.OrderNumber, order.UserID, constant.OrderStatusPending, constant.OrderStatusPaid)

	return &model.VerifyPaymentResponse{OrderNumber: order.OrderNumber, Status: constant.PaymentStatusPaid}, nil
}

func (s *checkoutAppImpl) markOrderPaidTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	ok, err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, constant.OrderStatusPending, constant.OrderStatusPaid)
	if err != nil {
		logger.Error("[markOrderPaidTx] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.StatusHistoryEntity{
		OrderID:    orderID,
		FromStatus: constant.OrderStatusPending,
		ToStatus:   constant.OrderStatusPaid,
	}); err != nil {
		logger.Error("[markOrderPaidTx] insert history", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *checkoutAppImpl) clearCartTx(ctx context.Context, tx *sqlx.Tx, cart *model.CartEntity) error {
	if err := s.cartRepo.DeleteAllItemsTx(ctx, tx, cart.ID); err != nil {
		logger.Error("[clearCartTx] delete items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	cart.TotalItems = 0
	cart.TotalPrice = 0
	cart.DiscountCode = nil
	cart.DiscountAmount = 0
	cart.FinalPrice = 0
	if err := s.cartRepo.UpdateTotalsTx(ctx, tx, cart); err != nil {
		logger.Error("[clearCartTx] reset totals", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *checkoutAppImpl) publishOrderUpdated(orderID uint64, orderNumber string, userID uint64, from, to constant.OrderStatus) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.OrderUpdatedMessage{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		UserID:      userID,
		FromStatus:  string(from),
		ToStatus:    string(to),
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.PublishOrderUpdated(msg); err != nil {
		logger.Error("[publishOrderUpdated] publish", zap.String("error", err.Error()))
	}
}

func cartSnapshot(cart *model.CartEntity, items []model.CartItemEntity) *model.CartResponse {
	resp := &model.CartResponse{
		TotalItems:     cart.TotalItems,
		TotalPrice:     cart.TotalPrice,
		DiscountCode:   cart.DiscountCode,
		DiscountAmount: cart.DiscountAmount,
		FinalPrice:     cart.FinalPrice,
		Items:          make([]model.CartItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, model.CartItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Price:      it.Price,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
			Options:    it.OptionsMap(),
		})
	}
	return resp
}

func encodePayload(fields map[string]string, refID, status string) string {
	merged := map[string]string{}
	for k, v := range fields {
		merged[k] = v
	}
	if refID != "" {
		merged["ref_id"] = refID
	}
	if status != "" {
		merged["gateway_status"] = status
	}
	raw, _ := json.Marshal(merged)
	return string(raw)
}

func newOrderNumber() string {
	return "ORD-" + uuid.NewString()
}

func newTrackingCode() string {
	return uuid.NewString()
}
