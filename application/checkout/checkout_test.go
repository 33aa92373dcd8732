package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appcheckout "github.com/nedasoft/marketplace-api/application/checkout"
	"github.com/nedasoft/marketplace-api/cmd/config"
	"github.com/nedasoft/marketplace-api/constant"
	discountappmocks "github.com/nedasoft/marketplace-api/mocks/application/discount"
	walletappmocks "github.com/nedasoft/marketplace-api/mocks/application/wallet"
	cartmocks "github.com/nedasoft/marketplace-api/mocks/repository/cart"
	ordermocks "github.com/nedasoft/marketplace-api/mocks/repository/order"
	paymentmocks "github.com/nedasoft/marketplace-api/mocks/repository/payment"
	txmocks "github.com/nedasoft/marketplace-api/mocks/repository/tx"
	gatewaymocks "github.com/nedasoft/marketplace-api/mocks/thirdparty/gateway"
	"github.com/nedasoft/marketplace-api/model"
	"github.com/nedasoft/marketplace-api/thirdparty/gateway"
	cerr "github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

type checkoutFields struct {
	config      *config.Config
	txRepo      *txmocks.TxRepository
	cartRepo    *cartmocks.CartRepository
	orderRepo   *ordermocks.OrderRepository
	paymentRepo *paymentmocks.PaymentRepository
	walletApp   *walletappmocks.WalletApp
	discountApp *discountappmocks.DiscountApp
	gateway     *gatewaymocks.PaymentGateway
}

func newCheckoutFields(t *testing.T) checkoutFields {
	return checkoutFields{
		config: &config.Config{
			Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		},
		txRepo:      txmocks.NewTxRepository(t),
		cartRepo:    cartmocks.NewCartRepository(t),
		orderRepo:   ordermocks.NewOrderRepository(t),
		paymentRepo: paymentmocks.NewPaymentRepository(t),
		walletApp:   walletappmocks.NewWalletApp(t),
		discountApp: discountappmocks.NewDiscountApp(t),
		gateway:     gatewaymocks.NewPaymentGateway(t),
	}
}

func (f checkoutFields) app() appcheckout.CheckoutApp {
	return appcheckout.NewCheckoutApp(f.config, f.txRepo, f.cartRepo, f.orderRepo, f.paymentRepo, f.walletApp, f.discountApp, f.gateway, nil)
}

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestCheckoutApp_ProcessPayment_Wallet(t *testing.T) {
	items := []model.CartItemEntity{
		{ID: 1, CartID: 3, ProductID: 10, SellerID: 5, Price: 400_000, Quantity: 2, TotalPrice: 800_000},
	}

	t.Run("success: everything settles in one transaction", func(t *testing.T) {
		f := newCheckoutFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()

		f.cartRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.CartEntity{
			ID: 3, UserID: 1, TotalItems: 2, TotalPrice: 800_000, FinalPrice: 800_000,
		}, nil).Once()
		f.cartRepo.On("ListItemsTx", mock.Anything, tx, uint64(3)).Return(items, nil).Once()

		f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertOrderTxItem) bool {
			return req.UserID == 1 && req.Status == constant.OrderStatusPending &&
				req.PaymentMethod == constant.PaymentMethodWallet && req.FinalPrice == 800_000
		})).Return(uint64(42), nil).Once()
		f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), items).Return(nil).Once()

		f.walletApp.On("DebitForOrderTx", mock.Anything, tx, uint64(1), uint64(42), int64(800_000), mock.Anything).Return(nil).Once()

		f.paymentRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertPaymentTxItem) bool {
			return req.OrderID == 42 && req.Kind == constant.PaymentKindPayment &&
				req.Method == constant.PaymentMethodWallet && req.Status == constant.PaymentStatusPaid
		})).Return(uint64(7), nil).Once()

		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(42), constant.OrderStatusPending, constant.OrderStatusPaid).Return(true, nil).Once()
		f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()

		f.cartRepo.On("DeleteAllItemsTx", mock.Anything, tx, uint64(3)).Return(nil).Once()
		f.cartRepo.On("UpdateTotalsTx", mock.Anything, tx, mock.MatchedBy(func(c *model.CartEntity) bool {
			return c.TotalItems == 0 && c.FinalPrice == 0 && c.DiscountCode == nil
		})).Return(nil).Once()

		got, err := f.app().ProcessPayment(context.Background(), 1, &model.ProcessPaymentRequest{Method: "wallet"})
		if err != nil {
			t.Fatalf("ProcessPayment() error = %v", err)
		}
		if got.PaymentID != 7 || got.Status != string(constant.PaymentStatusPaid) {
			t.Fatalf("ProcessPayment() = %+v", got)
		}
	})

	t.Run("error: insufficient balance rolls everything back", func(t *testing.T) {
		f := newCheckoutFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()

		f.cartRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.CartEntity{
			ID: 3, UserID: 1, TotalItems: 2, TotalPrice: 800_000, FinalPrice: 800_000,
		}, nil).Once()
		f.cartRepo.On("ListItemsTx", mock.Anything, tx, uint64(3)).Return(items, nil).Once()
		f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(42), nil).Once()
		f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), items).Return(nil).Once()

		f.walletApp.On("DebitForOrderTx", mock.Anything, tx, uint64(1), uint64(42), int64(800_000), mock.Anything).
			Return(cerr.SetCustomError(constant.ErrInsufficientBalance)).Once()

		_, err := f.app().ProcessPayment(context.Background(), 1, &model.ProcessPaymentRequest{Method: "wallet"})
		if err == nil {
			t.Fatal("ProcessPayment() expected error")
		}
		assertErrCode(t, err, constant.ErrInsufficientBalance)
	})

	t.Run("error: empty cart", func(t *testing.T) {
		f := newCheckoutFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		f.cartRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.CartEntity{
			ID: 3, UserID: 1, TotalItems: 0,
		}, nil).Once()

		_, err := f.app().ProcessPayment(context.Background(), 1, &model.ProcessPaymentRequest{Method: "wallet"})
		if err == nil {
			t.Fatal("ProcessPayment() expected error")
		}
		assertErrCode(t, err, constant.ErrEmptyCart)
	})
}

func TestCheckoutApp_ProcessPayment_Online(t *testing.T) {
	items := []model.CartItemEntity{
		{ID: 1, CartID: 3, ProductID: 10, Price: 500_000, Quantity: 1, TotalPrice: 500_000},
	}

	t.Run("success: order committed pending, redirect returned", func(t *testing.T) {
		f := newCheckoutFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()

		f.cartRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.CartEntity{
			ID: 3, UserID: 1, TotalItems: 1, TotalPrice: 500_000, FinalPrice: 500_000,
		}, nil).Once()
		f.cartRepo.On("ListItemsTx", mock.Anything, tx, uint64(3)).Return(items, nil).Once()
		f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(42), nil).Once()
		f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), items).Return(nil).Once()

		f.paymentRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertPaymentTxItem) bool {
			return req.Method == constant.PaymentMethodOnline && req.Status == constant.PaymentStatusPending
		})).Return(uint64(7), nil).Once()

		f.gateway.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req *gateway.CreateTransactionRequest) bool {
			return req.Amount == 500_000 && req.CallbackURL == "http://localhost:8080/payments/verify/7"
		})).Return(&gateway.CreateTransactionResponse{
			Authority:   "A-123",
			RedirectURL: "https://gateway.example.ir/v1/payment/start/A-123",
		}, nil).Once()
		f.paymentRepo.On("SetGatewayRef", mock.Anything, uint64(7), "A-123").Return(nil).Once()

		got, err := f.app().ProcessPayment(context.Background(), 1, &model.ProcessPaymentRequest{Method: "online"})
		if err != nil {
			t.Fatalf("ProcessPayment() error = %v", err)
		}
		if got.Status != string(constant.PaymentStatusPending) || got.RedirectURL == nil {
			t.Fatalf("ProcessPayment() = %+v", got)
		}
	})

	t.Run("error: gateway handoff failure leaves the order pending", func(t *testing.T) {
		f := newCheckoutFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()

		f.cartRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.CartEntity{
			ID: 3, UserID: 1, TotalItems: 1, TotalPrice: 500_000, FinalPrice: 500_000,
		}, nil).Once()
		f.cartRepo.On("ListItemsTx", mock.Anything, tx, uint64(3)).Return(items, nil).Once()
		f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(42), nil).Once()
		f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(42), items).Return(nil).Once()
		f.paymentRepo.On("InsertTx", mock.Anything, tx, mock.Anything).Return(uint64(7), nil).Once()

		f.gateway.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, errors.New("gateway down")).Once()

		_, err := f.app().ProcessPayment(context.Background(), 1, &model.ProcessPaymentRequest{Method: "online"})
		if err == nil {
			t.Fatal("ProcessPayment() expected error")
		}
		assertErrCode(t, err, constant.ErrExternalDependency)
	})
}

func TestCheckoutApp_VerifyPayment(t *testing.T) {
	ref := "A-123"
	pending := func() *model.PaymentEntity {
		return &model.PaymentEntity{
			ID: 7, OrderID: 42, UserID: 1, Amount: 500_000,
			Kind: constant.PaymentKindPayment, Method: constant.PaymentMethodOnline,
			Status: constant.PaymentStatusPending, GatewayRef: &ref,
		}
	}
	order := &model.OrderEntity{ID: 42, OrderNumber: "ORD-1", UserID: 1, Status: constant.OrderStatusPending}

	t.Run("success: verified payment settles order and clears cart", func(t *testing.T) {
		f := newCheckoutFields(t)
		f.paymentRepo.On("GetByID", mock.Anything, uint64(7)).Return(pending(), nil).Once()
		f.gateway.On("Verify", mock.Anything, &gateway.VerifyRequest{Authority: ref, Amount: 500_000}).
			Return(&gateway.VerifyResponse{OK: true, RefID: "R-9", RawStatus: "OK"}, nil).Once()
		f.orderRepo.On("GetOrder", mock.Anything, uint64(42)).Return(order, nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()

		f.paymentRepo.On("TransitionStatusTx", mock.Anything, tx, uint64(7), constant.PaymentStatusPaid, mock.Anything).Return(true, nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(42), constant.OrderStatusPending, constant.OrderStatusPaid).Return(true, nil).Once()
		f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
		f.cartRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.CartEntity{ID: 3, UserID: 1, TotalItems: 1}, nil).Once()
		f.cartRepo.On("DeleteAllItemsTx", mock.Anything, tx, uint64(3)).Return(nil).Once()
		f.cartRepo.On("UpdateTotalsTx", mock.Anything, tx, mock.Anything).Return(nil).Once()

		got, err := f.app().VerifyPayment(context.Background(), 7, map[string]string{"authority": ref})
		if err != nil {
			t.Fatalf("VerifyPayment() error = %v", err)
		}
		if got.Status != constant.PaymentStatusPaid {
			t.Fatalf("VerifyPayment() status = %s", got.Status)
		}
	})

	t.Run("error: second callback finds a settled payment", func(t *testing.T) {
		f := newCheckoutFields(t)
		settled := pending()
		settled.Status = constant.PaymentStatusPaid
		f.paymentRepo.On("GetByID", mock.Anything, uint64(7)).Return(settled, nil).Once()

		_, err := f.app().VerifyPayment(context.Background(), 7, nil)
		if err == nil {
			t.Fatal("VerifyPayment() expected error")
		}
		assertErrCode(t, err, constant.ErrAlreadyProcessed)
	})

	t.Run("error: concurrent callback loses the conditional update", func(t *testing.T) {
		f := newCheckoutFields(t)
		f.paymentRepo.On("GetByID", mock.Anything, uint64(7)).Return(pending(), nil).Once()
		f.gateway.On("Verify", mock.Anything, mock.Anything).
			Return(&gateway.VerifyResponse{OK: true, RefID: "R-9", RawStatus: "OK"}, nil).Once()
		f.orderRepo.On("GetOrder", mock.Anything, uint64(42)).Return(order, nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()

		// the race winner already flipped the row off pending
		f.paymentRepo.On("TransitionStatusTx", mock.Anything, tx, uint64(7), constant.PaymentStatusPaid, mock.Anything).Return(false, nil).Once()

		_, err := f.app().VerifyPayment(context.Background(), 7, nil)
		if err == nil {
			t.Fatal("VerifyPayment() expected error")
		}
		assertErrCode(t, err, constant.ErrAlreadyProcessed)
	})

	t.Run("failed verification marks the payment failed only", func(t *testing.T) {
		f := newCheckoutFields(t)
		f.paymentRepo.On("GetByID", mock.Anything, uint64(7)).Return(pending(), nil).Once()
		f.gateway.On("Verify", mock.Anything, mock.Anything).
			Return(&gateway.VerifyResponse{OK: false, RawStatus: "NOK"}, nil).Once()
		f.orderRepo.On("GetOrder", mock.Anything, uint64(42)).Return(order, nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.paymentRepo.On("TransitionStatusTx", mock.Anything, tx, uint64(7), constant.PaymentStatusFailed, mock.Anything).Return(true, nil).Once()

		got, err := f.app().VerifyPayment(context.Background(), 7, nil)
		if err != nil {
			t.Fatalf("VerifyPayment() error = %v", err)
		}
		if got.Status != constant.PaymentStatusFailed {
			t.Fatalf("VerifyPayment() status = %s", got.Status)
		}
	})
}
