package refund_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	apprefund "github.com/nedasoft/marketplace-api/application/refund"
	"github.com/nedasoft/marketplace-api/constant"
	giftcardappmocks "github.com/nedasoft/marketplace-api/mocks/application/giftcard"
	walletappmocks "github.com/nedasoft/marketplace-api/mocks/application/wallet"
	ordermocks "github.com/nedasoft/marketplace-api/mocks/repository/order"
	paymentmocks "github.com/nedasoft/marketplace-api/mocks/repository/payment"
	txmocks "github.com/nedasoft/marketplace-api/mocks/repository/tx"
	"github.com/nedasoft/marketplace-api/model"
	cerr "github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

type refundFields struct {
	txRepo      *txmocks.TxRepository
	orderRepo   *ordermocks.OrderRepository
	paymentRepo *paymentmocks.PaymentRepository
	walletApp   *walletappmocks.WalletApp
	giftCardApp *giftcardappmocks.GiftCardApp
}

func newRefundFields(t *testing.T) refundFields {
	return refundFields{
		txRepo:      txmocks.NewTxRepository(t),
		orderRepo:   ordermocks.NewOrderRepository(t),
		paymentRepo: paymentmocks.NewPaymentRepository(t),
		walletApp:   walletappmocks.NewWalletApp(t),
		giftCardApp: giftcardappmocks.NewGiftCardApp(t),
	}
}

func (f refundFields) app() apprefund.RefundApp {
	return apprefund.NewRefundApp(f.txRepo, f.orderRepo, f.paymentRepo, f.walletApp, f.giftCardApp, nil)
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

var admin = model.Principal{UserID: 99, Role: constant.RoleAdmin}

func completedOrder() *model.OrderEntity {
	return &model.OrderEntity{
		ID: 42, OrderNumber: "ORD-1", UserID: 1,
		TotalPrice: 500_000, FinalPrice: 500_000,
		Status: constant.OrderStatusCompleted,
	}
}

func TestRefundApp_Request(t *testing.T) {
	tests := []struct {
		name      string
		principal model.Principal
		req       *model.RequestRefundRequest
		mockCall  func(f refundFields)
		errCode   constant.ErrorType
	}{
		{
			name:      "success: pending refund row plus parked order",
			principal: model.Principal{UserID: 1, Role: constant.RoleUser},
			req:       &model.RequestRefundRequest{OrderID: 42, Method: "wallet", Amount: 500_000, Description: "file never delivered"},
			mockCall: func(f refundFields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(completedOrder(), nil).Once()
				f.paymentRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(p *model.InsertPaymentTxItem) bool {
					return p.OrderID == 42 && p.Kind == constant.PaymentKindRefund &&
						p.Status == constant.PaymentStatusPending && p.Amount == 500_000 &&
						p.RefundMethod != nil && *p.RefundMethod == "wallet"
				})).Return(uint64(7), nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(42), constant.OrderStatusCompleted, constant.OrderStatusRefundRequested).Return(true, nil).Once()
				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:      "error: amount exceeds what the order settled for",
			principal: model.Principal{UserID: 1, Role: constant.RoleUser},
			req:       &model.RequestRefundRequest{OrderID: 42, Method: "wallet", Amount: 600_000, Description: "too much"},
			mockCall: func(f refundFields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(completedOrder(), nil).Once()
			},
			errCode: constant.ErrAmountExceedsOrder,
		},
		{
			name:      "error: pending order is not refundable",
			principal: model.Principal{UserID: 1, Role: constant.RoleUser},
			req:       &model.RequestRefundRequest{OrderID: 42, Method: "wallet", Amount: 100_000, Description: "changed my mind"},
			mockCall: func(f refundFields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				order := completedOrder()
				order.Status = constant.OrderStatusPending
				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(order, nil).Once()
			},
			errCode: constant.ErrInvalidOrderStatus,
		},
		{
			name:      "error: someone else's order",
			principal: model.Principal{UserID: 2, Role: constant.RoleUser},
			req:       &model.RequestRefundRequest{OrderID: 42, Method: "wallet", Amount: 100_000, Description: "not mine"},
			mockCall: func(f refundFields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(completedOrder(), nil).Once()
			},
			errCode: constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRefundFields(t)
			tt.mockCall(f)

			got, err := f.app().Request(context.Background(), tt.principal, tt.req)
			if tt.errCode == constant.Successful {
				if err != nil {
					t.Fatalf("Request() error = %v", err)
				}
				if got.TransactionID != 7 || got.Status != string(constant.PaymentStatusPending) {
					t.Fatalf("Request() = %+v", got)
				}
				return
			}
			if err == nil {
				t.Fatal("Request() expected error")
			}
			assertErrCode(t, err, tt.errCode)
		})
	}
}

func TestRefundApp_Process(t *testing.T) {
	pendingRefund := func(method string) *model.PaymentEntity {
		return &model.PaymentEntity{
			ID: 7, OrderID: 42, UserID: 1, Amount: 500_000,
			Kind: constant.PaymentKindRefund, Method: constant.PaymentMethod(method),
			Status: constant.PaymentStatusPending, RefundMethod: &method,
		}
	}
	parked := func() *model.OrderEntity {
		order := completedOrder()
		order.Status = constant.OrderStatusRefundRequested
		return order
	}

	t.Run("success: approved wallet refund credits the wallet", func(t *testing.T) {
		f := newRefundFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.paymentRepo.On("GetByIDTx", mock.Anything, tx, uint64(7), true).Return(pendingRefund("wallet"), nil).Once()
		f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(parked(), nil).Once()
		f.walletApp.On("CreditForOrderTx", mock.Anything, tx, uint64(1), uint64(42), int64(500_000), "refund for order ORD-1").Return(nil).Once()
		f.paymentRepo.On("TransitionStatusTx", mock.Anything, tx, uint64(7), constant.PaymentStatusPaid, (*string)(nil)).Return(true, nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(42), constant.OrderStatusRefundRequested, constant.OrderStatusRefunded).Return(true, nil).Once()
		f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.StatusHistoryEntity) bool {
			return h.ToStatus == constant.OrderStatusRefunded && h.AdminID != nil && *h.AdminID == 99
		})).Return(nil).Once()

		got, err := f.app().Process(context.Background(), admin, &model.ProcessRefundRequest{TransactionID: 7, Decision: "approved"})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if got.Status != string(constant.PaymentStatusPaid) {
			t.Fatalf("Process() status = %s", got.Status)
		}
	})

	t.Run("success: approved gift card refund mints a card", func(t *testing.T) {
		f := newRefundFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.paymentRepo.On("GetByIDTx", mock.Anything, tx, uint64(7), true).Return(pendingRefund("gift_card"), nil).Once()
		f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(parked(), nil).Once()
		f.giftCardApp.On("MintForRefundTx", mock.Anything, tx, uint64(1), int64(500_000), "ORD-1").
			Return(&model.GiftCardEntity{ID: 3, Code: "GC-XYZ", Amount: 500_000}, nil).Once()
		f.paymentRepo.On("SetRefundReferenceTx", mock.Anything, tx, uint64(7), "GC-XYZ").Return(nil).Once()
		f.paymentRepo.On("TransitionStatusTx", mock.Anything, tx, uint64(7), constant.PaymentStatusPaid, (*string)(nil)).Return(true, nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(42), constant.OrderStatusRefundRequested, constant.OrderStatusRefunded).Return(true, nil).Once()
		f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()

		if _, err := f.app().Process(context.Background(), admin, &model.ProcessRefundRequest{TransactionID: 7, Decision: "approved"}); err != nil {
			t.Fatalf("Process() error = %v", err)
		}
	})

	t.Run("success: rejection moves no money", func(t *testing.T) {
		f := newRefundFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.paymentRepo.On("GetByIDTx", mock.Anything, tx, uint64(7), true).Return(pendingRefund("wallet"), nil).Once()
		f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(42), true).Return(parked(), nil).Once()
		f.paymentRepo.On("TransitionStatusTx", mock.Anything, tx, uint64(7), constant.PaymentStatusFailed, (*string)(nil)).Return(true, nil).Once()
		f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(42), constant.OrderStatusRefundRequested, constant.OrderStatusRefundRejected).Return(true, nil).Once()
		f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()

		got, err := f.app().Process(context.Background(), admin, &model.ProcessRefundRequest{TransactionID: 7, Decision: "rejected"})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if got.Status != string(constant.PaymentStatusFailed) {
			t.Fatalf("Process() status = %s", got.Status)
		}
	})

	t.Run("error: refund already settled", func(t *testing.T) {
		f := newRefundFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		settled := pendingRefund("wallet")
		settled.Status = constant.PaymentStatusPaid
		f.paymentRepo.On("GetByIDTx", mock.Anything, tx, uint64(7), true).Return(settled, nil).Once()

		_, err := f.app().Process(context.Background(), admin, &model.ProcessRefundRequest{TransactionID: 7, Decision: "approved"})
		if err == nil {
			t.Fatal("Process() expected error")
		}
		assertErrCode(t, err, constant.ErrAlreadyProcessed)
	})

	t.Run("error: regular payment row is not a refund", func(t *testing.T) {
		f := newRefundFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		payment := pendingRefund("wallet")
		payment.Kind = constant.PaymentKindPayment
		f.paymentRepo.On("GetByIDTx", mock.Anything, tx, uint64(7), true).Return(payment, nil).Once()

		_, err := f.app().Process(context.Background(), admin, &model.ProcessRefundRequest{TransactionID: 7, Decision: "approved"})
		if err == nil {
			t.Fatal("Process() expected error")
		}
		assertErrCode(t, err, constant.ErrNotFound)
	})

	t.Run("error: non-admin may not process", func(t *testing.T) {
		f := newRefundFields(t)
		_, err := f.app().Process(context.Background(), model.Principal{UserID: 1, Role: constant.RoleUser}, &model.ProcessRefundRequest{TransactionID: 7, Decision: "approved"})
		if err == nil {
			t.Fatal("Process() expected error")
		}
		assertErrCode(t, err, constant.ErrForbidden)
	})
}

func TestRefundApp_ListPending(t *testing.T) {
	t.Run("success: only pending refunds survive the filter", func(t *testing.T) {
		f := newRefundFields(t)
		f.paymentRepo.On("ListByKind", mock.Anything, constant.PaymentKindRefund).Return([]model.PaymentEntity{
			{ID: 1, Status: constant.PaymentStatusPending},
			{ID: 2, Status: constant.PaymentStatusPaid},
			{ID: 3, Status: constant.PaymentStatusPending},
		}, nil).Once()

		got, err := f.app().ListPending(context.Background(), admin)
		if err != nil {
			t.Fatalf("ListPending() error = %v", err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
			t.Fatalf("ListPending() = %+v", got)
		}
	})

	t.Run("error: regular user may not list all refunds", func(t *testing.T) {
		f := newRefundFields(t)
		_, err := f.app().ListPending(context.Background(), model.Principal{UserID: 1, Role: constant.RoleUser})
		if err == nil {
			t.Fatal("ListPending() expected error")
		}
		assertErrCode(t, err, constant.ErrForbidden)
	})
}
