package refund

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	giftcardapp "github.com/nedasoft/marketplace-api/application/giftcard"
	walletapp "github.com/nedasoft/marketplace-api/application/wallet"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	orderrepo "github.com/nedasoft/marketplace-api/repository/order"
	paymentrepo "github.com/nedasoft/marketplace-api/repository/payment"
	txrepo "github.com/nedasoft/marketplace-api/repository/tx"
	"github.com/nedasoft/marketplace-api/thirdparty/rabbitmq"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type RefundApp interface {
	Request(ctx context.Context, principal model.Principal, req *model.RequestRefundRequest) (*model.RefundResponse, error)
	Process(ctx context.Context, principal model.Principal, req *model.ProcessRefundRequest) (*model.RefundResponse, error)
	ListMine(ctx context.Context, principal model.Principal) ([]model.PaymentEntity, error)
	ListPending(ctx context.Context, principal model.Principal) ([]model.PaymentEntity, error)
}

type refundAppImpl struct {
	txRepo      txrepo.TxRepository
	orderRepo   orderrepo.OrderRepository
	paymentRepo paymentrepo.PaymentRepository
	walletApp   walletapp.WalletApp
	giftCardApp giftcardapp.GiftCardApp
	publisher   *rabbitmq.Publisher
}

func NewRefundApp(
	txRepo txrepo.TxRepository,
	orderRepo orderrepo.OrderRepository,
	paymentRepo paymentrepo.PaymentRepository,
	walletApp walletapp.WalletApp,
	giftCardApp giftcardapp.GiftCardApp,
	publisher *rabbitmq.Publisher,
) RefundApp {
	return &refundAppImpl{
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		walletApp:   walletApp,
		giftCardApp: giftCardApp,
		publisher:   publisher,
	}
}

// Request opens a refund: a pending refund row plus the order parked in
// refund_requested. The money does not move until an admin approves.
func (s *refundAppImpl) Request(ctx context.Context, principal model.Principal, req *model.RequestRefundRequest) (*model.RefundResponse, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Request] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderTx(ctx, tx, req.OrderID, true)
	if err != nil {
		logger.Error("[Request] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	if _, ok := constant.RefundableFrom[order.Status]; !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	if req.Amount > order.FinalPrice {
		return nil, errors.SetCustomError(constant.ErrAmountExceedsOrder)
	}

	method := req.Method
	description := req.Description
	paymentID, err := s.paymentRepo.InsertTx(ctx, tx, &model.InsertPaymentTxItem{
		OrderID:      order.ID,
		UserID:       order.UserID,
		Amount:       req.Amount,
		Kind:         constant.PaymentKindRefund,
		Method:       constant.PaymentMethod(method),
		Status:       constant.PaymentStatusPending,
		TrackingCode: newTrackingCode(),
		RefundMethod: &method,
		Description:  &description,
	})
	if err != nil {
		logger.Error("[Request] insert refund", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	ok, err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, order.ID, order.Status, constant.OrderStatusRefundRequested)
	if err != nil {
		logger.Error("[Request] update order status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.StatusHistoryEntity{
		OrderID:    order.ID,
		FromStatus: order.Status,
		ToStatus:   constant.OrderStatusRefundRequested,
		Notes:      &description,
	}); err != nil {
		logger.Error("[Request] insert history", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Request] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishOrderUpdated(order, order.Status, constant.OrderStatusRefundRequested)
	logger.Audit("refund.requested",
		zap.Uint64("transaction_id", paymentID),
		zap.Uint64("order_id", order.ID),
		zap.Uint64("user_id", order.UserID),
		zap.Int64("amount", req.Amount),
		zap.String("method", method),
	)

	return &model.RefundResponse{
		TransactionID: paymentID,
		OrderNumber:   order.OrderNumber,
		Status:        string(constant.PaymentStatusPending),
	}, nil
}

// Process settles a pending refund. Approval moves the money over the
// requested channel and the order to refunded; rejection only flips statuses.
// Either way the refund row leaves pending exactly once.
func (s *refundAppImpl) Process(ctx context.Context, principal model.Principal, req *model.ProcessRefundRequest) (*model.RefundResponse, error) {
	if !principal.Role.Can(constant.PermRefundsProcess) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Process] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	refund, err := s.paymentRepo.GetByIDTx(ctx, tx, req.TransactionID, true)
	if err != nil {
		logger.Error("[Process] lock refund", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if refund == nil || refund.Kind != constant.PaymentKindRefund {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if refund.Status != constant.PaymentStatusPending {
		return nil, errors.SetCustomError(constant.ErrAlreadyProcessed)
	}

	order, err := s.orderRepo.GetOrderTx(ctx, tx, refund.OrderID, true)
	if err != nil {
		logger.Error("[Process] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	approved := constant.RefundDecision(req.Decision) == constant.RefundDecisionApproved

	var refundStatus constant.PaymentStatus
	var orderStatus constant.OrderStatus
	if approved {
		refundStatus = constant.PaymentStatusPaid
		orderStatus = constant.OrderStatusRefunded
		if err := s.settle(ctx, tx, refund, order); err != nil {
			return nil, err
		}
	} else {
		refundStatus = constant.PaymentStatusFailed
		orderStatus = constant.OrderStatusRefundRejected
	}

	ok, err := s.paymentRepo.TransitionStatusTx(ctx, tx, refund.ID, refundStatus, nil)
	if err != nil {
		logger.Error("[Process] update refund status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrAlreadyProcessed)
	}

	ok, err = s.orderRepo.UpdateOrderStatusTx(ctx, tx, order.ID, order.Status, orderStatus)
	if err != nil {
		logger.Error("[Process] update order status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.StatusHistoryEntity{
		OrderID:    order.ID,
		FromStatus: order.Status,
		ToStatus:   orderStatus,
		AdminID:    &principal.UserID,
		Notes:      req.Notes,
	}); err != nil {
		logger.Error("[Process] insert history", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Process] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishOrderUpdated(order, order.Status, orderStatus)
	s.notify(order.UserID, "refund_"+req.Decision, order.OrderNumber)
	logger.Audit("refund.processed",
		zap.Uint64("transaction_id", refund.ID),
		zap.Uint64("order_id", order.ID),
		zap.Uint64("user_id", order.UserID),
		zap.Int64("amount", refund.Amount),
		zap.String("method", string(refund.Method)),
		zap.String("decision", req.Decision),
		zap.Uint64("admin_id", principal.UserID),
	)

	return &model.RefundResponse{
		TransactionID: refund.ID,
		OrderNumber:   order.OrderNumber,
		Status:        string(refundStatus),
	}, nil
}

func (s *refundAppImpl) ListMine(ctx context.Context, principal model.Principal) ([]model.PaymentEntity, error) {
	out, err := s.paymentRepo.ListByUser(ctx, principal.UserID, constant.PaymentKindRefund)
	if err != nil {
		logger.Error("[ListMine] list refunds", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return out, nil
}

func (s *refundAppImpl) ListPending(ctx context.Context, principal model.Principal) ([]model.PaymentEntity, error) {
	if !principal.Role.Can(constant.PermRefundsProcess) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	all, err := s.paymentRepo.ListByKind(ctx, constant.PaymentKindRefund)
	if err != nil {
		logger.Error("[ListPending] list refunds", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	pending := make([]model.PaymentEntity, 0, len(all))
	for _, p := range all {
		if p.Status == constant.PaymentStatusPending {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

func (s *refundAppImpl) settle(ctx context.Context, tx *sqlx.Tx, refund *model.PaymentEntity, order *model.OrderEntity) error {
	switch constant.RefundMethod(*refund.RefundMethod) {
	case constant.RefundMethodWallet:
		if err := s.walletApp.CreditForOrderTx(ctx, tx, order.UserID, order.ID, refund.Amount,
			fmt.Sprintf("refund for order %s", order.OrderNumber)); err != nil {
			return err
		}
	case constant.RefundMethodGiftCard:
		card, err := s.giftCardApp.MintForRefundTx(ctx, tx, order.UserID, refund.Amount, order.OrderNumber)
		if err != nil {
			return err
		}
		if err := s.paymentRepo.SetRefundReferenceTx(ctx, tx, refund.ID, card.Code); err != nil {
			logger.Error("[settle] set refund reference", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	case constant.RefundMethodBank:
		// money moves outside the system; we only keep the transfer reference
		if err := s.paymentRepo.SetRefundReferenceTx(ctx, tx, refund.ID, "BANK-"+newTrackingCode()); err != nil {
			logger.Error("[settle] set refund reference", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	default:
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

func (s *refundAppImpl) publishOrderUpdated(order *model.OrderEntity, from, to constant.OrderStatus) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderUpdated(rabbitmq.OrderUpdatedMessage{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		FromStatus:  string(from),
		ToStatus:    string(to),
		OccurredAt:  time.Now(),
	}); err != nil {
		logger.Error("[publishOrderUpdated] publish", zap.String("error", err.Error()))
	}
}

func (s *refundAppImpl) notify(userID uint64, template, orderNumber string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotification(rabbitmq.NotificationMessage{
		UserID:     userID,
		Template:   template,
		Params:     map[string]string{"order_number": orderNumber},
		OccurredAt: time.Now(),
	}); err != nil {
		logger.Error("[notify] publish", zap.String("error", err.Error()))
	}
}

func newTrackingCode() string {
	return uuid.NewString()
}
