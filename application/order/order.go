package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/cmd/config"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	conversationrepo "github.com/nedasoft/marketplace-api/repository/conversation"
	orderrepo "github.com/nedasoft/marketplace-api/repository/order"
	txrepo "github.com/nedasoft/marketplace-api/repository/tx"
	"github.com/nedasoft/marketplace-api/thirdparty/rabbitmq"
	"github.com/nedasoft/marketplace-api/thirdparty/storage"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	Get(ctx context.Context, principal model.Principal, orderID uint64) (*model.OrderResponse, error)
	ListMine(ctx context.Context, principal model.Principal) ([]model.OrderEntity, error)
	Approve(ctx context.Context, principal model.Principal, orderID uint64) error
	Reject(ctx context.Context, principal model.Principal, orderID uint64, reason string) error
	UploadDeliveryFile(ctx context.Context, principal model.Principal, orderItemID uint64, upload *model.DeliveryUpload) (*model.DeliveryFileEntity, error)
	UpdateStatus(ctx context.Context, principal model.Principal, orderID uint64, status constant.OrderStatus, notes *string) error
	PostMessage(ctx context.Context, principal model.Principal, orderID uint64, body string, attachment *model.MessageAttachment) (*model.OrderMessageEntity, error)
	ListMessages(ctx context.Context, principal model.Principal, orderID uint64) ([]model.OrderMessageEntity, error)
	PurgeExpiredConversations(ctx context.Context) (int, error)
}

type orderAppImpl struct {
	config           *config.Config
	txRepo           txrepo.TxRepository
	orderRepo        orderrepo.OrderRepository
	conversationRepo conversationrepo.ConversationRepository
	blobStore        storage.BlobStorage
	publisher        *rabbitmq.Publisher
}

func NewOrderApp(
	config *config.Config,
	txRepo txrepo.TxRepository,
	orderRepo orderrepo.OrderRepository,
	conversationRepo conversationrepo.ConversationRepository,
	blobStore storage.BlobStorage,
	publisher *rabbitmq.Publisher,
) OrderApp {
	return &orderAppImpl{
		config:           config,
		txRepo:           txRepo,
		orderRepo:        orderRepo,
		conversationRepo: conversationRepo,
		blobStore:        blobStore,
		publisher:        publisher,
	}
}

func (s *orderAppImpl) Get(ctx context.Context, principal model.Principal, orderID uint64) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		logger.Error("[Get] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.UserID != principal.UserID && !principal.Role.Can(constant.PermOrdersView) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	items, err := s.orderRepo.ListOrderItems(ctx, orderID)
	if err != nil {
		logger.Error("[Get] list items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.OrderResponse{
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		PaymentMethod:  order.PaymentMethod,
		TotalPrice:     order.TotalPrice,
		DiscountAmount: order.DiscountAmount,
		FinalPrice:     order.FinalPrice,
		CreatedAt:      order.CreatedAt,
		Items:          items,
	}, nil
}

func (s *orderAppImpl) ListMine(ctx context.Context, principal model.Principal) ([]model.OrderEntity, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, principal.UserID)
	if err != nil {
		logger.Error("[ListMine] list orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return orders, nil
}

// Approve moves a paid order to admin_approved and fans the new status out
// to every item. The sellers on the order are the ones who have work to do
// next, so they get the notification.
func (s *orderAppImpl) Approve(ctx context.Context, principal model.Principal, orderID uint64) error {
	if !principal.Role.Can(constant.PermOrdersProcess) {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	return s.transition(ctx, orderID, func(tx *sqlx.Tx, order *model.OrderEntity) (constant.OrderStatus, error) {
		if _, ok := constant.ApprovableFrom[order.Status]; !ok {
			return "", errors.SetCustomError(constant.ErrInvalidOrderStatus)
		}
		if err := s.orderRepo.SetAdminApprovalTx(ctx, tx, orderID, principal.UserID); err != nil {
			return "", err
		}
		if err := s.orderRepo.UpdateItemStatusesTx(ctx, tx, orderID, constant.OrderStatusAdminApproved); err != nil {
			return "", err
		}
		return constant.OrderStatusAdminApproved, nil
	}, &principal.UserID, nil, func(order *model.OrderEntity) {
		s.notifySellers(ctx, order, "order_approved")
	})
}

func (s *orderAppImpl) Reject(ctx context.Context, principal model.Principal, orderID uint64, reason string) error {
	if !principal.Role.Can(constant.PermOrdersProcess) {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	return s.transition(ctx, orderID, func(tx *sqlx.Tx, order *model.OrderEntity) (constant.OrderStatus, error) {
		if _, ok := constant.RejectableFrom[order.Status]; !ok {
			return "", errors.SetCustomError(constant.ErrInvalidOrderStatus)
		}
		if err := s.orderRepo.UpdateItemStatusesTx(ctx, tx, orderID, constant.OrderStatusRejected); err != nil {
			return "", err
		}
		return constant.OrderStatusRejected, nil
	}, &principal.UserID, &reason, func(order *model.OrderEntity) {
		s.notify(order.UserID, "order_rejected", order.OrderNumber)
	})
}

// UploadDeliveryFile streams a seller's delivery to blob storage, then
// records it. The first upload for an order still in admin_approved or
// sent_to_seller advances both the order and the item to seller_uploaded.
func (s *orderAppImpl) UploadDeliveryFile(ctx context.Context, principal model.Principal, orderItemID uint64, upload *model.DeliveryUpload) (*model.DeliveryFileEntity, error) {
	if !principal.Role.Can(constant.PermOrdersDeliver) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	item, err := s.orderRepo.GetOrderItem(ctx, orderItemID)
	if err != nil {
		logger.Error("[UploadDeliveryFile] get item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if principal.Role != constant.RoleAdmin && item.SellerID != principal.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	order, err := s.orderRepo.GetOrder(ctx, item.OrderID)
	if err != nil {
		logger.Error("[UploadDeliveryFile] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if _, ok := constant.UploadableFrom[order.Status]; !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	// stream to storage before touching the database; an oversized body is
	// rejected here with nothing to roll back
	dir := fmt.Sprintf("orders/%d/deliveries", order.ID)
	path, err := s.blobStore.Save(dir, uuid.NewString()+"_"+upload.Filename, upload.Content, s.config.Storage.MaxUploadBytes)
	if err != nil {
		if _, ok := err.(storage.ErrTooLarge); ok {
			return nil, errors.SetCustomError(constant.ErrFileTooLarge)
		}
		logger.Error("[UploadDeliveryFile] store file", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrExternalDependency)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UploadDeliveryFile] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
			_ = s.blobStore.Delete(path)
		}
	}()

	locked, err := s.orderRepo.GetOrderTx(ctx, tx, order.ID, true)
	if err != nil {
		logger.Error("[UploadDeliveryFile] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if locked == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if _, ok := constant.UploadableFrom[locked.Status]; !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	file := &model.DeliveryFileEntity{
		OrderItemID:  orderItemID,
		Path:         path,
		OriginalName: upload.Filename,
		Description:  upload.Description,
		ExpiresAt:    upload.ExpiresAt,
	}
	if err := s.orderRepo.InsertDeliveryFileTx(ctx, tx, file); err != nil {
		logger.Error("[UploadDeliveryFile] insert file", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if locked.Status != constant.OrderStatusSellerUploaded {
		ok, err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, locked.ID, locked.Status, constant.OrderStatusSellerUploaded)
		if err != nil {
			logger.Error("[UploadDeliveryFile] update status", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if !ok {
			return nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
		}
		if err := s.orderRepo.SetSellerDeliveredTx(ctx, tx, locked.ID); err != nil {
			logger.Error("[UploadDeliveryFile] stamp delivery", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.StatusHistoryEntity{
			OrderID:    locked.ID,
			FromStatus: locked.Status,
			ToStatus:   constant.OrderStatusSellerUploaded,
		}); err != nil {
			logger.Error("[UploadDeliveryFile] insert history", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.orderRepo.UpdateItemStatusTx(ctx, tx, orderItemID, constant.OrderStatusSellerUploaded); err != nil {
		logger.Error("[UploadDeliveryFile] update item status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UploadDeliveryFile] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if locked.Status != constant.OrderStatusSellerUploaded {
		s.publishOrderUpdated(locked, locked.Status, constant.OrderStatusSellerUploaded)
		s.notify(locked.UserID, "order_delivered", locked.OrderNumber)
	}

	return file, nil
}

// UpdateStatus is the generic admin override. Unlike the named transitions
// it accepts any enumerated status, but the history row is still mandatory.
func (s *orderAppImpl) UpdateStatus(ctx context.Context, principal model.Principal, orderID uint64, status constant.OrderStatus, notes *string) error {
	if !principal.Role.Can(constant.PermOrdersProcess) {
		return errors.SetCustomError(constant.ErrForbidden)
	}
	if !status.Valid() {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	return s.transition(ctx, orderID, func(tx *sqlx.Tx, order *model.OrderEntity) (constant.OrderStatus, error) {
		return status, nil
	}, &principal.UserID, notes, func(order *model.OrderEntity) {
		s.notify(order.UserID, "order_status_changed", order.OrderNumber)
	})
}

func (s *orderAppImpl) PostMessage(ctx context.Context, principal model.Principal, orderID uint64, body string, attachment *model.MessageAttachment) (*model.OrderMessageEntity, error) {
	order, err := s.requireParticipant(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}

	var attachmentPath *string
	if attachment != nil {
		dir := fmt.Sprintf("orders/%d/messages", order.ID)
		path, err := s.blobStore.Save(dir, uuid.NewString()+"_"+attachment.Filename, attachment.Content, s.config.Storage.MaxUploadBytes)
		if err != nil {
			if _, ok := err.(storage.ErrTooLarge); ok {
				return nil, errors.SetCustomError(constant.ErrFileTooLarge)
			}
			logger.Error("[PostMessage] store attachment", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrExternalDependency)
		}
		attachmentPath = &path
	}

	msg := &model.OrderMessageEntity{
		OrderID:        order.ID,
		SenderID:       principal.UserID,
		SenderRole:     principal.Role,
		Body:           body,
		AttachmentPath: attachmentPath,
	}
	id, err := s.conversationRepo.InsertMessage(ctx, msg)
	if err != nil {
		logger.Error("[PostMessage] insert message", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	msg.ID = id
	msg.CreatedAt = time.Now()
	return msg, nil
}

func (s *orderAppImpl) ListMessages(ctx context.Context, principal model.Principal, orderID uint64) ([]model.OrderMessageEntity, error) {
	order, err := s.requireParticipant(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.conversationRepo.ListMessages(ctx, order.ID)
	if err != nil {
		logger.Error("[ListMessages] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return msgs, nil
}

// PurgeExpiredConversations deletes messages and attachment directories for
// orders completed past the retention window. Safe to re-run; a second pass
// finds nothing.
func (s *orderAppImpl) PurgeExpiredConversations(ctx context.Context) (int, error) {
	ids, err := s.conversationRepo.ListPurgeableOrderIDs(ctx, constant.ConversationRetentionDays)
	if err != nil {
		logger.Error("[PurgeExpiredConversations] list", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}

	purged := 0
	for _, orderID := range ids {
		if _, err := s.conversationRepo.DeleteMessagesByOrder(ctx, orderID); err != nil {
			logger.Error("[PurgeExpiredConversations] delete messages", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
			continue
		}
		if err := s.blobStore.DeleteDir(fmt.Sprintf("orders/%d/messages", orderID)); err != nil {
			logger.Error("[PurgeExpiredConversations] delete attachments", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		}
		purged++
	}

	logger.Info("[PurgeExpiredConversations] done", zap.Int("orders", purged))
	return purged, nil
}

// transition runs a status change against the locked order row, appends the
// mandatory history record, commits, then fires the event and the caller's
// notification. afterCommit runs only on a committed transition.
func (s *orderAppImpl) transition(ctx context.Context, orderID uint64, decide func(tx *sqlx.Tx, order *model.OrderEntity) (constant.OrderStatus, error), adminID *uint64, notes *string, afterCommit func(order *model.OrderEntity)) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[transition] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderTx(ctx, tx, orderID, true)
	if err != nil {
		logger.Error("[transition] lock order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	to, err := decide(tx, order)
	if err != nil {
		if ce, ok := err.(errors.CustomError); ok {
			return ce
		}
		logger.Error("[transition] decide", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	ok, err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, order.Status, to)
	if err != nil {
		logger.Error("[transition] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}

	if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.StatusHistoryEntity{
		OrderID:    orderID,
		FromStatus: order.Status,
		ToStatus:   to,
		AdminID:    adminID,
		Notes:      notes,
	}); err != nil {
		logger.Error("[transition] insert history", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[transition] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishOrderUpdated(order, order.Status, to)
	if afterCommit != nil {
		afterCommit(order)
	}
	return nil
}

func (s *orderAppImpl) requireParticipant(ctx context.Context, principal model.Principal, orderID uint64) (*model.OrderEntity, error) {
	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		logger.Error("[requireParticipant] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if order.UserID == principal.UserID || principal.Role == constant.RoleAdmin {
		return order, nil
	}
	if principal.Role == constant.RoleSeller {
		items, err := s.orderRepo.ListOrderItems(ctx, orderID)
		if err != nil {
			logger.Error("[requireParticipant] list items", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		for _, it := range items {
			if it.SellerID == principal.UserID {
				return order, nil
			}
		}
	}
	return nil, errors.SetCustomError(constant.ErrForbidden)
}

func (s *orderAppImpl) publishOrderUpdated(order *model.OrderEntity, from, to constant.OrderStatus) {
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

// notifySellers publishes one notification per distinct seller on the order.
func (s *orderAppImpl) notifySellers(ctx context.Context, order *model.OrderEntity, template string) {
	items, err := s.orderRepo.ListOrderItems(ctx, order.ID)
	if err != nil {
		logger.Error("[notifySellers] list items", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
		return
	}
	seen := make(map[uint64]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.SellerID]; ok {
			continue
		}
		seen[it.SellerID] = struct{}{}
		s.notify(it.SellerID, template, order.OrderNumber)
	}
}

func (s *orderAppImpl) notify(userID uint64, template, orderNumber string) {
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
