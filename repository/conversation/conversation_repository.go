package conversation

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ConversationRepository interface {
	InsertMessage(ctx context.Context, msg *model.OrderMessageEntity) (uint64, error)
	ListMessages(ctx context.Context, orderID uint64) ([]model.OrderMessageEntity, error)
	// ListPurgeableOrderIDs returns ids of orders completed before cutoff
	// that still have messages.
	ListPurgeableOrderIDs(ctx context.Context, cutoffDays int) ([]uint64, error)
	DeleteMessagesByOrder(ctx context.Context, orderID uint64) (int64, error)
}

func NewConversationRepository(conn *sqlx.DB) ConversationRepository {
	return &SQL{conn: conn}
}

func (r *SQL) InsertMessage(ctx context.Context, msg *model.OrderMessageEntity) (uint64, error) {
	res, err := r.conn.ExecContext(ctx,
		"INSERT INTO order_message (order_id, sender_id, sender_role, body, attachment_path, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
		msg.OrderID, msg.SenderID, msg.SenderRole, msg.Body, msg.AttachmentPath)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) ListMessages(ctx context.Context, orderID uint64) ([]model.OrderMessageEntity, error) {
	var out []model.OrderMessageEntity
	q := "SELECT id, order_id, sender_id, sender_role, body, attachment_path, created_at FROM order_message WHERE order_id = ? ORDER BY id"
	if err := r.conn.SelectContext(ctx, &out, q, orderID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQL) ListPurgeableOrderIDs(ctx context.Context, cutoffDays int) ([]uint64, error) {
	var ids []uint64
	q := "SELECT DISTINCT m.order_id FROM order_message m JOIN `order` o ON m.order_id = o.id WHERE o.status = 'completed' AND o.updated_at < DATE_SUB(NOW(), INTERVAL ? DAY)"
	if err := r.conn.SelectContext(ctx, &ids, q, cutoffDays); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SQL) DeleteMessagesByOrder(ctx context.Context, orderID uint64) (int64, error) {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM order_message WHERE order_id = ?", orderID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
