package payment

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type PaymentRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertPaymentTxItem) (uint64, error)
	GetByID(ctx context.Context, paymentID uint64) (*model.PaymentEntity, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, paymentID uint64, forUpdate bool) (*model.PaymentEntity, error)
	SetGatewayRef(ctx context.Context, paymentID uint64, ref string) error
	// TransitionStatusTx flips pending -> to, returning false when the row
	// was not pending anymore. This is what makes callback handling idempotent.
	TransitionStatusTx(ctx context.Context, tx *sqlx.Tx, paymentID uint64, to constant.PaymentStatus, payload *string) (bool, error)
	SetRefundReferenceTx(ctx context.Context, tx *sqlx.Tx, paymentID uint64, reference string) error
	ListByUser(ctx context.Context, userID uint64, kind constant.PaymentKind) ([]model.PaymentEntity, error)
	ListByKind(ctx context.Context, kind constant.PaymentKind) ([]model.PaymentEntity, error)
}

func NewPaymentRepository(conn *sqlx.DB) PaymentRepository {
	return &SQL{conn: conn}
}

const paymentColumns = "id, order_id, user_id, amount, kind, method, status, tracking_code, gateway_ref, gateway_payload, refund_method, refund_reference, description, created_at, updated_at"

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertPaymentTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payment (order_id, user_id, amount, kind, method, status, tracking_code, refund_method, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())",
		req.OrderID, req.UserID, req.Amount, req.Kind, req.Method, req.Status, req.TrackingCode, req.RefundMethod, req.Description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByID(ctx context.Context, paymentID uint64) (*model.PaymentEntity, error) {
	var entity model.PaymentEntity
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+paymentColumns+" FROM payment WHERE id = ?", paymentID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, paymentID uint64, forUpdate bool) (*model.PaymentEntity, error) {
	q := "SELECT " + paymentColumns + " FROM payment WHERE id = ?"
	if forUpdate {
		q += " FOR UPDATE"
	}
	var entity model.PaymentEntity
	if err := tx.QueryRowxContext(ctx, q, paymentID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) SetGatewayRef(ctx context.Context, paymentID uint64, ref string) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE payment SET gateway_ref = ?, updated_at = NOW() WHERE id = ?", ref, paymentID)
	return err
}

func (r *SQL) TransitionStatusTx(ctx context.Context, tx *sqlx.Tx, paymentID uint64, to constant.PaymentStatus, payload *string) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE payment SET status = ?, gateway_payload = COALESCE(?, gateway_payload), updated_at = NOW() WHERE id = ? AND status = ?",
		to, payload, paymentID, constant.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQL) SetRefundReferenceTx(ctx context.Context, tx *sqlx.Tx, paymentID uint64, reference string) error {
	_, err := tx.ExecContext(ctx, "UPDATE payment SET refund_reference = ?, updated_at = NOW() WHERE id = ?", reference, paymentID)
	return err
}

func (r *SQL) ListByUser(ctx context.Context, userID uint64, kind constant.PaymentKind) ([]model.PaymentEntity, error) {
	var out []model.PaymentEntity
	if err := r.conn.SelectContext(ctx, &out, "SELECT "+paymentColumns+" FROM payment WHERE user_id = ? AND kind = ? ORDER BY id DESC", userID, kind); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQL) ListByKind(ctx context.Context, kind constant.PaymentKind) ([]model.PaymentEntity, error) {
	var out []model.PaymentEntity
	if err := r.conn.SelectContext(ctx, &out, "SELECT "+paymentColumns+" FROM payment WHERE kind = ? ORDER BY id DESC", kind); err != nil {
		return nil, err
	}
	return out, nil
}
