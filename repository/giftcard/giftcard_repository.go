package giftcard

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type GiftCardRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, card *model.GiftCardEntity) (uint64, error)
	Insert(ctx context.Context, card *model.GiftCardEntity) (uint64, error)
	GetByCodeForUpdateTx(ctx context.Context, tx *sqlx.Tx, code string) (*model.GiftCardEntity, error)
	// RedeemTx is the check-and-set flip of is_used; a concurrent redeemer
	// observes zero affected rows and loses.
	RedeemTx(ctx context.Context, tx *sqlx.Tx, cardID, userID uint64) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.GiftCardEntity, error)
}

func NewGiftCardRepository(conn *sqlx.DB) GiftCardRepository {
	return &SQL{conn: conn}
}

const (
	cardColumns     = "id, code, amount, expiry_date, status, is_used, user_id, description, created_at, used_at"
	insertCardQuery = "INSERT INTO gift_card (code, amount, expiry_date, status, is_used, user_id, description, created_at) VALUES (?, ?, ?, ?, 0, ?, ?, NOW())"
)

func (r *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, card *model.GiftCardEntity) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertCardQuery, card.Code, card.Amount, card.ExpiryDate, card.Status, card.UserID, card.Description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	card.ID = uint64(id)
	return card.ID, nil
}

func (r *SQL) Insert(ctx context.Context, card *model.GiftCardEntity) (uint64, error) {
	res, err := r.conn.ExecContext(ctx, insertCardQuery, card.Code, card.Amount, card.ExpiryDate, card.Status, card.UserID, card.Description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	card.ID = uint64(id)
	return card.ID, nil
}

func (r *SQL) GetByCodeForUpdateTx(ctx context.Context, tx *sqlx.Tx, code string) (*model.GiftCardEntity, error) {
	var entity model.GiftCardEntity
	if err := tx.QueryRowxContext(ctx, "SELECT "+cardColumns+" FROM gift_card WHERE code = ? FOR UPDATE", code).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) RedeemTx(ctx context.Context, tx *sqlx.Tx, cardID, userID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE gift_card SET is_used = 1, status = ?, user_id = ?, used_at = NOW() WHERE id = ? AND is_used = 0 AND status = ? AND expiry_date > NOW()",
		model.GiftCardStatusUsed, userID, cardID, model.GiftCardStatusActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.GiftCardEntity, error) {
	var out []model.GiftCardEntity
	if err := r.conn.SelectContext(ctx, &out, "SELECT "+cardColumns+" FROM gift_card WHERE user_id = ? ORDER BY id DESC", userID); err != nil {
		return nil, err
	}
	return out, nil
}
