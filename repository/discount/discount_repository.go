package discount

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*model.DiscountCodeEntity, error)
	CountUsage(ctx context.Context, codeID uint64) (int, error)
	CountUsageByUser(ctx context.Context, codeID, userID uint64) (int, error)
	ListAllowedProductIDs(ctx context.Context, codeID uint64) ([]uint64, error)
	RecordUsageTx(ctx context.Context, tx *sqlx.Tx, codeID, userID, orderID uint64) error
}

func NewDiscountRepository(conn *sqlx.DB) DiscountRepository {
	return &SQL{conn: conn}
}

const getCodeQuery = `SELECT id, code, type, value, is_active, expires_at, max_uses, max_uses_per_user, min_order_amount, created_at FROM discount_code WHERE code = ?`

func (r *SQL) GetByCode(ctx context.Context, code string) (*model.DiscountCodeEntity, error) {
	var entity model.DiscountCodeEntity
	if err := r.conn.QueryRowxContext(ctx, getCodeQuery, code).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) CountUsage(ctx context.Context, codeID uint64) (int, error) {
	var n int
	if err := r.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM discount_usage WHERE code_id = ?", codeID); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQL) CountUsageByUser(ctx context.Context, codeID, userID uint64) (int, error) {
	var n int
	if err := r.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM discount_usage WHERE code_id = ? AND user_id = ?", codeID, userID); err != nil {
		return 0, err
	}
	return n, nil
}

// ListAllowedProductIDs returns the code's product allow-list; empty means
// the code applies to every product.
func (r *SQL) ListAllowedProductIDs(ctx context.Context, codeID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.conn.SelectContext(ctx, &ids, "SELECT product_id FROM discount_code_product WHERE code_id = ?", codeID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SQL) RecordUsageTx(ctx context.Context, tx *sqlx.Tx, codeID, userID, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO discount_usage (code_id, user_id, order_id, created_at) VALUES (?, ?, ?, NOW())", codeID, userID, orderID)
	return err
}
