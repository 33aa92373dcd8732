package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	GetByID(ctx context.Context, productID uint64) (*model.ProductEntity, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const getProductQuery = `SELECT id, seller_id, name, price, is_active, created_at FROM product WHERE id = ?`

func (r *SQL) GetByID(ctx context.Context, productID uint64) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := r.conn.QueryRowxContext(ctx, getProductQuery, productID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}
