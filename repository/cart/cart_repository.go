package cart

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CartRepository interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.CartEntity, error)
	Create(ctx context.Context, userID uint64) (*model.CartEntity, error)
	ListItems(ctx context.Context, cartID uint64) ([]model.CartItemEntity, error)

	GetByUserIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.CartEntity, error)
	ListItemsTx(ctx context.Context, tx *sqlx.Tx, cartID uint64) ([]model.CartItemEntity, error)
	GetItemTx(ctx context.Context, tx *sqlx.Tx, cartID, itemID uint64) (*model.CartItemEntity, error)
	GetItemByProductTx(ctx context.Context, tx *sqlx.Tx, cartID, productID uint64) (*model.CartItemEntity, error)
	InsertItemTx(ctx context.Context, tx *sqlx.Tx, item *model.CartItemEntity) error
	UpdateItemTx(ctx context.Context, tx *sqlx.Tx, item *model.CartItemEntity) error
	DeleteItemTx(ctx context.Context, tx *sqlx.Tx, cartID, itemID uint64) (bool, error)
	DeleteAllItemsTx(ctx context.Context, tx *sqlx.Tx, cartID uint64) error
	UpdateTotalsTx(ctx context.Context, tx *sqlx.Tx, cart *model.CartEntity) error
}

func NewCartRepository(conn *sqlx.DB) CartRepository {
	return &SQL{conn: conn}
}

const (
	getCartByUserQuery = `SELECT id, user_id, total_items, total_price, discount_code, discount_amount, final_price, created_at, updated_at FROM cart WHERE user_id = ?`
	insertCartQuery    = `INSERT INTO cart (user_id, total_items, total_price, discount_amount, final_price, created_at) VALUES (?, 0, 0, 0, 0, NOW())`
	listItemsQuery     = `SELECT id, cart_id, product_id, seller_id, price, quantity, total_price, options, created_at FROM cart_item WHERE cart_id = ? ORDER BY id`
	getItemQuery       = `SELECT id, cart_id, product_id, seller_id, price, quantity, total_price, options, created_at FROM cart_item WHERE cart_id = ? AND id = ?`
	getItemByProdQuery = `SELECT id, cart_id, product_id, seller_id, price, quantity, total_price, options, created_at FROM cart_item WHERE cart_id = ? AND product_id = ?`
	insertItemQuery    = `INSERT INTO cart_item (cart_id, product_id, seller_id, price, quantity, total_price, options, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`
	updateItemQuery    = `UPDATE cart_item SET price = ?, quantity = ?, total_price = ?, options = ? WHERE id = ?`
	updateTotalsQuery  = `UPDATE cart SET total_items = ?, total_price = ?, discount_code = ?, discount_amount = ?, final_price = ?, updated_at = NOW() WHERE id = ?`
)

func (r *SQL) GetByUserID(ctx context.Context, userID uint64) (*model.CartEntity, error) {
	var entity model.CartEntity
	if err := r.conn.QueryRowxContext(ctx, getCartByUserQuery, userID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) Create(ctx context.Context, userID uint64) (*model.CartEntity, error) {
	res, err := r.conn.ExecContext(ctx, insertCartQuery, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.CartEntity{ID: uint64(id), UserID: userID}, nil
}

func (r *SQL) ListItems(ctx context.Context, cartID uint64) ([]model.CartItemEntity, error) {
	var items []model.CartItemEntity
	if err := r.conn.SelectContext(ctx, &items, listItemsQuery, cartID); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserIDForUpdateTx locks the cart row so concurrent mutations of the
// same cart serialize on the recompute step.
func (r *SQL) GetByUserIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.CartEntity, error) {
	var entity model.CartEntity
	if err := tx.QueryRowxContext(ctx, getCartByUserQuery+" FOR UPDATE", userID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) ListItemsTx(ctx context.Context, tx *sqlx.Tx, cartID uint64) ([]model.CartItemEntity, error) {
	var items []model.CartItemEntity
	if err := tx.SelectContext(ctx, &items, listItemsQuery, cartID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) GetItemTx(ctx context.Context, tx *sqlx.Tx, cartID, itemID uint64) (*model.CartItemEntity, error) {
	var item model.CartItemEntity
	if err := tx.QueryRowxContext(ctx, getItemQuery, cartID, itemID).StructScan(&item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) GetItemByProductTx(ctx context.Context, tx *sqlx.Tx, cartID, productID uint64) (*model.CartItemEntity, error) {
	var item model.CartItemEntity
	if err := tx.QueryRowxContext(ctx, getItemByProdQuery, cartID, productID).StructScan(&item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) InsertItemTx(ctx context.Context, tx *sqlx.Tx, item *model.CartItemEntity) error {
	res, err := tx.ExecContext(ctx, insertItemQuery, item.CartID, item.ProductID, item.SellerID, item.Price, item.Quantity, item.TotalPrice, item.Options)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

func (r *SQL) UpdateItemTx(ctx context.Context, tx *sqlx.Tx, item *model.CartItemEntity) error {
	_, err := tx.ExecContext(ctx, updateItemQuery, item.Price, item.Quantity, item.TotalPrice, item.Options, item.ID)
	return err
}

func (r *SQL) DeleteItemTx(ctx context.Context, tx *sqlx.Tx, cartID, itemID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM cart_item WHERE cart_id = ? AND id = ?", cartID, itemID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQL) DeleteAllItemsTx(ctx context.Context, tx *sqlx.Tx, cartID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart_item WHERE cart_id = ?", cartID)
	return err
}

func (r *SQL) UpdateTotalsTx(ctx context.Context, tx *sqlx.Tx, cart *model.CartEntity) error {
	_, err := tx.ExecContext(ctx, updateTotalsQuery, cart.TotalItems, cart.TotalPrice, cart.DiscountCode, cart.DiscountAmount, cart.FinalPrice, cart.ID)
	return err
}
