package order

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

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.CartItemEntity) error
	GetOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, forUpdate bool) (*model.OrderEntity, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.OrderEntity, error)
	GetOrderItem(ctx context.Context, orderItemID uint64) (*model.OrderItemEntity, error)
	ListOrderItems(ctx context.Context, orderID uint64) ([]model.OrderItemEntity, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]model.OrderEntity, error)
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, from, to constant.OrderStatus) (bool, error)
	UpdateItemStatusesTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	UpdateItemStatusTx(ctx context.Context, tx *sqlx.Tx, orderItemID uint64, status constant.OrderStatus) error
	SetAdminApprovalTx(ctx context.Context, tx *sqlx.Tx, orderID, adminID uint64) error
	SetSellerDeliveredTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error
	InsertStatusHistoryTx(ctx context.Context, tx *sqlx.Tx, h *model.StatusHistoryEntity) error
	InsertDeliveryFileTx(ctx context.Context, tx *sqlx.Tx, f *model.DeliveryFileEntity) error
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	orderColumns = "id, order_number, user_id, total_price, discount_code, discount_amount, final_price, status, payment_method, notes, admin_id, admin_approved_at, seller_delivered_at, created_at, updated_at"

	insertOrderQuery = "INSERT INTO `order` (order_number, user_id, total_price, discount_code, discount_amount, final_price, status, payment_method, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())"
	insertItemQuery  = "INSERT INTO order_item (order_id, product_id, seller_id, price, quantity, total_price, options, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())"

	itemColumns = "id, order_id, product_id, seller_id, price, quantity, total_price, options, status, created_at"
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrderQuery,
		req.OrderNumber, req.UserID, req.TotalPrice, req.DiscountCode, req.DiscountAmount,
		req.FinalPrice, req.Status, req.PaymentMethod, req.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// InsertOrderItemsTx freezes the cart lines into order items. Price, quantity
// and options are copied as-is; later cart or product changes never touch them.
func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.CartItemEntity) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertItemQuery,
			orderID, it.ProductID, it.SellerID, it.Price, it.Quantity, it.TotalPrice, it.Options, constant.OrderStatusPending); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, forUpdate bool) (*model.OrderEntity, error) {
	q := "SELECT " + orderColumns + " FROM `order` WHERE id = ?"
	if forUpdate {
		q += " FOR UPDATE"
	}
	var entity model.OrderEntity
	if err := tx.QueryRowxContext(ctx, q, orderID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) GetOrder(ctx context.Context, orderID uint64) (*model.OrderEntity, error) {
	var entity model.OrderEntity
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE id = ?", orderID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) GetOrderItem(ctx context.Context, orderItemID uint64) (*model.OrderItemEntity, error) {
	var item model.OrderItemEntity
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+itemColumns+" FROM order_item WHERE id = ?", orderItemID).StructScan(&item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) ListOrderItems(ctx context.Context, orderID uint64) ([]model.OrderItemEntity, error) {
	var items []model.OrderItemEntity
	if err := r.conn.SelectContext(ctx, &items, "SELECT "+itemColumns+" FROM order_item WHERE order_id = ? ORDER BY id", orderID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) ListOrdersByUser(ctx context.Context, userID uint64) ([]model.OrderEntity, error) {
	var orders []model.OrderEntity
	if err := r.conn.SelectContext(ctx, &orders, "SELECT "+orderColumns+" FROM `order` WHERE user_id = ? ORDER BY id DESC", userID); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatusTx transitions from -> to with the precondition in the
// WHERE clause; zero affected rows means the order moved under us.
func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, from, to constant.OrderStatus) (bool, error) {
	res, err := tx.ExecContext(ctx, "UPDATE `order` SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?", to, orderID, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQL) UpdateItemStatusesTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE order_item SET status = ? WHERE order_id = ?", status, orderID)
	return err
}

func (r *SQL) UpdateItemStatusTx(ctx context.Context, tx *sqlx.Tx, orderItemID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE order_item SET status = ? WHERE id = ?", status, orderItemID)
	return err
}

func (r *SQL) SetAdminApprovalTx(ctx context.Context, tx *sqlx.Tx, orderID, adminID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET admin_id = ?, admin_approved_at = NOW() WHERE id = ?", adminID, orderID)
	return err
}

func (r *SQL) SetSellerDeliveredTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "UPDATE `order` SET seller_delivered_at = NOW() WHERE id = ?", orderID)
	return err
}

func (r *SQL) InsertStatusHistoryTx(ctx context.Context, tx *sqlx.Tx, h *model.StatusHistoryEntity) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO order_status_history (order_id, from_status, to_status, admin_id, notes, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
		h.OrderID, h.FromStatus, h.ToStatus, h.AdminID, h.Notes)
	return err
}

func (r *SQL) InsertDeliveryFileTx(ctx context.Context, tx *sqlx.Tx, f *model.DeliveryFileEntity) error {
	res, err := tx.ExecContext(ctx, "INSERT INTO order_delivery_file (order_item_id, path, original_name, description, expires_at, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
		f.OrderItemID, f.Path, f.OriginalName, f.Description, f.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}
