package wallet

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/model"
)

type SQL struct {
	conn *sqlx.DB
}

type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.WalletEntity, error)
	Create(ctx context.Context, userID uint64) (*model.WalletEntity, error)
	// CreateTx inserts the wallet row inside the caller's transaction, for
	// first-touch flows that must credit a wallet that does not exist yet.
	CreateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.WalletEntity, error)
	// GetByUserIDForUpdateTx locks the wallet row; the sufficiency check and
	// the debit must both happen while this lock is held.
	GetByUserIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.WalletEntity, error)
	DebitTx(ctx context.Context, tx *sqlx.Tx, walletID uint64, amount int64) (bool, error)
	CreditTx(ctx context.Context, tx *sqlx.Tx, walletID uint64, amount int64) error
	CreditGiftTx(ctx context.Context, tx *sqlx.Tx, walletID uint64, amount int64) error
	InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, t *model.WalletTransactionEntity) error
	ListTransactions(ctx context.Context, walletID uint64) ([]model.WalletTransactionEntity, error)
}

func NewWalletRepository(conn *sqlx.DB) WalletRepository {
	return &SQL{conn: conn}
}

const walletColumns = "id, user_id, balance, gift_balance, created_at, updated_at"

func (r *SQL) GetByUserID(ctx context.Context, userID uint64) (*model.WalletEntity, error) {
	var entity model.WalletEntity
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+walletColumns+" FROM wallet WHERE user_id = ?", userID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SQL) Create(ctx context.Context, userID uint64) (*model.WalletEntity, error) {
	res, err := r.conn.ExecContext(ctx, "INSERT INTO wallet (user_id, balance, gift_balance, created_at) VALUES (?, 0, 0, NOW())", userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.WalletEntity{ID: uint64(id), UserID: userID}, nil
}

func (r *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.WalletEntity, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO wallet (user_id, balance, gift_balance, created_at) VALUES (?, 0, 0, NOW())", userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.WalletEntity{ID: uint64(id), UserID: userID}, nil
}

func (r *SQL) GetByUserIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.WalletEntity, error) {
	var entity model.WalletEntity
	if err := tx.QueryRowxContext(ctx, "SELECT "+walletColumns+" FROM wallet WHERE user_id = ? FOR UPDATE", userID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// DebitTx decrements balance with the sufficiency guard repeated in the WHERE
// clause. With the row lock held this is belt and braces against over-spend.
func (r *SQL) DebitTx(ctx context.Context, tx *sqlx.Tx, walletID uint64, amount int64) (bool, error) {
	res, err := tx.ExecContext(ctx, "UPDATE wallet SET balance = balance - ?, updated_at = NOW() WHERE id = ? AND balance >= ?", amount, walletID, amount)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQL) CreditTx(ctx context.Context, tx *sqlx.Tx, walletID uint64, amount int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE wallet SET balance = balance + ?, updated_at = NOW() WHERE id = ?", amount, walletID)
	return err
}

func (r *SQL) CreditGiftTx(ctx context.Context, tx *sqlx.Tx, walletID uint64, amount int64) error {
	_, err := tx.ExecContext(ctx, "UPDATE wallet SET gift_balance = gift_balance + ?, updated_at = NOW() WHERE id = ?", amount, walletID)
	return err
}

func (r *SQL) InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, t *model.WalletTransactionEntity) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO wallet_transaction (wallet_id, order_id, amount, kind, description, created_at) VALUES (?, ?, ?, ?, ?, NOW())",
		t.WalletID, t.OrderID, t.Amount, t.Kind, t.Description)
	return err
}

func (r *SQL) ListTransactions(ctx context.Context, walletID uint64) ([]model.WalletTransactionEntity, error) {
	var out []model.WalletTransactionEntity
	q := "SELECT id, wallet_id, order_id, amount, kind, description, created_at FROM wallet_transaction WHERE wallet_id = ? ORDER BY id DESC"
	if err := r.conn.SelectContext(ctx, &out, q, walletID); err != nil {
		return nil, err
	}
	return out, nil
}
