package wallet

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	txrepo "github.com/nedasoft/marketplace-api/repository/tx"
	walletrepo "github.com/nedasoft/marketplace-api/repository/wallet"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type WalletApp interface {
	Get(ctx context.Context, userID uint64) (*model.WalletEntity, error)
	ListTransactions(ctx context.Context, userID uint64) ([]model.WalletTransactionEntity, error)
	// DebitForOrderTx performs the sufficiency check and the debit under the
	// wallet row lock, inside the caller's transaction. Checkout calls this
	// so the order insert and the debit commit or roll back together.
	DebitForOrderTx(ctx context.Context, tx *sqlx.Tx, userID, orderID uint64, amount int64, description string) error
	// CreditForOrderTx credits the spendable balance inside the caller's
	// transaction (refund approval path).
	CreditForOrderTx(ctx context.Context, tx *sqlx.Tx, userID, orderID uint64, amount int64, description string) error
}

type walletAppImpl struct {
	txRepo     txrepo.TxRepository
	walletRepo walletrepo.WalletRepository
}

func NewWalletApp(txRepo txrepo.TxRepository, walletRepo walletrepo.WalletRepository) WalletApp {
	return &walletAppImpl{txRepo: txRepo, walletRepo: walletRepo}
}

func (s *walletAppImpl) Get(ctx context.Context, userID uint64) (*model.WalletEntity, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("[Get] get wallet", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if wallet != nil {
		return wallet, nil
	}
	wallet, err = s.walletRepo.Create(ctx, userID)
	if err != nil {
		logger.Error("[Get] create wallet", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return wallet, nil
}

func (s *walletAppImpl) ListTransactions(ctx context.Context, userID uint64) ([]model.WalletTransactionEntity, error) {
	wallet, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.walletRepo.ListTransactions(ctx, wallet.ID)
	if err != nil {
		logger.Error("[ListTransactions] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return txs, nil
}

func (s *walletAppImpl) DebitForOrderTx(ctx context.Context, tx *sqlx.Tx, userID, orderID uint64, amount int64, description string) error {
	wallet, err := s.walletRepo.GetByUserIDForUpdateTx(ctx, tx, userID)
	if err != nil {
		logger.Error("[DebitForOrderTx] lock wallet", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if wallet == nil {
		return errors.SetCustomError(constant.ErrWalletNotFound)
	}
	if wallet.Balance < amount {
		return errors.SetCustomError(constant.ErrInsufficientBalance)
	}

	ok, err := s.walletRepo.DebitTx(ctx, tx, wallet.ID, amount)
	if err != nil {
		logger.Error("[DebitForOrderTx] debit", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		// balance moved despite the lock; treat as insufficient
		return errors.SetCustomError(constant.ErrInsufficientBalance)
	}

	if err := s.walletRepo.InsertTransactionTx(ctx, tx, &model.WalletTransactionEntity{
		WalletID:    wallet.ID,
		OrderID:     &orderID,
		Amount:      -amount,
		Kind:        constant.WalletTxDebit,
		Description: description,
	}); err != nil {
		logger.Error("[DebitForOrderTx] insert transaction", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	logger.Audit("wallet.debit",
		zap.Uint64("user_id", userID),
		zap.Uint64("order_id", orderID),
		zap.Int64("amount", amount),
	)
	return nil
}

func (s *walletAppImpl) CreditForOrderTx(ctx context.Context, tx *sqlx.Tx, userID, orderID uint64, amount int64, description string) error {
	wallet, err := s.walletRepo.GetByUserIDForUpdateTx(ctx, tx, userID)
	if err != nil {
		logger.Error("[CreditForOrderTx] lock wallet", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if wallet == nil {
		// refunds may land before the user ever opened a wallet
		wallet, err = s.walletRepo.CreateTx(ctx, tx, userID)
		if err != nil {
			logger.Error("[CreditForOrderTx] create wallet", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.walletRepo.CreditTx(ctx, tx, wallet.ID, amount); err != nil {
		logger.Error("[CreditForOrderTx] credit", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.walletRepo.InsertTransactionTx(ctx, tx, &model.WalletTransactionEntity{
		WalletID:    wallet.ID,
		OrderID:     &orderID,
		Amount:      amount,
		Kind:        constant.WalletTxCredit,
		Description: description,
	}); err != nil {
		logger.Error("[CreditForOrderTx] insert transaction", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	logger.Audit("wallet.credit",
		zap.Uint64("user_id", userID),
		zap.Uint64("order_id", orderID),
		zap.Int64("amount", amount),
	)
	return nil
}
