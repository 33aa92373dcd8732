package giftcard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	giftcardrepo "github.com/nedasoft/marketplace-api/repository/giftcard"
	txrepo "github.com/nedasoft/marketplace-api/repository/tx"
	walletrepo "github.com/nedasoft/marketplace-api/repository/wallet"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type GiftCardApp interface {
	Create(ctx context.Context, principal model.Principal, req *model.CreateGiftCardRequest) (*model.GiftCardEntity, error)
	// MintForRefundTx issues a refund gift card inside the caller's
	// transaction so it commits or rolls back with the refund decision.
	MintForRefundTx(ctx context.Context, tx *sqlx.Tx, userID uint64, amount int64, orderNumber string) (*model.GiftCardEntity, error)
	Redeem(ctx context.Context, userID uint64, code string) (*model.RedeemGiftCardResponse, error)
	ListMine(ctx context.Context, userID uint64) ([]model.GiftCardEntity, error)
}

type giftCardAppImpl struct {
	txRepo       txrepo.TxRepository
	giftCardRepo giftcardrepo.GiftCardRepository
	walletRepo   walletrepo.WalletRepository
}

func NewGiftCardApp(txRepo txrepo.TxRepository, giftCardRepo giftcardrepo.GiftCardRepository, walletRepo walletrepo.WalletRepository) GiftCardApp {
	return &giftCardAppImpl{txRepo: txRepo, giftCardRepo: giftCardRepo, walletRepo: walletRepo}
}

func (s *giftCardAppImpl) Create(ctx context.Context, principal model.Principal, req *model.CreateGiftCardRequest) (*model.GiftCardEntity, error) {
	if !principal.Role.Can(constant.PermGiftCardManage) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	expiry := time.Now().AddDate(1, 0, 0)
	if req.ExpiryDate != nil {
		expiry = *req.ExpiryDate
	}

	card := &model.GiftCardEntity{
		Code:       newCode(),
		Amount:     req.Amount,
		ExpiryDate: expiry,
		Status:     model.GiftCardStatusActive,
		UserID:     req.UserID,
	}
	if _, err := s.giftCardRepo.Insert(ctx, card); err != nil {
		logger.Error("[Create] insert gift card", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return card, nil
}

func (s *giftCardAppImpl) MintForRefundTx(ctx context.Context, tx *sqlx.Tx, userID uint64, amount int64, orderNumber string) (*model.GiftCardEntity, error) {
	desc := fmt.Sprintf("refund for order %s", orderNumber)
	card := &model.GiftCardEntity{
		Code:        newCode(),
		Amount:      amount,
		ExpiryDate:  time.Now().AddDate(0, constant.GiftCardRefundExpiryMonths, 0),
		Status:      model.GiftCardStatusActive,
		UserID:      &userID,
		Description: &desc,
	}
	if _, err := s.giftCardRepo.InsertTx(ctx, tx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *giftCardAppImpl) Redeem(ctx context.Context, userID uint64, code string) (*model.RedeemGiftCardResponse, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Redeem] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	card, err := s.giftCardRepo.GetByCodeForUpdateTx(ctx, tx, code)
	if err != nil {
		logger.Error("[Redeem] get card", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if card == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if card.IsUsed || card.Status != model.GiftCardStatusActive || card.ExpiryDate.Before(time.Now()) {
		return nil, errors.SetCustomError(constant.ErrGiftCardUnavailable)
	}
	if card.UserID != nil && *card.UserID != userID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	// the conditional update is the authoritative check: exactly one
	// concurrent redeemer can flip is_used
	ok, err := s.giftCardRepo.RedeemTx(ctx, tx, card.ID, userID)
	if err != nil {
		logger.Error("[Redeem] redeem", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrGiftCardUnavailable)
	}

	wallet, err := s.walletRepo.GetByUserIDForUpdateTx(ctx, tx, userID)
	if err != nil {
		logger.Error("[Redeem] lock wallet", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if wallet == nil {
		// wallets are created on first touch; a fresh row is already ours
		// for the rest of the transaction
		wallet, err = s.walletRepo.CreateTx(ctx, tx, userID)
		if err != nil {
			logger.Error("[Redeem] create wallet", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := s.walletRepo.CreditGiftTx(ctx, tx, wallet.ID, card.Amount); err != nil {
		logger.Error("[Redeem] credit gift balance", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.walletRepo.InsertTransactionTx(ctx, tx, &model.WalletTransactionEntity{
		WalletID:    wallet.ID,
		Amount:      card.Amount,
		Kind:        constant.WalletTxGiftCredit,
		Description: fmt.Sprintf("gift card %s redeemed", card.Code),
	}); err != nil {
		logger.Error("[Redeem] insert transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Redeem] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Audit("giftcard.redeem",
		zap.Uint64("user_id", userID),
		zap.Uint64("card_id", card.ID),
		zap.Int64("amount", card.Amount),
	)

	return &model.RedeemGiftCardResponse{
		Amount:      card.Amount,
		GiftBalance: wallet.GiftBalance + card.Amount,
	}, nil
}

func (s *giftCardAppImpl) ListMine(ctx context.Context, userID uint64) ([]model.GiftCardEntity, error) {
	cards, err := s.giftCardRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListMine] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return cards, nil
}

func newCode() string {
	return "GC-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}
