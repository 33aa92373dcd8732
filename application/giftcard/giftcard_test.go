package giftcard_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	appgiftcard "github.com/nedasoft/marketplace-api/application/giftcard"
	"github.com/nedasoft/marketplace-api/constant"
	giftcardmocks "github.com/nedasoft/marketplace-api/mocks/repository/giftcard"
	txmocks "github.com/nedasoft/marketplace-api/mocks/repository/tx"
	walletmocks "github.com/nedasoft/marketplace-api/mocks/repository/wallet"
	"github.com/nedasoft/marketplace-api/model"
	cerr "github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

type giftCardFields struct {
	txRepo       *txmocks.TxRepository
	giftCardRepo *giftcardmocks.GiftCardRepository
	walletRepo   *walletmocks.WalletRepository
}

func newGiftCardFields(t *testing.T) giftCardFields {
	return giftCardFields{
		txRepo:       txmocks.NewTxRepository(t),
		giftCardRepo: giftcardmocks.NewGiftCardRepository(t),
		walletRepo:   walletmocks.NewWalletRepository(t),
	}
}

func (f giftCardFields) app() appgiftcard.GiftCardApp {
	return appgiftcard.NewGiftCardApp(f.txRepo, f.giftCardRepo, f.walletRepo)
}

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestGiftCardApp_Create(t *testing.T) {
	t.Run("success: admin issues a card with a generated code", func(t *testing.T) {
		f := newGiftCardFields(t)
		f.giftCardRepo.On("Insert", mock.Anything, mock.MatchedBy(func(c *model.GiftCardEntity) bool {
			return strings.HasPrefix(c.Code, "GC-") && c.Amount == 200_000 && c.Status == model.GiftCardStatusActive
		})).Return(uint64(3), nil).Once()

		got, err := f.app().Create(context.Background(), model.Principal{UserID: 99, Role: constant.RoleAdmin}, &model.CreateGiftCardRequest{Amount: 200_000})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if got.Code == "" || got.ExpiryDate.Before(time.Now()) {
			t.Fatalf("Create() = %+v", got)
		}
	})

	t.Run("error: regular user may not issue cards", func(t *testing.T) {
		f := newGiftCardFields(t)
		_, err := f.app().Create(context.Background(), model.Principal{UserID: 1, Role: constant.RoleUser}, &model.CreateGiftCardRequest{Amount: 200_000})
		if err == nil {
			t.Fatal("Create() expected error")
		}
		assertErrCode(t, err, constant.ErrForbidden)
	})
}

func TestGiftCardApp_Redeem(t *testing.T) {
	activeCard := func() *model.GiftCardEntity {
		return &model.GiftCardEntity{
			ID: 3, Code: "GC-ABCD", Amount: 200_000,
			ExpiryDate: time.Now().AddDate(0, 1, 0),
			Status:     model.GiftCardStatusActive,
		}
	}

	t.Run("success: redeem credits the gift balance", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-ABCD").Return(activeCard(), nil).Once()
		f.giftCardRepo.On("RedeemTx", mock.Anything, tx, uint64(3), uint64(1)).Return(true, nil).Once()
		f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{
			ID: 8, UserID: 1, Balance: 50_000, GiftBalance: 10_000,
		}, nil).Once()
		f.walletRepo.On("CreditGiftTx", mock.Anything, tx, uint64(8), int64(200_000)).Return(nil).Once()
		f.walletRepo.On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(wt *model.WalletTransactionEntity) bool {
			return wt.WalletID == 8 && wt.Amount == 200_000 && wt.Kind == constant.WalletTxGiftCredit
		})).Return(nil).Once()

		got, err := f.app().Redeem(context.Background(), 1, "GC-ABCD")
		if err != nil {
			t.Fatalf("Redeem() error = %v", err)
		}
		if got.Amount != 200_000 || got.GiftBalance != 210_000 {
			t.Fatalf("Redeem() = %+v", got)
		}
	})

	t.Run("success: first redemption creates the wallet", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-ABCD").Return(activeCard(), nil).Once()
		f.giftCardRepo.On("RedeemTx", mock.Anything, tx, uint64(3), uint64(1)).Return(true, nil).Once()
		f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, nil).Once()
		f.walletRepo.On("CreateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{ID: 9, UserID: 1}, nil).Once()
		f.walletRepo.On("CreditGiftTx", mock.Anything, tx, uint64(9), int64(200_000)).Return(nil).Once()
		f.walletRepo.On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(wt *model.WalletTransactionEntity) bool {
			return wt.WalletID == 9 && wt.Amount == 200_000 && wt.Kind == constant.WalletTxGiftCredit
		})).Return(nil).Once()

		got, err := f.app().Redeem(context.Background(), 1, "GC-ABCD")
		if err != nil {
			t.Fatalf("Redeem() error = %v", err)
		}
		if got.GiftBalance != 200_000 {
			t.Fatalf("Redeem() gift balance = %d, want %d", got.GiftBalance, 200_000)
		}
	})

	t.Run("error: concurrent redeemer already flipped the card", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-ABCD").Return(activeCard(), nil).Once()
		f.giftCardRepo.On("RedeemTx", mock.Anything, tx, uint64(3), uint64(1)).Return(false, nil).Once()

		_, err := f.app().Redeem(context.Background(), 1, "GC-ABCD")
		if err == nil {
			t.Fatal("Redeem() expected error")
		}
		assertErrCode(t, err, constant.ErrGiftCardUnavailable)
	})

	t.Run("error: already used card", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		used := activeCard()
		used.IsUsed = true
		used.Status = model.GiftCardStatusUsed
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-ABCD").Return(used, nil).Once()

		_, err := f.app().Redeem(context.Background(), 1, "GC-ABCD")
		if err == nil {
			t.Fatal("Redeem() expected error")
		}
		assertErrCode(t, err, constant.ErrGiftCardUnavailable)
	})

	t.Run("error: expired card", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		expired := activeCard()
		expired.ExpiryDate = time.Now().AddDate(0, 0, -1)
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-ABCD").Return(expired, nil).Once()

		_, err := f.app().Redeem(context.Background(), 1, "GC-ABCD")
		if err == nil {
			t.Fatal("Redeem() expected error")
		}
		assertErrCode(t, err, constant.ErrGiftCardUnavailable)
	})

	t.Run("error: card assigned to another user", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		owner := uint64(2)
		assigned := activeCard()
		assigned.UserID = &owner
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-ABCD").Return(assigned, nil).Once()

		_, err := f.app().Redeem(context.Background(), 1, "GC-ABCD")
		if err == nil {
			t.Fatal("Redeem() expected error")
		}
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("error: unknown code", func(t *testing.T) {
		f := newGiftCardFields(t)
		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("RollbackTx", tx).Return(nil).Once()
		f.giftCardRepo.On("GetByCodeForUpdateTx", mock.Anything, tx, "GC-NOPE").Return(nil, nil).Once()

		_, err := f.app().Redeem(context.Background(), 1, "GC-NOPE")
		if err == nil {
			t.Fatal("Redeem() expected error")
		}
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestGiftCardApp_MintForRefundTx(t *testing.T) {
	f := newGiftCardFields(t)
	tx := &sqlx.Tx{}
	f.giftCardRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(c *model.GiftCardEntity) bool {
		return strings.HasPrefix(c.Code, "GC-") && c.Amount == 150_000 &&
			c.UserID != nil && *c.UserID == 1 && c.Description != nil
	})).Return(uint64(4), nil).Once()

	card, err := f.app().MintForRefundTx(context.Background(), tx, 1, 150_000, "ORD-1")
	if err != nil {
		t.Fatalf("MintForRefundTx() error = %v", err)
	}
	if card.Status != model.GiftCardStatusActive {
		t.Fatalf("MintForRefundTx() status = %s", card.Status)
	}
}
