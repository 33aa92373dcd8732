package wallet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appwallet "github.com/nedasoft/marketplace-api/application/wallet"
	"github.com/nedasoft/marketplace-api/constant"
	txmocks "github.com/nedasoft/marketplace-api/mocks/repository/tx"
	walletmocks "github.com/nedasoft/marketplace-api/mocks/repository/wallet"
	"github.com/nedasoft/marketplace-api/model"
	cerr "github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

type walletFields struct {
	txRepo     *txmocks.TxRepository
	walletRepo *walletmocks.WalletRepository
}

func newWalletFields(t *testing.T) walletFields {
	return walletFields{
		txRepo:     txmocks.NewTxRepository(t),
		walletRepo: walletmocks.NewWalletRepository(t),
	}
}

func (f walletFields) app() appwallet.WalletApp {
	return appwallet.NewWalletApp(f.txRepo, f.walletRepo)
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

func TestWalletApp_Get(t *testing.T) {
	t.Run("success: existing wallet is returned as is", func(t *testing.T) {
		f := newWalletFields(t)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(1)).Return(&model.WalletEntity{ID: 8, UserID: 1, Balance: 50_000}, nil).Once()

		got, err := f.app().Get(context.Background(), 1)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != 8 {
			t.Fatalf("Get() id = %d", got.ID)
		}
	})

	t.Run("success: missing wallet is created lazily", func(t *testing.T) {
		f := newWalletFields(t)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(1)).Return(nil, nil).Once()
		f.walletRepo.On("Create", mock.Anything, uint64(1)).Return(&model.WalletEntity{ID: 9, UserID: 1}, nil).Once()

		got, err := f.app().Get(context.Background(), 1)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != 9 || got.Balance != 0 {
			t.Fatalf("Get() = %+v", got)
		}
	})
}

func TestWalletApp_DebitForOrderTx(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		mockCall func(f walletFields, tx *sqlx.Tx)
		errCode  constant.ErrorType
	}{
		{
			name:   "success: sufficient balance is debited with a ledger row",
			amount: 300_000,
			mockCall: func(f walletFields, tx *sqlx.Tx) {
				f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{
					ID: 8, UserID: 1, Balance: 500_000,
				}, nil).Once()
				f.walletRepo.On("DebitTx", mock.Anything, tx, uint64(8), int64(300_000)).Return(true, nil).Once()
				f.walletRepo.On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(wt *model.WalletTransactionEntity) bool {
					return wt.WalletID == 8 && wt.Amount == -300_000 && wt.Kind == constant.WalletTxDebit &&
						wt.OrderID != nil && *wt.OrderID == 42
				})).Return(nil).Once()
			},
		},
		{
			name:   "error: balance below the amount",
			amount: 600_000,
			mockCall: func(f walletFields, tx *sqlx.Tx) {
				f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{
					ID: 8, UserID: 1, Balance: 500_000,
				}, nil).Once()
			},
			errCode: constant.ErrInsufficientBalance,
		},
		{
			name:   "error: conditional debit finds the balance moved",
			amount: 300_000,
			mockCall: func(f walletFields, tx *sqlx.Tx) {
				f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{
					ID: 8, UserID: 1, Balance: 500_000,
				}, nil).Once()
				f.walletRepo.On("DebitTx", mock.Anything, tx, uint64(8), int64(300_000)).Return(false, nil).Once()
			},
			errCode: constant.ErrInsufficientBalance,
		},
		{
			name:   "error: no wallet row",
			amount: 300_000,
			mockCall: func(f walletFields, tx *sqlx.Tx) {
				f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, nil).Once()
			},
			errCode: constant.ErrWalletNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWalletFields(t)
			tx := &sqlx.Tx{}
			tt.mockCall(f, tx)

			err := f.app().DebitForOrderTx(context.Background(), tx, 1, 42, tt.amount, "payment for order ORD-1")
			if tt.errCode == constant.Successful {
				if err != nil {
					t.Fatalf("DebitForOrderTx() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("DebitForOrderTx() expected error")
			}
			assertErrCode(t, err, tt.errCode)
		})
	}
}

func TestWalletApp_CreditForOrderTx(t *testing.T) {
	f := newWalletFields(t)
	tx := &sqlx.Tx{}
	f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{
		ID: 8, UserID: 1, Balance: 100_000,
	}, nil).Once()
	f.walletRepo.On("CreditTx", mock.Anything, tx, uint64(8), int64(500_000)).Return(nil).Once()
	f.walletRepo.On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(wt *model.WalletTransactionEntity) bool {
		return wt.Amount == 500_000 && wt.Kind == constant.WalletTxCredit
	})).Return(nil).Once()

	if err := f.app().CreditForOrderTx(context.Background(), tx, 1, 42, 500_000, "refund for order ORD-1"); err != nil {
		t.Fatalf("CreditForOrderTx() error = %v", err)
	}
}

func TestWalletApp_CreditForOrderTx_CreatesWallet(t *testing.T) {
	f := newWalletFields(t)
	tx := &sqlx.Tx{}
	f.walletRepo.On("GetByUserIDForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, nil).Once()
	f.walletRepo.On("CreateTx", mock.Anything, tx, uint64(1)).Return(&model.WalletEntity{ID: 9, UserID: 1}, nil).Once()
	f.walletRepo.On("CreditTx", mock.Anything, tx, uint64(9), int64(500_000)).Return(nil).Once()
	f.walletRepo.On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(wt *model.WalletTransactionEntity) bool {
		return wt.WalletID == 9 && wt.Amount == 500_000 && wt.Kind == constant.WalletTxCredit
	})).Return(nil).Once()

	if err := f.app().CreditForOrderTx(context.Background(), tx, 1, 42, 500_000, "refund for order ORD-1"); err != nil {
		t.Fatalf("CreditForOrderTx() error = %v", err)
	}
}
