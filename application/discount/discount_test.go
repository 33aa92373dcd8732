package discount_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appdiscount "github.com/nedasoft/marketplace-api/application/discount"
	"github.com/nedasoft/marketplace-api/constant"
	discountmocks "github.com/nedasoft/marketplace-api/mocks/repository/discount"
	"github.com/nedasoft/marketplace-api/model"
	cerr "github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestDiscountApp_Validate(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	type fields struct {
		discountRepo *discountmocks.DiscountRepository
	}
	type args struct {
		ctx context.Context
		in  *model.DiscountValidateInput
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     int64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: percentage discount",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "SAVE10", UserID: 1, Amount: 500_000, ProductIDs: []uint64{1}},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "SAVE10").Return(&model.DiscountCodeEntity{
					ID: 1, Code: "SAVE10", Type: constant.DiscountTypePercentage, Value: 10,
					IsActive: true, ExpiresAt: &future,
				}, nil).Once()
				f.discountRepo.On("ListAllowedProductIDs", mock.Anything, uint64(1)).Return(nil, nil).Once()
			},
			want: 50_000,
		},
		{
			name:   "success: fixed discount clamps to amount",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "FIX", UserID: 1, Amount: 30_000},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "FIX").Return(&model.DiscountCodeEntity{
					ID: 2, Code: "FIX", Type: constant.DiscountTypeFixed, Value: 100_000, IsActive: true,
				}, nil).Once()
				f.discountRepo.On("ListAllowedProductIDs", mock.Anything, uint64(2)).Return(nil, nil).Once()
			},
			want: 30_000,
		},
		{
			name:   "error: unknown code",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "NOPE", UserID: 1, Amount: 100},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "NOPE").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidDiscountCode,
		},
		{
			name:   "error: expired code rejected before usage counting",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "OLD", UserID: 1, Amount: 100},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "OLD").Return(&model.DiscountCodeEntity{
					ID: 3, Code: "OLD", Type: constant.DiscountTypeFixed, Value: 10,
					IsActive: true, ExpiresAt: &expired, MaxUses: 100,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidDiscountCode,
		},
		{
			name:   "error: global usage cap reached",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "CAP", UserID: 1, Amount: 100},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "CAP").Return(&model.DiscountCodeEntity{
					ID: 4, Code: "CAP", Type: constant.DiscountTypeFixed, Value: 10,
					IsActive: true, MaxUses: 5,
				}, nil).Once()
				f.discountRepo.On("CountUsage", mock.Anything, uint64(4)).Return(5, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidDiscountCode,
		},
		{
			name:   "error: per-user cap reached",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "ONCE", UserID: 7, Amount: 100},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "ONCE").Return(&model.DiscountCodeEntity{
					ID: 5, Code: "ONCE", Type: constant.DiscountTypeFixed, Value: 10,
					IsActive: true, MaxUsesPerUser: 1,
				}, nil).Once()
				f.discountRepo.On("CountUsageByUser", mock.Anything, uint64(5), uint64(7)).Return(1, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidDiscountCode,
		},
		{
			name:   "error: below minimum order amount",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "MIN", UserID: 1, Amount: 40_000},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "MIN").Return(&model.DiscountCodeEntity{
					ID: 6, Code: "MIN", Type: constant.DiscountTypeFixed, Value: 10_000,
					IsActive: true, MinOrderAmount: 50_000,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidDiscountCode,
		},
		{
			name:   "error: no cart product on the allow-list",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "LIST", UserID: 1, Amount: 100_000, ProductIDs: []uint64{9}},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "LIST").Return(&model.DiscountCodeEntity{
					ID: 7, Code: "LIST", Type: constant.DiscountTypePercentage, Value: 5, IsActive: true,
				}, nil).Once()
				f.discountRepo.On("ListAllowedProductIDs", mock.Anything, uint64(7)).Return([]uint64{1, 2}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidDiscountCode,
		},
		{
			name:   "error: repository failure",
			fields: fields{discountRepo: discountmocks.NewDiscountRepository(t)},
			args: args{
				ctx: context.Background(),
				in:  &model.DiscountValidateInput{Code: "BOOM", UserID: 1, Amount: 100},
			},
			mockCall: func(f fields) {
				f.discountRepo.On("GetByCode", mock.Anything, "BOOM").Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appdiscount.NewDiscountApp(tt.fields.discountRepo)

			got, err := app.Validate(tt.args.ctx, tt.args.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got != tt.want {
				t.Fatalf("Validate() = %d, want %d", got, tt.want)
			}
		})
	}
}
