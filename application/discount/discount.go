package discount

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	discountrepo "github.com/nedasoft/marketplace-api/repository/discount"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type DiscountApp interface {
	// Validate runs the eligibility chain and returns the computed discount
	// amount. The first failed check wins.
	Validate(ctx context.Context, in *model.DiscountValidateInput) (int64, error)
	RecordUsageTx(ctx context.Context, tx *sqlx.Tx, code string, userID, orderID uint64) error
}

type discountAppImpl struct {
	discountRepo discountrepo.DiscountRepository
}

func NewDiscountApp(discountRepo discountrepo.DiscountRepository) DiscountApp {
	return &discountAppImpl{discountRepo: discountRepo}
}

func (s *discountAppImpl) Validate(ctx context.Context, in *model.DiscountValidateInput) (int64, error) {
	code, err := s.discountRepo.GetByCode(ctx, in.Code)
	if err != nil {
		logger.Error("[Validate] get code", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if code == nil {
		return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
	}

	if !code.IsActive {
		return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
	}
	if code.ExpiresAt != nil && code.ExpiresAt.Before(time.Now()) {
		return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
	}

	if code.MaxUses > 0 {
		used, err := s.discountRepo.CountUsage(ctx, code.ID)
		if err != nil {
			logger.Error("[Validate] count usage", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}
		if used >= code.MaxUses {
			return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
		}
	}

	if code.MaxUsesPerUser > 0 {
		used, err := s.discountRepo.CountUsageByUser(ctx, code.ID, in.UserID)
		if err != nil {
			logger.Error("[Validate] count user usage", zap.String("error", err.Error()))
			return 0, errors.SetCustomError(constant.ErrInternal)
		}
		if used >= code.MaxUsesPerUser {
			return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
		}
	}

	if in.Amount < code.MinOrderAmount {
		return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
	}

	allowed, err := s.discountRepo.ListAllowedProductIDs(ctx, code.ID)
	if err != nil {
		logger.Error("[Validate] allow-list", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if len(allowed) > 0 && !anyAllowed(in.ProductIDs, allowed) {
		return 0, errors.SetCustomError(constant.ErrInvalidDiscountCode)
	}

	return computeAmount(code, in.Amount), nil
}

func (s *discountAppImpl) RecordUsageTx(ctx context.Context, tx *sqlx.Tx, codeStr string, userID, orderID uint64) error {
	code, err := s.discountRepo.GetByCode(ctx, codeStr)
	if err != nil {
		return err
	}
	if code == nil {
		return errors.SetCustomError(constant.ErrInvalidDiscountCode)
	}
	return s.discountRepo.RecordUsageTx(ctx, tx, code.ID, userID, orderID)
}

// computeAmount applies the code to amount. Fixed discounts are clamped so
// the result never exceeds the amount being discounted.
func computeAmount(code *model.DiscountCodeEntity, amount int64) int64 {
	switch code.Type {
	case constant.DiscountTypePercentage:
		return amount * code.Value / 100
	case constant.DiscountTypeFixed:
		if code.Value > amount {
			return amount
		}
		return code.Value
	default:
		return 0
	}
}

func anyAllowed(productIDs, allowed []uint64) bool {
	set := make(map[uint64]struct{}, len(allowed))
	for _, id := range allowed {
		set[id] = struct{}{}
	}
	for _, id := range productIDs {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
