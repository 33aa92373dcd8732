package cart

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	discountapp "github.com/nedasoft/marketplace-api/application/discount"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	cartrepo "github.com/nedasoft/marketplace-api/repository/cart"
	productrepo "github.com/nedasoft/marketplace-api/repository/product"
	txrepo "github.com/nedasoft/marketplace-api/repository/tx"
	"github.com/nedasoft/marketplace-api/utils/errors"
	"github.com/nedasoft/marketplace-api/utils/logger"
	"go.uber.org/zap"
)

type CartApp interface {
	Get(ctx context.Context, userID uint64) (*model.CartResponse, error)
	AddItem(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.CartResponse, error)
	UpdateItem(ctx context.Context, userID uint64, itemID uint64, req *model.UpdateCartItemRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, userID uint64, itemID uint64) (*model.CartResponse, error)
	Clear(ctx context.Context, userID uint64) error
	ApplyDiscount(ctx context.Context, userID uint64, code string) (*model.CartResponse, error)
	RemoveDiscount(ctx context.Context, userID uint64) (*model.CartResponse, error)
}

type cartAppImpl struct {
	txRepo      txrepo.TxRepository
	cartRepo    cartrepo.CartRepository
	productRepo productrepo.ProductRepository
	discountApp discountapp.DiscountApp
}

func NewCartApp(txRepo txrepo.TxRepository, cartRepo cartrepo.CartRepository, productRepo productrepo.ProductRepository, discountApp discountapp.DiscountApp) CartApp {
	return &cartAppImpl{txRepo: txRepo, cartRepo: cartRepo, productRepo: productRepo, discountApp: discountApp}
}

func (s *cartAppImpl) Get(ctx context.Context, userID uint64) (*model.CartResponse, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		logger.Error("[Get] list items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return toResponse(cart, items), nil
}

func (s *cartAppImpl) AddItem(ctx context.Context, userID uint64, req *model.AddCartItemRequest) (*model.CartResponse, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[AddItem] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if !product.IsActive {
		return nil, errors.SetCustomError(constant.ErrProductInactive)
	}

	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	optionsJSON, err := encodeOptions(req.Options)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	return s.mutate(ctx, userID, func(tx *sqlx.Tx, locked *model.CartEntity) error {
		existing, err := s.cartRepo.GetItemByProductTx(ctx, tx, locked.ID, req.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			// mergeReplace: a repeat add accumulates quantity (capped) but
			// re-prices the line at the product's CURRENT price and replaces
			// any previously chosen options.
			qty := existing.Quantity + req.Quantity
			if qty > constant.CartItemMaxQuantity {
				qty = constant.CartItemMaxQuantity
			}
			existing.Quantity = qty
			existing.Price = product.Price
			existing.TotalPrice = product.Price * int64(qty)
			existing.Options = optionsJSON
			return s.cartRepo.UpdateItemTx(ctx, tx, existing)
		}

		item := &model.CartItemEntity{
			CartID:     locked.ID,
			ProductID:  product.ID,
			SellerID:   product.SellerID,
			Price:      product.Price,
			Quantity:   req.Quantity,
			TotalPrice: product.Price * int64(req.Quantity),
			Options:    optionsJSON,
		}
		return s.cartRepo.InsertItemTx(ctx, tx, item)
	})
}

func (s *cartAppImpl) UpdateItem(ctx context.Context, userID uint64, itemID uint64, req *model.UpdateCartItemRequest) (*model.CartResponse, error) {
	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	optionsJSON, err := encodeOptions(req.Options)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	return s.mutate(ctx, userID, func(tx *sqlx.Tx, locked *model.CartEntity) error {
		item, err := s.cartRepo.GetItemTx(ctx, tx, locked.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return errors.SetCustomError(constant.ErrItemNotFound)
		}
		item.Quantity = req.Quantity
		item.TotalPrice = item.Price * int64(req.Quantity)
		if req.Options != nil {
			item.Options = optionsJSON
		}
		return s.cartRepo.UpdateItemTx(ctx, tx, item)
	})
}

func (s *cartAppImpl) RemoveItem(ctx context.Context, userID uint64, itemID uint64) (*model.CartResponse, error) {
	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(tx *sqlx.Tx, locked *model.CartEntity) error {
		removed, err := s.cartRepo.DeleteItemTx(ctx, tx, locked.ID, itemID)
		if err != nil {
			return err
		}
		if !removed {
			return errors.SetCustomError(constant.ErrItemNotFound)
		}
		return nil
	})
}

func (s *cartAppImpl) Clear(ctx context.Context, userID uint64) error {
	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return err
	}

	_, err := s.mutate(ctx, userID, func(tx *sqlx.Tx, locked *model.CartEntity) error {
		locked.DiscountCode = nil
		return s.cartRepo.DeleteAllItemsTx(ctx, tx, locked.ID)
	})
	return err
}

func (s *cartAppImpl) ApplyDiscount(ctx context.Context, userID uint64, code string) (*model.CartResponse, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		logger.Error("[ApplyDiscount] list items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if _, err := s.discountApp.Validate(ctx, &model.DiscountValidateInput{
		Code:       code,
		UserID:     userID,
		Amount:     cart.TotalPrice,
		ProductIDs: productIDs(items),
	}); err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(tx *sqlx.Tx, locked *model.CartEntity) error {
		locked.DiscountCode = &code
		return nil
	})
}

func (s *cartAppImpl) RemoveDiscount(ctx context.Context, userID uint64) (*model.CartResponse, error) {
	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, func(tx *sqlx.Tx, locked *model.CartEntity) error {
		locked.DiscountCode = nil
		return nil
	})
}

func (s *cartAppImpl) getOrCreate(ctx context.Context, userID uint64) (*model.CartEntity, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("[getOrCreate] get cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if cart != nil {
		return cart, nil
	}
	cart, err = s.cartRepo.Create(ctx, userID)
	if err != nil {
		logger.Error("[getOrCreate] create cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return cart, nil
}

// mutate runs op against the locked cart row, then recomputes totals from the
// cart_item rows and discount state before committing. Totals are never
// patched incrementally, so a failed half-update cannot leave them drifted.
func (s *cartAppImpl) mutate(ctx context.Context, userID uint64, op func(tx *sqlx.Tx, locked *model.CartEntity) error) (*model.CartResponse, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[mutate] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	locked, err := s.cartRepo.GetByUserIDForUpdateTx(ctx, tx, userID)
	if err != nil {
		logger.Error("[mutate] lock cart", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if locked == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := op(tx, locked); err != nil {
		if ce, ok := err.(errors.CustomError); ok {
			return nil, ce
		}
		logger.Error("[mutate] op failed", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	items, err := s.cartRepo.ListItemsTx(ctx, tx, locked.ID)
	if err != nil {
		logger.Error("[mutate] list items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.recompute(ctx, locked, items)

	if err := s.cartRepo.UpdateTotalsTx(ctx, tx, locked); err != nil {
		logger.Error("[mutate] update totals", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[mutate] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return toResponse(locked, items), nil
}

// recompute derives every total field from the item rows. The discount is
// re-evaluated against the new total; a code that no longer qualifies is
// dropped rather than kept at a stale amount.
func (s *cartAppImpl) recompute(ctx context.Context, cart *model.CartEntity, items []model.CartItemEntity) {
	var totalItems int
	var totalPrice int64
	for _, it := range items {
		totalItems += it.Quantity
		totalPrice += it.TotalPrice
	}
	cart.TotalItems = totalItems
	cart.TotalPrice = totalPrice
	cart.DiscountAmount = 0

	if cart.DiscountCode != nil && totalItems > 0 {
		amount, err := s.discountApp.Validate(ctx, &model.DiscountValidateInput{
			Code:       *cart.DiscountCode,
			UserID:     cart.UserID,
			Amount:     totalPrice,
			ProductIDs: productIDs(items),
		})
		if err != nil {
			cart.DiscountCode = nil
		} else {
			cart.DiscountAmount = amount
		}
	} else if totalItems == 0 {
		cart.DiscountCode = nil
	}

	final := cart.TotalPrice - cart.DiscountAmount
	if final < 0 {
		final = 0
	}
	cart.FinalPrice = final
}

func toResponse(cart *model.CartEntity, items []model.CartItemEntity) *model.CartResponse {
	resp := &model.CartResponse{
		TotalItems:     cart.TotalItems,
		TotalPrice:     cart.TotalPrice,
		DiscountCode:   cart.DiscountCode,
		DiscountAmount: cart.DiscountAmount,
		FinalPrice:     cart.FinalPrice,
		Items:          make([]model.CartItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, model.CartItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Price:      it.Price,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
			Options:    it.OptionsMap(),
		})
	}
	return resp
}

func productIDs(items []model.CartItemEntity) []uint64 {
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func encodeOptions(options map[string]string) (string, error) {
	if options == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
