package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	utilsContext "github.com/nedasoft/marketplace-api/utils/context"
	"github.com/nedasoft/marketplace-api/utils/errors"
	validatorx "github.com/nedasoft/marketplace-api/utils/validator"
)

// GetCart handler
// @Summary Get cart
// @Description Current user's cart with items and totals
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartResponse
// @Failure 401 {object} errors.CustomError
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CartApp.Get(ctx, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AddCartItem handler
// @Summary Add cart item
// @Description Add a product to the cart; adding an existing product merges quantities
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.AddCartItemRequest true "Add Item Request"
// @Success 200 {object} model.CartResponse
// @Failure 422 {object} errors.CustomError
// @Router /cart/items [post]
func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.AddItem(ctx, principal.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateCartItem handler
// @Summary Update cart item
// @Description Change quantity or options of a cart item
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Cart Item ID"
// @Param request body model.UpdateCartItemRequest true "Update Item Request"
// @Success 200 {object} model.CartResponse
// @Failure 404 {object} errors.CustomError
// @Router /cart/items/{id} [put]
func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.UpdateItem(ctx, principal.UserID, itemID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveCartItem handler
// @Summary Remove cart item
// @Tags Cart
// @Produce json
// @Param id path int true "Cart Item ID"
// @Success 200 {object} model.CartResponse
// @Failure 404 {object} errors.CustomError
// @Router /cart/items/{id} [delete]
func (s *RestHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.RemoveItem(ctx, principal.UserID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ClearCart handler
// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} responseEnvelope
// @Router /cart [delete]
func (s *RestHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.CartApp.Clear(ctx, principal.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ApplyDiscount handler
// @Summary Apply discount code
// @Description Validate and attach a discount code to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body model.ApplyDiscountRequest true "Discount Request"
// @Success 200 {object} model.CartResponse
// @Failure 422 {object} errors.CustomError
// @Router /cart/discount [post]
func (s *RestHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ApplyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.ApplyDiscount(ctx, principal.UserID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveDiscount handler
// @Summary Remove discount code
// @Tags Cart
// @Produce json
// @Success 200 {object} model.CartResponse
// @Router /cart/discount [delete]
func (s *RestHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CartApp.RemoveDiscount(ctx, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func pathID(r *http.Request, key string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[key], 10, 64)
}
