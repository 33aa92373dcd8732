package transport

import (
	"encoding/json"
	"net/http"

	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	utilsContext "github.com/nedasoft/marketplace-api/utils/context"
	"github.com/nedasoft/marketplace-api/utils/errors"
	validatorx "github.com/nedasoft/marketplace-api/utils/validator"
)

// CreateGiftCard handler
// @Summary Create a gift card
// @Description Admin mint of a gift card, optionally bound to a user
// @Tags GiftCards
// @Accept json
// @Produce json
// @Param request body model.CreateGiftCardRequest true "Gift Card Request"
// @Success 200 {object} model.GiftCardEntity
// @Failure 403 {object} errors.CustomError
// @Router /giftcards [post]
func (s *RestHandler) CreateGiftCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateGiftCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.GiftCardApp.Create(ctx, principal, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListGiftCards handler
// @Summary List my gift cards
// @Tags GiftCards
// @Produce json
// @Success 200 {array} model.GiftCardEntity
// @Router /giftcards [get]
func (s *RestHandler) ListGiftCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.GiftCardApp.ListMine(ctx, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RedeemGiftCard handler
// @Summary Redeem a gift card
// @Description Credits the card amount to the gift balance; a card redeems exactly once
// @Tags GiftCards
// @Accept json
// @Produce json
// @Param request body model.RedeemGiftCardRequest true "Redeem Request"
// @Success 200 {object} model.RedeemGiftCardResponse
// @Failure 400 {object} errors.CustomError
// @Router /giftcards/redeem [post]
func (s *RestHandler) RedeemGiftCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.RedeemGiftCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.GiftCardApp.Redeem(ctx, principal.UserID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
