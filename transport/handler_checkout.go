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

// CheckoutPreview handler
// @Summary Checkout preview
// @Description Cart snapshot plus the available payment options
// @Tags Checkout
// @Produce json
// @Success 200 {object} model.CheckoutResponse
// @Failure 400 {object} errors.CustomError
// @Router /checkout [get]
func (s *RestHandler) CheckoutPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CheckoutApp.Preview(ctx, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ProcessPayment handler
// @Summary Pay for the cart
// @Description Creates the order and either settles from wallet or hands off to the gateway
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body model.ProcessPaymentRequest true "Payment Request"
// @Success 200 {object} model.ProcessPaymentResponse
// @Failure 400 {object} errors.CustomError
// @Router /checkout/pay [post]
func (s *RestHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CheckoutApp.ProcessPayment(ctx, principal.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PaymentCallback handler
// @Summary Gateway payment callback
// @Description Verifies a pending online payment against the gateway; safe to retry
// @Tags Checkout
// @Produce json
// @Param paymentId path int true "Payment ID"
// @Success 200 {object} model.VerifyPaymentResponse
// @Failure 400 {object} errors.CustomError
// @Router /payments/verify/{paymentId} [get]
func (s *RestHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paymentID, err := pathID(r, "paymentId")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	// the gateway appends its fields (Authority, Status, ...) as query params
	fields := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	res, err := s.CheckoutApp.VerifyPayment(ctx, paymentID, fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
