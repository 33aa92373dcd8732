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

// RequestRefund handler
// @Summary Request a refund
// @Description Opens a pending refund for a completed or disputed order
// @Tags Refunds
// @Accept json
// @Produce json
// @Param request body model.RequestRefundRequest true "Refund Request"
// @Success 200 {object} model.RefundResponse
// @Failure 400 {object} errors.CustomError
// @Router /refunds/request [post]
func (s *RestHandler) RequestRefund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.RequestRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.RefundApp.Request(ctx, principal, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ProcessRefund handler
// @Summary Process a refund
// @Description Admin approval or rejection of a pending refund
// @Tags Refunds
// @Accept json
// @Produce json
// @Param request body model.ProcessRefundRequest true "Process Request"
// @Success 200 {object} model.RefundResponse
// @Failure 400 {object} errors.CustomError
// @Router /refunds/process [post]
func (s *RestHandler) ProcessRefund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ProcessRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.RefundApp.Process(ctx, principal, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListMyRefunds handler
// @Summary List my refunds
// @Tags Refunds
// @Produce json
// @Success 200 {array} model.PaymentEntity
// @Router /refunds/mine [get]
func (s *RestHandler) ListMyRefunds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.RefundApp.ListMine(ctx, principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListPendingRefunds handler
// @Summary List pending refunds
// @Description Admin queue of refunds awaiting a decision
// @Tags Refunds
// @Produce json
// @Success 200 {array} model.PaymentEntity
// @Failure 403 {object} errors.CustomError
// @Router /refunds/all [get]
func (s *RestHandler) ListPendingRefunds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.RefundApp.ListPending(ctx, principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
