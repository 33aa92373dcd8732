package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nedasoft/marketplace-api/constant"
	"github.com/nedasoft/marketplace-api/model"
	utilsContext "github.com/nedasoft/marketplace-api/utils/context"
	"github.com/nedasoft/marketplace-api/utils/errors"
	validatorx "github.com/nedasoft/marketplace-api/utils/validator"
)

// multipart form fields are small; the file part itself streams through the
// storage layer where the real size ceiling lives
const multipartMemoryLimit = 10 << 20

// ListOrders handler
// @Summary List my orders
// @Tags Orders
// @Produce json
// @Success 200 {array} model.OrderEntity
// @Router /orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.OrderApp.ListMine(ctx, principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Description Order detail; owner or a principal with orders.view
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 404 {object} errors.CustomError
// @Router /orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.Get(ctx, principal, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApproveOrder handler
// @Summary Approve a paid order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} responseEnvelope
// @Failure 400 {object} errors.CustomError
// @Router /orders/{id}/approve [post]
func (s *RestHandler) ApproveOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.Approve(ctx, principal, orderID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// RejectOrder handler
// @Summary Reject an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.RejectOrderRequest true "Reject Request"
// @Success 200 {object} responseEnvelope
// @Failure 400 {object} errors.CustomError
// @Router /orders/{id}/reject [post]
func (s *RestHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.RejectOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.Reject(ctx, principal, orderID, req.Reason); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// UpdateOrderStatus handler
// @Summary Admin status override
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Status Request"
// @Success 200 {object} responseEnvelope
// @Failure 400 {object} errors.CustomError
// @Router /orders/{id}/status [post]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.OrderApp.UpdateStatus(ctx, principal, orderID, constant.OrderStatus(req.Status), req.Notes); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// UploadDeliveryFile handler
// @Summary Upload a delivery file
// @Description Seller delivery upload; multipart with a "file" part
// @Tags Orders
// @Accept mpfd
// @Produce json
// @Param id path int true "Order Item ID"
// @Param file formData file true "Delivery file"
// @Param description formData string false "Description"
// @Success 200 {object} model.DeliveryFileEntity
// @Failure 400 {object} errors.CustomError
// @Router /order-items/{id}/upload-file [post]
func (s *RestHandler) UploadDeliveryFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderItemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	defer file.Close()

	upload := &model.DeliveryUpload{
		Filename: header.Filename,
		Content:  file,
	}
	if v := r.FormValue("description"); v != "" {
		upload.Description = &v
	}
	if v := r.FormValue("expires_at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
		upload.ExpiresAt = &t
	}

	res, err := s.OrderApp.UploadDeliveryFile(ctx, principal, orderItemID, upload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListOrderMessages handler
// @Summary List order messages
// @Tags Messages
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} model.OrderMessageEntity
// @Failure 403 {object} errors.CustomError
// @Router /orders/{id}/messages [get]
func (s *RestHandler) ListOrderMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.ListMessages(ctx, principal, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PostOrderMessage handler
// @Summary Post an order message
// @Description Message between buyer, seller and admin on an order; multipart with optional "attachment" part
// @Tags Messages
// @Accept mpfd
// @Produce json
// @Param id path int true "Order ID"
// @Param body formData string true "Message body"
// @Param attachment formData file false "Attachment"
// @Success 200 {object} model.OrderMessageEntity
// @Failure 403 {object} errors.CustomError
// @Router /orders/{id}/messages [post]
func (s *RestHandler) PostOrderMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utilsContext.GetPrincipal(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	req := model.PostMessageRequest{Body: r.FormValue("body")}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var attachment *model.MessageAttachment
	if file, header, err := r.FormFile("attachment"); err == nil {
		defer file.Close()
		attachment = &model.MessageAttachment{
			Filename: header.Filename,
			Content:  file,
		}
	}

	res, err := s.OrderApp.PostMessage(ctx, principal, orderID, req.Body, attachment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
