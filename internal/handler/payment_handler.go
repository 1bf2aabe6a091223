package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

type paymentService interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	Get(ctx context.Context, id int64) (*models.Payment, error)
	Create(ctx context.Context, req dto.PaymentRequest) (*models.Payment, error)
	Update(ctx context.Context, id int64, req dto.PaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	payments paymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments paymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param student_id query int false "Only payments of this student"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	studentID, err := optionalInt64Query(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	payments, err := h.payments.List(c.Request.Context(), models.PaymentFilter{StudentID: studentID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, payments)
}

// Get godoc
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, payment)
}

// Create godoc
// @Summary Register payment
// @Description num_classes defaults to 1 when omitted, null or zero.
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment registered successfully!", payment)
}

// Update godoc
// @Summary Update payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payments.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment updated successfully!", dto.PaymentUpdated{
		ID:          c.Param("id"),
		StudentID:   payment.StudentID,
		Amount:      payment.Amount,
		NumClasses:  payment.NumClasses,
		PaymentDate: payment.PaymentDate,
	})
}

// Delete godoc
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.MessageBody
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.payments.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Payment deleted successfully!", gin.H{"changes": changes})
}
