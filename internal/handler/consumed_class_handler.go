package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

type consumedClassService interface {
	List(ctx context.Context, filter models.ConsumedClassFilter) ([]models.ConsumedClass, error)
	Get(ctx context.Context, id int64) (*models.ConsumedClass, error)
	Create(ctx context.Context, req dto.ConsumedClassRequest) (*models.ConsumedClass, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ConsumedClassHandler exposes attended class records.
type ConsumedClassHandler struct {
	records consumedClassService
}

// NewConsumedClassHandler constructs ConsumedClassHandler.
func NewConsumedClassHandler(records consumedClassService) *ConsumedClassHandler {
	return &ConsumedClassHandler{records: records}
}

// List godoc
// @Summary List consumed classes
// @Tags Consumed Classes
// @Produce json
// @Param student_id query int false "Only records of this student"
// @Success 200 {object} response.Envelope
// @Router /consumed-classes [get]
func (h *ConsumedClassHandler) List(c *gin.Context) {
	studentID, err := optionalInt64Query(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.records.List(c.Request.Context(), models.ConsumedClassFilter{StudentID: studentID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, records)
}

// Get godoc
// @Summary Get consumed class
// @Tags Consumed Classes
// @Produce json
// @Param id path int true "Consumed class ID"
// @Success 200 {object} response.Envelope
// @Router /consumed-classes/{id} [get]
func (h *ConsumedClassHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, record)
}

// Create godoc
// @Summary Register consumed class
// @Tags Consumed Classes
// @Accept json
// @Produce json
// @Param payload body dto.ConsumedClassRequest true "Consumed class payload"
// @Success 200 {object} response.Envelope
// @Router /consumed-classes [post]
func (h *ConsumedClassHandler) Create(c *gin.Context) {
	var req dto.ConsumedClassRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.records.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Consumed class registered successfully!", record)
}

// Delete godoc
// @Summary Delete consumed class
// @Tags Consumed Classes
// @Produce json
// @Param id path int true "Consumed class ID"
// @Success 200 {object} response.MessageBody
// @Router /consumed-classes/{id} [delete]
func (h *ConsumedClassHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.records.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Consumed class deleted successfully!", gin.H{"changes": changes})
}
