package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

type classService interface {
	List(ctx context.Context) ([]models.ClassSlot, error)
	Get(ctx context.Context, id int64) (*models.ClassSlot, error)
	Create(ctx context.Context, req dto.ClassSlotRequest) (*models.ClassSlot, error)
	Update(ctx context.Context, id int64, req dto.ClassSlotRequest) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ClassHandler exposes class slot endpoints.
type ClassHandler struct {
	classes classService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes classService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List godoc
// @Summary List class slots
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, classes)
}

// Get godoc
// @Summary Get class slot
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	class, err := h.classes.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, class)
}

// Create godoc
// @Summary Create class slot
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.ClassSlotRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.ClassSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Class added successfully!", class)
}

// Update godoc
// @Summary Update class slot
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body dto.ClassSlotRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ClassSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.classes.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Class updated successfully!", dto.ClassSlotUpdated{ID: c.Param("id"), ClassSlotRequest: req})
}

// Delete godoc
// @Summary Delete class slot
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.MessageBody
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.classes.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Class deleted successfully!", gin.H{"changes": changes})
}
