package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req dto.StudentRequest) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, students)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.MessageBody
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msgSuccess, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student added successfully!", student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.StudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.MessageBody
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.students.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student updated successfully!", dto.StudentUpdated{ID: c.Param("id"), StudentRequest: req})
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.MessageBody
// @Failure 409 {object} response.ErrorBody
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Student deleted successfully!", gin.H{"changes": changes})
}
