package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

type attendanceService interface {
	Register(ctx context.Context, req dto.AttendanceRequest) (*dto.AttendanceResult, error)
	Summary(result *dto.AttendanceResult) string
}

// AttendanceHandler records a class for several students at once.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Register godoc
// @Summary Register attendance for a list of students
// @Description Each student is inserted independently. Any failure yields 207 with per-student errors.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.AttendanceRequest true "Attendance payload"
// @Success 200 {object} dto.AttendanceResult
// @Success 207 {object} dto.AttendanceResult
// @Failure 400 {object} response.ErrorBody
// @Router /class-attendance [post]
func (h *AttendanceHandler) Register(c *gin.Context) {
	var req dto.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "class_id, class_date and student_ids (list) are required"))
		return
	}
	result, err := h.attendance.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := h.attendance.Summary(result)
	if result.Partial() {
		response.Message(c, http.StatusMultiStatus, message, gin.H{
			"inserted": result.Inserted,
			"failed":   result.Failed,
			"errors":   result.Errors,
		})
		return
	}
	response.Message(c, http.StatusOK, message, gin.H{"inserted": result.Inserted})
}
