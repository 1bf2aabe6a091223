package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutoring-admin-api/internal/models"
	"github.com/noah-isme/tutoring-admin-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) error
}

// AuthHandler exposes the credential check.
type AuthHandler struct {
	auth authService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Check admin credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.MessageBody
// @Failure 401 {object} response.MessageBody
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.auth.Login(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Login successful!")
}
