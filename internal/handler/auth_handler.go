package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/response"
)

type authService interface {
	RequestMagicLink(ctx context.Context, req models.MagicLinkRequest) (*models.MagicLinkResponse, error)
	VerifyMagicLink(ctx context.Context, req models.VerifyMagicLinkRequest) (*models.VerifyMagicLinkResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// RequestMagicLink godoc
// @Summary Request a login link
// @Description Email a one-time login link for the submission owned by the address
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.MagicLinkRequest true "Magic link payload"
// @Success 200 {object} models.MagicLinkResponse
// @Failure 400 {object} response.ErrorBody
// @Router /auth/request-magic-link [post]
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req models.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid magic link payload"))
		return
	}

	res, err := h.service.RequestMagicLink(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// VerifyMagicLink godoc
// @Summary Verify a login link
// @Description Exchange a magic-link token for a session token and the submission document
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.VerifyMagicLinkRequest true "Verify payload"
// @Success 200 {object} models.VerifyMagicLinkResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/verify-magic-link [post]
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	var req models.VerifyMagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "token required"))
		return
	}

	res, err := h.service.VerifyMagicLink(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
