package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/response"
)

type submissionService interface {
	GetOwn(ctx context.Context, session *models.Session) (*models.Submission, error)
	UpdateOwn(ctx context.Context, session *models.Session, payload map[string]json.RawMessage) (*models.Submission, error)
	UploadMedia(ctx context.Context, session *models.Session, originalName, contentType string, size int64, r io.Reader) (*models.UploadResponse, error)
	MaxUploadBytes() int64
}

// SubmissionHandler wires the authenticated submission endpoints.
type SubmissionHandler struct {
	service submissionService
}

// NewSubmissionHandler creates a new handler.
func NewSubmissionHandler(svc submissionService) *SubmissionHandler {
	return &SubmissionHandler{service: svc}
}

// GetOwn godoc
// @Summary Get own submission
// @Description Return the submission document owned by the session
// @Tags Submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Submission
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /submissions/me [get]
func (h *SubmissionHandler) GetOwn(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	doc, err := h.service.GetOwn(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc)
}

// UpdateOwn godoc
// @Summary Update own submission
// @Description Merge the supplied fields into the session's submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body map[string]interface{} true "Fields to update"
// @Success 200 {object} models.Submission
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /submissions/me [put]
func (h *SubmissionHandler) UpdateOwn(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	doc, err := h.service.UpdateOwn(c.Request.Context(), session, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc)
}

// UploadImage godoc
// @Summary Upload an image
// @Description Store an image file and return its asset reference
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /submissions/upload-image [post]
func (h *SubmissionHandler) UploadImage(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if max := h.service.MaxUploadBytes(); max > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file field required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	res, err := h.service.UploadMedia(c.Request.Context(), session, header.Filename, contentType, header.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
