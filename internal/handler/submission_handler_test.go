package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superstudio/showcase-api/internal/middleware"
	"github.com/superstudio/showcase-api/internal/models"
)

type submissionServiceMock struct {
	doc         *models.Submission
	getErr      error
	updateErr   error
	upload      *models.UploadResponse
	uploadErr   error
	lastPayload map[string]json.RawMessage
	lastName    string
	lastType    string
	lastSession *models.Session
}

func (m *submissionServiceMock) GetOwn(ctx context.Context, session *models.Session) (*models.Submission, error) {
	m.lastSession = session
	return m.doc, m.getErr
}

func (m *submissionServiceMock) UpdateOwn(ctx context.Context, session *models.Session, payload map[string]json.RawMessage) (*models.Submission, error) {
	m.lastSession = session
	m.lastPayload = payload
	return m.doc, m.updateErr
}

func (m *submissionServiceMock) UploadMedia(ctx context.Context, session *models.Session, originalName, contentType string, size int64, r io.Reader) (*models.UploadResponse, error) {
	m.lastSession = session
	m.lastName = originalName
	m.lastType = contentType
	return m.upload, m.uploadErr
}

func (m *submissionServiceMock) MaxUploadBytes() int64 {
	return 1 << 20
}

func testContext(t *testing.T, method, path string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestSubmissionHandlerGetOwnWithoutSession(t *testing.T) {
	handler := NewSubmissionHandler(&submissionServiceMock{})

	c, w := testContext(t, http.MethodGet, "/submissions/me", nil)
	handler.GetOwn(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmissionHandlerGetOwn(t *testing.T) {
	mockSvc := &submissionServiceMock{doc: &models.Submission{ID: "submission-1", Title: "Tidal Futures"}}
	handler := NewSubmissionHandler(mockSvc)

	c, w := testContext(t, http.MethodGet, "/submissions/me", nil)
	c.Set(middleware.ContextSessionKey, &models.Session{Email: "student@example.com", SubmissionID: "submission-1"})
	handler.GetOwn(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.lastSession)
	assert.Equal(t, "submission-1", mockSvc.lastSession.SubmissionID)

	var body models.Submission
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Tidal Futures", body.Title)
}

func TestSubmissionHandlerUpdateOwnPartialPayload(t *testing.T) {
	mockSvc := &submissionServiceMock{doc: &models.Submission{ID: "submission-1"}}
	handler := NewSubmissionHandler(mockSvc)

	c, w := testContext(t, http.MethodPut, "/submissions/me", bytes.NewBufferString(`{"title": "New", "allTags": null}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextSessionKey, &models.Session{SubmissionID: "submission-1"})
	handler.UpdateOwn(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, mockSvc.lastPayload, "title")
	require.Contains(t, mockSvc.lastPayload, "allTags")
	assert.NotContains(t, mockSvc.lastPayload, "media")
}

func TestSubmissionHandlerUpdateOwnMalformedBody(t *testing.T) {
	handler := NewSubmissionHandler(&submissionServiceMock{})

	c, w := testContext(t, http.MethodPut, "/submissions/me", bytes.NewBufferString(`{"title":`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextSessionKey, &models.Session{SubmissionID: "submission-1"})
	handler.UpdateOwn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmissionHandlerUploadImage(t *testing.T) {
	mockSvc := &submissionServiceMock{
		upload: &models.UploadResponse{AssetID: "image-abc-png", URL: "/assets/abc.png"},
	}
	handler := NewSubmissionHandler(mockSvc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "poster.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, w := testContext(t, http.MethodPost, "/submissions/upload-image", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Set(middleware.ContextSessionKey, &models.Session{SubmissionID: "submission-1"})
	handler.UploadImage(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "poster.png", mockSvc.lastName)

	var body models.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "image-abc-png", body.AssetID)
}

func TestSubmissionHandlerUploadImageMissingFile(t *testing.T) {
	handler := NewSubmissionHandler(&submissionServiceMock{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	c, w := testContext(t, http.MethodPost, "/submissions/upload-image", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Set(middleware.ContextSessionKey, &models.Session{SubmissionID: "submission-1"})
	handler.UploadImage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
