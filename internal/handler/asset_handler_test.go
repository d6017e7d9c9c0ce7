package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superstudio/showcase-api/internal/models"
	"github.com/superstudio/showcase-api/pkg/storage"
)

type assetFinderStub struct {
	assets map[string]*models.Asset
	err    error
}

func (s *assetFinderStub) FindByFilename(ctx context.Context, filename string) (*models.Asset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assets[filename], nil
}

func newAssetRouter(t *testing.T, finder *assetFinderStub) (*gin.Engine, *storage.ImageURLBuilder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	images := storage.NewImageURLBuilder("url-secret", time.Minute)

	r := gin.New()
	r.GET("/assets/:filename", NewAssetHandler(store, images, finder).Serve)
	return r, images, dir
}

func TestAssetHandlerServeSignedURL(t *testing.T) {
	finder := &assetFinderStub{assets: map[string]*models.Asset{
		"abc.png": {ID: "image-abc-png", Filename: "abc.png", ContentType: "image/png"},
	}}
	r, images, dir := newAssetRouter(t, finder)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.png"), []byte("fake png"), 0o644))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, images.URL("abc.png", 400, 300, storage.FitCrop), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fake png", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestAssetHandlerRejectsUnsignedRequest(t *testing.T) {
	finder := &assetFinderStub{assets: map[string]*models.Asset{
		"abc.png": {ID: "image-abc-png", Filename: "abc.png"},
	}}
	r, _, dir := newAssetRouter(t, finder)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.png"), []byte("fake png"), 0o644))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/assets/abc.png", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssetHandlerUnknownAsset(t *testing.T) {
	// A valid signature is not enough; files without an upload record are
	// not served.
	r, images, dir := newAssetRouter(t, &assetFinderStub{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ghost.png"), []byte("fake png"), 0o644))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, images.URL("ghost.png", 400, 300, storage.FitCrop), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssetHandlerMissingFile(t *testing.T) {
	finder := &assetFinderStub{assets: map[string]*models.Asset{
		"nope.png": {ID: "image-nope-png", Filename: "nope.png"},
	}}
	r, images, _ := newAssetRouter(t, finder)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, images.URL("nope.png", 400, 300, storage.FitCrop), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
