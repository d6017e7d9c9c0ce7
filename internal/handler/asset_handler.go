package handler

import (
	"context"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/response"
	"github.com/superstudio/showcase-api/pkg/storage"
)

type assetFinder interface {
	FindByFilename(ctx context.Context, filename string) (*models.Asset, error)
}

// AssetHandler serves stored image files behind signed URLs.
type AssetHandler struct {
	store  *storage.LocalStorage
	images *storage.ImageURLBuilder
	assets assetFinder
}

// NewAssetHandler creates a new handler.
func NewAssetHandler(store *storage.LocalStorage, images *storage.ImageURLBuilder, assets assetFinder) *AssetHandler {
	return &AssetHandler{store: store, images: images, assets: assets}
}

// Serve godoc
// @Summary Serve an asset
// @Description Stream a stored image after validating the URL signature
// @Tags Assets
// @Produce octet-stream
// @Param filename path string true "Asset filename"
// @Success 200
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /assets/{filename} [get]
func (h *AssetHandler) Serve(c *gin.Context) {
	filename := path.Base(c.Param("filename"))
	if filename == "" || filename == "." || filename == "/" {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "asset not found"))
		return
	}

	if err := h.images.Verify(filename, c.Request.URL.Query()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid asset url"))
		return
	}

	// Only files with an upload record are servable. A valid signature on an
	// unknown filename still yields a 404.
	asset, err := h.assets.FindByFilename(c.Request.Context(), filename)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to look up asset"))
		return
	}
	if asset == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "asset not found"))
		return
	}

	file, err := h.store.Open(filename)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "asset not found"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "asset not found"))
		return
	}

	if asset.ContentType != "" {
		c.Header("Content-Type", asset.ContentType)
	}
	// Signed URLs expire, so the file itself can be cached aggressively.
	c.Header("Cache-Control", "public, max-age=86400")
	http.ServeContent(c.Writer, c.Request, filename, info.ModTime(), file)
}
