package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superstudio/showcase-api/internal/models"
)

func TestNormalizePosterImage(t *testing.T) {
	poster := NormalizePosterImage(json.RawMessage(`{
		"_type": "image",
		"asset": {"_ref": "image-deadbeef-jpg"},
		"alt": "Site model",
		"url": "https://example.com/leaked.jpg"
	}`))
	require.NotNil(t, poster)
	assert.Equal(t, models.TypeImage, poster.Type)
	assert.Equal(t, "image-deadbeef-jpg", poster.Asset.Ref)
	assert.Equal(t, "Site model", poster.Alt)
	assert.Empty(t, poster.URL)
}

func TestNormalizePosterImageMalformed(t *testing.T) {
	assert.Nil(t, NormalizePosterImage(nil))
	assert.Nil(t, NormalizePosterImage(json.RawMessage(`"just a string"`)))
	assert.Nil(t, NormalizePosterImage(json.RawMessage(`{"_type": "image"}`)))
	assert.Nil(t, NormalizePosterImage(json.RawMessage(`{"asset": {"_ref": ""}}`)))
}

func TestNormalizeMediaVariants(t *testing.T) {
	items := NormalizeMedia([]json.RawMessage{
		json.RawMessage(`{"_key": "a", "asset": {"_ref": "image-cafe-png"}, "alt": "Plan", "caption": "Ground floor"}`),
		json.RawMessage(`{"_key": "b", "_type": "video", "video_url": "https://vimeo.com/123", "caption": "Walkthrough"}`),
		json.RawMessage(`{"_key": "c", "caption": "neither variant"}`),
		json.RawMessage(`{"_key": "d", "_type": "video", "caption": "no url"}`),
		json.RawMessage(`not even json`),
	})

	require.Len(t, items, 2)
	assert.Equal(t, models.TypeImage, items[0].Type)
	assert.Equal(t, "image-cafe-png", items[0].Asset.Ref)
	assert.Equal(t, "Ground floor", items[0].Caption)
	assert.Equal(t, models.TypeVideo, items[1].Type)
	assert.Equal(t, "https://vimeo.com/123", items[1].VideoURL)
	assert.Nil(t, items[1].Asset)
}

func TestNormalizeMediaTruncates(t *testing.T) {
	var raw []json.RawMessage
	for i := 0; i < models.MaxMediaItems+5; i++ {
		raw = append(raw, json.RawMessage(fmt.Sprintf(`{"_key": "k%d", "video_url": "https://example.com/%d"}`, i, i)))
	}

	items := NormalizeMedia(raw)
	assert.Len(t, items, models.MaxMediaItems)
	assert.Equal(t, "k0", items[0].Key)
}

func TestNormalizeDescription(t *testing.T) {
	blocks := NormalizeDescription(json.RawMessage(`[{"_type": "block", "children": []}, {"_type": "block"}]`))
	assert.Len(t, blocks, 2)

	assert.Nil(t, NormalizeDescription(json.RawMessage(`{"_type": "block"}`)))
	assert.Nil(t, NormalizeDescription(nil))
}
