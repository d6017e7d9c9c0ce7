package storage

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestImageURLBuilderRoundTrip(t *testing.T) {
	builder := NewImageURLBuilder("secret", time.Hour)
	raw := builder.URL("abc123.jpg", PosterWidth, PosterHeight, FitCrop)
	require.NotEmpty(t, raw)
	require.True(t, strings.HasPrefix(raw, "/assets/abc123.jpg?"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "400", parsed.Query().Get("w"))
	require.Equal(t, "300", parsed.Query().Get("h"))
	require.Equal(t, "crop", parsed.Query().Get("fit"))

	require.NoError(t, builder.Verify("abc123.jpg", parsed.Query()))
}

func TestImageURLBuilderEmptyFilename(t *testing.T) {
	builder := NewImageURLBuilder("secret", time.Hour)
	require.Empty(t, builder.URL("", MediaWidth, MediaHeight, FitCrop))
}

func TestImageURLBuilderTamperedQuery(t *testing.T) {
	builder := NewImageURLBuilder("secret", time.Hour)
	raw := builder.URL("abc123.jpg", MediaWidth, MediaHeight, FitCrop)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	q.Set("w", "9999")
	require.Error(t, builder.Verify("abc123.jpg", q))

	q = parsed.Query()
	require.Error(t, builder.Verify("other.jpg", q))
}

func TestImageURLBuilderExpired(t *testing.T) {
	builder := NewImageURLBuilder("secret", -time.Minute)
	raw := builder.URL("abc123.jpg", MediaWidth, MediaHeight, FitCrop)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Error(t, builder.Verify("abc123.jpg", parsed.Query()))
}

func TestImageURLBuilderWrongSecret(t *testing.T) {
	builder := NewImageURLBuilder("secret", time.Hour)
	other := NewImageURLBuilder("different", time.Hour)
	raw := builder.URL("abc123.jpg", MediaWidth, MediaHeight, FitCrop)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Error(t, other.Verify("abc123.jpg", parsed.Query()))
}
