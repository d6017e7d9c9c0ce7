package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Common display sizes used when resolving image references.
const (
	FitCrop = "crop"

	PosterWidth  = 400
	PosterHeight = 300
	MediaWidth   = 800
	MediaHeight  = 600
	StudioWidth  = 200
	StudioHeight = 150
)

// ImageURLBuilder resolves stored asset files into servable display URLs with
// requested dimensions, signing each URL so the asset handler can reject
// tampered or stale links. Resolved URLs are derived data and are never
// persisted.
type ImageURLBuilder struct {
	secret   []byte
	ttl      time.Duration
	basePath string
}

// NewImageURLBuilder constructs a builder with the provided secret and TTL.
func NewImageURLBuilder(secret string, ttl time.Duration) *ImageURLBuilder {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ImageURLBuilder{
		secret:   []byte(secret),
		ttl:      ttl,
		basePath: "/assets",
	}
}

// URL returns a signed display URL for the stored filename. An empty filename
// yields an empty URL so callers can skip absent image references.
func (b *ImageURLBuilder) URL(filename string, width, height int, fit string) string {
	if filename == "" {
		return ""
	}
	if fit == "" {
		fit = FitCrop
	}
	expires := time.Now().Add(b.ttl).Unix()
	sig := b.sign(filename, width, height, fit, expires)

	q := url.Values{}
	q.Set("w", strconv.Itoa(width))
	q.Set("h", strconv.Itoa(height))
	q.Set("fit", fit)
	q.Set("exp", strconv.FormatInt(expires, 10))
	q.Set("sig", sig)
	return fmt.Sprintf("%s/%s?%s", b.basePath, url.PathEscape(filename), q.Encode())
}

// Verify checks the signature and expiry carried in the query parameters of a
// display URL for the given filename.
func (b *ImageURLBuilder) Verify(filename string, q url.Values) error {
	width, _ := strconv.Atoi(q.Get("w"))
	height, _ := strconv.Atoi(q.Get("h"))
	fit := q.Get("fit")

	expires, err := strconv.ParseInt(q.Get("exp"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expiry")
	}
	if time.Now().After(time.Unix(expires, 0)) {
		return fmt.Errorf("url expired")
	}

	expected := b.sign(filename, width, height, fit, expires)
	if !hmac.Equal([]byte(expected), []byte(q.Get("sig"))) {
		return fmt.Errorf("invalid url signature")
	}
	return nil
}

func (b *ImageURLBuilder) sign(filename string, width, height int, fit string, expires int64) string {
	payload := fmt.Sprintf("%s|%d|%d|%s|%d", filename, width, height, fit, expires)
	mac := hmac.New(sha256.New, b.secret)
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
