package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/storage"
)

type submissionRepository interface {
	Get(ctx context.Context, id string) (*models.Submission, error)
	Patch(ctx context.Context, id string, patch models.SubmissionPatch) (*models.Submission, error)
}

type assetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
}

type assetStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

// SubmissionService serves the authenticated read/write/upload operations.
// Every operation is scoped to the submission id embedded in the verified
// session; no client-supplied identifier is ever honored.
type SubmissionService struct {
	repo    submissionRepository
	assets  assetRepository
	store   assetStorage
	images  *storage.ImageURLBuilder
	logger  *zap.Logger
	maxSize int64
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(repo submissionRepository, assets assetRepository, store assetStorage, images *storage.ImageURLBuilder, logger *zap.Logger, maxSize int64) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, assets: assets, store: store, images: images, logger: logger, maxSize: maxSize}
}

// MaxUploadBytes reports the configured upload ceiling.
func (s *SubmissionService) MaxUploadBytes() int64 {
	return s.maxSize
}

// GetOwn returns the caller's submission with derived image URLs attached.
func (s *SubmissionService) GetOwn(ctx context.Context, session *models.Session) (*models.Submission, error) {
	doc, err := s.repo.Get(ctx, session.SubmissionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load submission")
	}
	if doc == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}
	return s.Decorate(doc), nil
}

// UpdateOwn validates and merges the supplied fields into the caller's
// submission. Only fields present in the payload are touched: an explicit
// null clears a field, a value sets it, absence is a no-op.
func (s *SubmissionService) UpdateOwn(ctx context.Context, session *models.Session, payload map[string]json.RawMessage) (*models.Submission, error) {
	patch, err := buildPatch(payload)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.Patch(ctx, session.SubmissionID, patch)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to update submission")
	}
	return s.Decorate(doc), nil
}

// UploadMedia stores an uploaded image and returns its asset reference plus
// a resolved display URL.
func (s *SubmissionService) UploadMedia(ctx context.Context, session *models.Session, originalName, contentType string, size int64, r io.Reader) (*models.UploadResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only image uploads are supported")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload size limit")
	}

	ref, filename := storage.NewAssetRef(uploadExtension(originalName, contentType))
	if _, err := s.store.SaveStream(filename, r); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to store upload")
	}

	asset := &models.Asset{
		ID:           ref,
		Filename:     filename,
		OriginalName: originalName,
		ContentType:  contentType,
		SizeBytes:    size,
		SubmissionID: session.SubmissionID,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		// A file without a record is unservable; drop it instead of leaving
		// it orphaned on disk.
		if derr := s.store.Delete(filename); derr != nil {
			s.logger.Warn("failed to remove orphaned upload",
				zap.String("filename", filename),
				zap.Error(derr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to record upload")
	}

	return &models.UploadResponse{
		AssetID: ref,
		Image: models.PosterImage{
			Type:  models.TypeImage,
			Asset: models.Reference{Ref: ref},
		},
		URL: s.images.URL(filename, storage.MediaWidth, storage.MediaHeight, storage.FitCrop),
	}, nil
}

// Decorate attaches resolved display URLs to a submission's image
// references. The URLs are derived data and are never persisted.
func (s *SubmissionService) Decorate(doc *models.Submission) *models.Submission {
	if doc == nil || s.images == nil {
		return doc
	}

	if doc.PosterImage != nil && doc.PosterImage.Asset.Ref != "" {
		doc.PosterImageURL = s.images.URL(storage.FilenameForRef(doc.PosterImage.Asset.Ref), storage.PosterWidth, storage.PosterHeight, storage.FitCrop)
	}
	for i := range doc.Media {
		item := &doc.Media[i]
		if item.Type == models.TypeImage && item.Asset != nil && item.Asset.Ref != "" {
			item.URL = s.images.URL(storage.FilenameForRef(item.Asset.Ref), storage.MediaWidth, storage.MediaHeight, storage.FitCrop)
		}
	}
	return doc
}

func buildPatch(payload map[string]json.RawMessage) (models.SubmissionPatch, error) {
	var patch models.SubmissionPatch

	if raw, ok := payload["title"]; ok {
		if isNull(raw) {
			empty := ""
			patch.Title = &empty
		} else {
			var title string
			if err := json.Unmarshal(raw, &title); err != nil {
				return patch, appErrors.Clone(appErrors.ErrValidation, "title must be a string")
			}
			patch.Title = &title
		}
	}

	if raw, ok := payload["slug"]; ok {
		switch {
		case isNull(raw):
			patch.ClearSlug = true
		default:
			slug, err := decodeSlug(raw)
			if err != nil {
				return patch, appErrors.Clone(appErrors.ErrValidation, "slug must be a string or an object with a current value")
			}
			patch.Slug = slug
		}
	}

	if raw, ok := payload["poster_image"]; ok {
		if isNull(raw) {
			patch.ClearPoster = true
		} else if poster := NormalizePosterImage(raw); poster != nil {
			patch.PosterImage = poster
		}
	}

	if raw, ok := payload["allTags"]; ok {
		tags, err := decodeStringList(raw)
		if err != nil {
			return patch, appErrors.Clone(appErrors.ErrValidation, "allTags must be an array of strings")
		}
		patch.AllTags = &tags
	}

	if raw, ok := payload["allStudents"]; ok {
		students, err := decodeStringList(raw)
		if err != nil {
			return patch, appErrors.Clone(appErrors.ErrValidation, "allStudents must be an array of strings")
		}
		patch.AllStudents = &students
	}

	if raw, ok := payload["home_studio"]; ok {
		if isNull(raw) {
			patch.ClearStudio = true
		} else if ref := decodeReference(raw); ref != nil {
			patch.HomeStudio = ref
		}
	}

	if raw, ok := payload["description"]; ok {
		if isNull(raw) {
			var empty []json.RawMessage
			patch.Description = &empty
		} else if blocks := NormalizeDescription(raw); blocks != nil {
			patch.Description = &blocks
		}
	}

	if raw, ok := payload["media"]; ok {
		if isNull(raw) {
			var empty []models.MediaItem
			patch.Media = &empty
		} else {
			var entries []json.RawMessage
			if err := json.Unmarshal(raw, &entries); err == nil {
				items := NormalizeMedia(entries)
				patch.Media = &items
			}
		}
	}

	return patch, nil
}

func decodeSlug(raw json.RawMessage) (*models.Slug, error) {
	var current string
	if err := json.Unmarshal(raw, &current); err == nil {
		return &models.Slug{Current: current}, nil
	}
	var slug models.Slug
	if err := json.Unmarshal(raw, &slug); err != nil {
		return nil, err
	}
	return &slug, nil
}

func decodeStringList(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func decodeReference(raw json.RawMessage) *models.Reference {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil && id != "" {
		return &models.Reference{Ref: id}
	}
	var ref models.Reference
	if err := json.Unmarshal(raw, &ref); err == nil && ref.Ref != "" {
		return &ref
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func uploadExtension(originalName, contentType string) string {
	if ext := strings.TrimPrefix(filepath.Ext(originalName), "."); ext != "" {
		return strings.ToLower(ext)
	}
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}
	return "img"
}
