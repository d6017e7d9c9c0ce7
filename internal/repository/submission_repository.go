package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
)

// NormalizeEmail trims whitespace and lower-cases an email before it is used
// as an identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SubmissionIDForEmail derives the deterministic document id for an email.
// Identical normalized emails always map to the same id, which is the sole
// mechanism preventing duplicate documents per submitter.
func SubmissionIDForEmail(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return "submission-" + hex.EncodeToString(sum[:])[:32]
}

// SubmissionRepository stores submission documents as JSONB rows keyed by
// the email-derived id.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Ensure creates the submission document for the email if it does not exist
// and returns its id. The insert is create-if-absent, so concurrent calls for
// the same email converge to one document.
func (r *SubmissionRepository) Ensure(ctx context.Context, email string) (string, error) {
	normalized := NormalizeEmail(email)
	id := SubmissionIDForEmail(normalized)

	doc := models.Submission{
		ID:          id,
		Type:        models.TypeStudentSubmission,
		SubmittedBy: normalized,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal submission %s: %w", id, err)
	}

	now := time.Now().UTC()
	const query = `INSERT INTO submissions (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $3) ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, id, payload, now); err != nil {
		return "", fmt.Errorf("ensure submission %s: %w", id, err)
	}

	return id, nil
}

// Get fetches the full document, or nil if it does not exist (not an error).
func (r *SubmissionRepository) Get(ctx context.Context, id string) (*models.Submission, error) {
	const query = `SELECT doc FROM submissions WHERE id = $1 LIMIT 1`
	var raw []byte
	if err := r.db.GetContext(ctx, &raw, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get submission %s: %w", id, err)
	}

	var doc models.Submission
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode submission %s: %w", id, err)
	}
	return &doc, nil
}

// Patch merges the supplied fields into the stored document and returns the
// updated document. Fields absent from the patch are left untouched. Writes
// are last-write-wins; the single-owner-per-document model keeps contention
// negligible.
func (r *SubmissionRepository) Patch(ctx context.Context, id string, patch models.SubmissionPatch) (*models.Submission, error) {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}

	applyPatch(doc, patch)

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal submission %s: %w", id, err)
	}

	const query = `UPDATE submissions SET doc = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, payload, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("patch submission %s: %w", id, err)
	}

	return doc, nil
}

func applyPatch(doc *models.Submission, patch models.SubmissionPatch) {
	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.ClearSlug {
		doc.Slug = nil
	} else if patch.Slug != nil {
		doc.Slug = patch.Slug
	}
	if patch.ClearPoster {
		doc.PosterImage = nil
	} else if patch.PosterImage != nil {
		doc.PosterImage = patch.PosterImage
	}
	if patch.AllTags != nil {
		doc.AllTags = *patch.AllTags
	}
	if patch.AllStudents != nil {
		doc.AllStudents = *patch.AllStudents
	}
	if patch.ClearStudio {
		doc.HomeStudio = nil
	} else if patch.HomeStudio != nil {
		doc.HomeStudio = patch.HomeStudio
	}
	if patch.Description != nil {
		doc.Description = *patch.Description
	}
	if patch.Media != nil {
		media := *patch.Media
		// Schema-level cardinality: the store never holds more than the cap
		// even if a caller bypasses normalization.
		if len(media) > models.MaxMediaItems {
			media = media[:models.MaxMediaItems]
		}
		doc.Media = media
	}
}
