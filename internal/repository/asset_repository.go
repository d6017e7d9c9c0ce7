package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/superstudio/showcase-api/internal/models"
)

// AssetRepository stores metadata for uploaded media files.
type AssetRepository struct {
	db *sqlx.DB
}

// NewAssetRepository creates a new instance of AssetRepository.
func NewAssetRepository(db *sqlx.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts an asset record, assigning an id when absent.
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	if asset.ID == "" {
		asset.ID = "image-" + uuid.NewString()
	}
	const query = `INSERT INTO assets (id, filename, original_name, content_type, size_bytes, submission_id, created_at) VALUES (:id, :filename, :original_name, :content_type, :size_bytes, :submission_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":            asset.ID,
		"filename":      asset.Filename,
		"original_name": asset.OriginalName,
		"content_type":  asset.ContentType,
		"size_bytes":    asset.SizeBytes,
		"submission_id": asset.SubmissionID,
		"created_at":    time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

// FindByFilename returns an asset by stored filename, or nil when absent.
func (r *AssetRepository) FindByFilename(ctx context.Context, filename string) (*models.Asset, error) {
	const query = `SELECT id, filename, original_name, content_type, size_bytes, submission_id FROM assets WHERE filename = $1 LIMIT 1`
	var asset models.Asset
	if err := r.db.GetContext(ctx, &asset, query, filename); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find asset by filename: %w", err)
	}
	return &asset, nil
}
