package service

import (
	"encoding/json"

	"github.com/superstudio/showcase-api/internal/models"
)

// The normalizers reshape client-submitted payloads into their canonical
// persisted form. They are deliberately tolerant: malformed input yields nil
// (the field is omitted from the patch) rather than an error, so partial or
// garbled client state cannot wedge a save. Derived display URLs are stripped
// before anything is persisted.

// NormalizePosterImage accepts a well-formed asset reference and returns its
// persisted shape, or nil for malformed input.
func NormalizePosterImage(raw json.RawMessage) *models.PosterImage {
	if len(raw) == 0 {
		return nil
	}

	var in models.PosterImage
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil
	}
	if in.Asset.Ref == "" {
		return nil
	}

	return &models.PosterImage{
		Type:  models.TypeImage,
		Asset: models.Reference{Ref: in.Asset.Ref},
		Alt:   in.Alt,
	}
}

// NormalizeMedia maps each entry to its canonical variant. An image entry
// needs an asset reference and a video entry a non-empty URL; anything else
// is dropped, and the list is truncated to the media ceiling.
func NormalizeMedia(raw []json.RawMessage) []models.MediaItem {
	items := make([]models.MediaItem, 0, len(raw))
	for _, entry := range raw {
		var in models.MediaItem
		if err := json.Unmarshal(entry, &in); err != nil {
			continue
		}

		switch {
		case in.Asset != nil && in.Asset.Ref != "":
			items = append(items, models.MediaItem{
				Type:    models.TypeImage,
				Key:     in.Key,
				Asset:   &models.Reference{Ref: in.Asset.Ref},
				Alt:     in.Alt,
				Caption: in.Caption,
			})
		case in.VideoURL != "":
			items = append(items, models.MediaItem{
				Type:     models.TypeVideo,
				Key:      in.Key,
				VideoURL: in.VideoURL,
				Caption:  in.Caption,
			})
		}

		if len(items) == models.MaxMediaItems {
			break
		}
	}
	return items
}

// NormalizeDescription accepts only a sequence of block nodes and returns it
// unchanged, or nil when the input is not a sequence at all. Block internals
// pass through opaquely; their validity is the store schema's concern.
func NormalizeDescription(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}
	return blocks
}
