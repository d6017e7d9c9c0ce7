package models

import "encoding/json"

// Document types stored in the content store.
const (
	TypeStudentSubmission = "studentSubmission"
	TypeImage             = "image"
	TypeVideo             = "video"
)

// MaxMediaItems caps the media list per submission.
const MaxMediaItems = 10

// Reference points at another stored document or asset.
type Reference struct {
	Ref string `json:"_ref,omitempty"`
}

// Slug holds a URL-safe identifier derived from the title.
type Slug struct {
	Current string `json:"current,omitempty"`
}

// PosterImage is the submission's cover image reference with alt text. The
// URL field is derived at read time and never persisted.
type PosterImage struct {
	Type  string    `json:"_type,omitempty"`
	Asset Reference `json:"asset"`
	Alt   string    `json:"alt,omitempty"`
	URL   string    `json:"url,omitempty"`
}

// MediaItem is the tagged media variant: an image (asset reference with
// optional alt and caption) or a video (URL with optional caption). The URL
// field on images is derived at read time and never persisted.
type MediaItem struct {
	Type     string     `json:"_type"`
	Key      string     `json:"_key,omitempty"`
	Asset    *Reference `json:"asset,omitempty"`
	Alt      string     `json:"alt,omitempty"`
	Caption  string     `json:"caption,omitempty"`
	VideoURL string     `json:"video_url,omitempty"`
	URL      string     `json:"url,omitempty"`
}

// Submission is the per-submitter editable document. Description blocks are
// carried opaquely: the subsystem checks only that the field is a sequence
// and leaves block internals to the store schema.
type Submission struct {
	ID             string            `json:"_id"`
	Type           string            `json:"_type"`
	SubmittedBy    string            `json:"submittedBy"`
	Title          string            `json:"title,omitempty"`
	Slug           *Slug             `json:"slug,omitempty"`
	PosterImage    *PosterImage      `json:"poster_image,omitempty"`
	PosterImageURL string            `json:"poster_image_url,omitempty"`
	AllTags        []string          `json:"allTags,omitempty"`
	AllStudents    []string          `json:"allStudents,omitempty"`
	HomeStudio     *Reference        `json:"home_studio,omitempty"`
	Description    []json.RawMessage `json:"description,omitempty"`
	Media          []MediaItem       `json:"media,omitempty"`
}

// SubmissionPatch carries the validated, normalised fields of a partial
// update. A nil pointer means the field was absent from the request and must
// not be touched. Clear flags distinguish an explicit null (clear the field)
// from absence for the struct-valued fields; for strings and slices a pointer
// to the zero value means clear.
type SubmissionPatch struct {
	Title        *string
	Slug         *Slug
	ClearSlug    bool
	PosterImage  *PosterImage
	ClearPoster  bool
	AllTags      *[]string
	AllStudents  *[]string
	HomeStudio   *Reference
	ClearStudio  bool
	Description  *[]json.RawMessage
	Media        *[]MediaItem
}

// Asset records an uploaded media file.
type Asset struct {
	ID           string `db:"id" json:"_id"`
	Filename     string `db:"filename" json:"filename"`
	OriginalName string `db:"original_name" json:"originalName"`
	ContentType  string `db:"content_type" json:"contentType"`
	SizeBytes    int64  `db:"size_bytes" json:"size"`
	SubmissionID string `db:"submission_id" json:"-"`
}
