package models

import "encoding/json"

// School is an institution hosting studios.
type School struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Slug      *Slug  `json:"slug,omitempty"`
	SchoolURL string `json:"school_url,omitempty"`
}

// Demand is a thematic category studios respond to.
type Demand struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  *Slug  `json:"slug,omitempty"`
}

// Studio is an academic studio running projects.
type Studio struct {
	ID             string            `json:"_id"`
	Title          string            `json:"title"`
	Slug           *Slug             `json:"slug,omitempty"`
	PosterImage    *PosterImage      `json:"poster_image,omitempty"`
	PosterImageURL string            `json:"poster_image_url,omitempty"`
	StudioURL      string            `json:"studio_url,omitempty"`
	Institution    *School           `json:"institution,omitempty"`
	Demands        []Demand          `json:"demands,omitempty"`
	Instructors    []string          `json:"instructors,omitempty"`
	Term           string            `json:"term,omitempty"`
	Level          string            `json:"level,omitempty"`
	Description    []json.RawMessage `json:"description,omitempty"`
}

// Project is a published showcase project joined to its studio.
type Project struct {
	ID             string            `json:"_id"`
	Title          string            `json:"title"`
	Slug           *Slug             `json:"slug,omitempty"`
	PosterImage    *PosterImage      `json:"poster_image,omitempty"`
	PosterImageURL string            `json:"poster_image_url,omitempty"`
	AllTags        []string          `json:"allTags,omitempty"`
	AllStudents    []string          `json:"allStudents,omitempty"`
	Description    []json.RawMessage `json:"description,omitempty"`
	Media          []MediaItem       `json:"media,omitempty"`
	HomeStudio     *Studio           `json:"home_studio,omitempty"`
}

// StoredProject is the project document as persisted, with unresolved
// references. The catalog service dereferences it into a Project.
type StoredProject struct {
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Slug        *Slug             `json:"slug,omitempty"`
	PosterImage *PosterImage      `json:"poster_image,omitempty"`
	AllTags     []string          `json:"allTags,omitempty"`
	AllStudents []string          `json:"allStudents,omitempty"`
	Description []json.RawMessage `json:"description,omitempty"`
	Media       []MediaItem       `json:"media,omitempty"`
	HomeStudio  *Reference        `json:"home_studio,omitempty"`
}

// StoredStudio is the studio document as persisted, with unresolved
// institution and demand references.
type StoredStudio struct {
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Slug        *Slug             `json:"slug,omitempty"`
	PosterImage *PosterImage      `json:"poster_image,omitempty"`
	StudioURL   string            `json:"studio_url,omitempty"`
	Institution *Reference        `json:"institution,omitempty"`
	Demands     []Reference       `json:"demands,omitempty"`
	Instructors []string          `json:"instructors,omitempty"`
	Term        string            `json:"term,omitempty"`
	Level       string            `json:"level,omitempty"`
	Description []json.RawMessage `json:"description,omitempty"`
}

// TagOption is a deduplicated tag entry served by the filters endpoint.
type TagOption struct {
	ID    string `json:"_id"`
	Value string `json:"value"`
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// Filters is the payload of the public filters endpoint.
type Filters struct {
	Tags         []TagOption `json:"tags"`
	Institutions []School    `json:"institutions"`
	Demands      []Demand    `json:"demands"`
}
