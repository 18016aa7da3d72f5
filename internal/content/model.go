// Package content implements the uniform persistence contract shared by
// every publishable entity kind (blogs, products, webinars, ...). A single
// repository implementation is parameterized by an entity Schema instead
// of duplicating the CRUD module per kind.
package content

import "time"

// Status is the publishing state of an item. Most kinds use
// draft/published/archived; webinars use upcoming/completed/archived.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

// Dimensions is the composite physical-size field carried by products.
// A missing or malformed stored value reads back as the zero struct.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Weight float64 `json:"weight"`
}

// IsZero reports whether no dimension has been set.
func (d Dimensions) IsZero() bool {
	return d == Dimensions{}
}

// Item is a content row of any kind. Tags and Gallery are always non-nil
// slices at this boundary; the serialized column form never leaks out.
// Counter is the kind's single exposed counter (views, download_count,
// registered_participants or helpful_votes, per the schema).
type Item struct {
	ID          int64
	Title       string
	Slug        string
	Summary     string
	Body        string
	Status      Status
	Tags        []string
	Gallery     []string
	Dimensions  Dimensions
	Featured    bool
	ScheduledAt *time.Time
	Counter     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
