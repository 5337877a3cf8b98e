// Package domain contains the core content entities for the NyeWeb backend.
package domain

import "time"

// Article is a markdown article mirrored to the static roots.
// The database row is the source of truth; the on-disk markdown file is a
// derived, best-effort projection.
type Article struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Category string    `json:"category,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Date     time.Time `json:"date"` // date precision only; zero means unset
	Status   Status    `json:"status"`
	Tags     []string  `json:"tags"`
}

// Project is a portfolio project, mirrored like an article but without
// a category (all project files live under articles/projects).
type Project struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Slug    string    `json:"slug"`
	Summary string    `json:"summary,omitempty"`
	Date    time.Time `json:"date"`
	Status  Status    `json:"status"`
	Tags    []string  `json:"tags"`
}
