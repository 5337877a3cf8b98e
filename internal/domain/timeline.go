package domain

import "time"

// TimelineEntry is a dated note on the site timeline. It is independent of
// the content-entity lifecycle: no tags, no status.
type TimelineEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}
