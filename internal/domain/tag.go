package domain

// Tag is a shared label attached to content entities through per-entity
// junction tables. Names are case-sensitive and trimmed; tags are created
// lazily on first use and never deleted, so orphaned tags may persist.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagCounts pairs the ordered list of tag names with how many entities of
// one kind carry each tag.
type TagCounts struct {
	Tags   []string       `json:"tags"`
	Counts map[string]int `json:"counts"`
}
