package domain

// Book is an uploaded PDF book with a cover image.
type Book struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Cover       string   `json:"cover,omitempty"`    // cover image path, e.g. "/avatar.jpg"
	Filename    string   `json:"filename,omitempty"` // PDF filename under resources/book
	Status      Status   `json:"status"`
	Tags        []string `json:"tags"`
}

// Figure is a standalone image with a description.
type Figure struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Filename    string   `json:"filename,omitempty"`
	Status      Status   `json:"status"`
	Tags        []string `json:"tags"`
}

// Tool is an external link with a description.
type Tool struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	Status      Status   `json:"status"`
	Tags        []string `json:"tags"`
}

// FavoriteImage is a bare filename reference; it carries no tags or status.
type FavoriteImage struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
}
