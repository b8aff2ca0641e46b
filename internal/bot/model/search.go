package model

// SearchHit is one found picture, normalized across both search backends.
// Hits are rendered into a reply and discarded.
type SearchHit struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	SourceURL string `json:"source_url,omitempty"`
}
