package domain

import "encoding/json"

// SearchResponse mirrors the subset of the Google Custom Search JSON API
// response that the web search adapter consumes.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

// SearchItem is one organic result. Pagemap is kept raw because its values
// are loosely typed (ratings show up as both strings and numbers).
type SearchItem struct {
	Title       string          `json:"title"`
	Link        string          `json:"link"`
	DisplayLink string          `json:"displayLink,omitempty"`
	Snippet     string          `json:"snippet"`
	HTMLSnippet string          `json:"htmlSnippet,omitempty"`
	Pagemap     json.RawMessage `json:"pagemap,omitempty"`
}

// SearchRequest is a single outbound web search
type SearchRequest struct {
	Query      string
	NumResults int
}
