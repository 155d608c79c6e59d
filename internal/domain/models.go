package domain

import "context"

// Target represents a feed to pull posts from
type Target struct {
	Submolt  string
	MinKarma int
}

// Post is a feed item as returned by a collector
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Submolt   string `json:"submolt"`
	Author    string `json:"author"`
	URL       string `json:"url,omitempty"`
	Karma     int    `json:"karma"`
	CreatedAt int64  `json:"created_at"`
}

// Attributes extracts the fields the classifier looks at.
func (p Post) Attributes() PostAttributes {
	return PostAttributes{Karma: p.Karma, Title: p.Title, Content: p.Content}
}

// PostAttributes is what the classifier sees of a single post.
type PostAttributes struct {
	Karma   int
	Title   string
	Content string
}

// Verdict is the stored outcome for one classified post
type Verdict struct {
	Post    Post     `json:"post"`
	Hidden  bool     `json:"hidden"`
	Reasons []Reason `json:"reasons,omitempty"`
}

// Collector defines the interface for data fetching
type Collector interface {
	FetchPosts(ctx context.Context, target Target, limit int) ([]Post, error)
}
