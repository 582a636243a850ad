package feeds

import "time"

// Feed is a parsed podcast feed
type Feed struct {
	Title       string
	Description string
	Link        string
	Items       []Item
}

// Item is one entry of a live feed. It is never persisted.
type Item struct {
	GUID        string
	Title       string
	AuthorName  string
	AuthorEmail string
	Description string
	PubDate     *time.Time
	Link        string
	Enclosure   Enclosure
}

// Enclosure is the media attachment of an item
type Enclosure struct {
	URL    string
	Type   string
	Length int64
}

// Author returns the author's email, falling back to the display name
func (i Item) Author() string {
	if i.AuthorEmail != "" {
		return i.AuthorEmail
	}
	return i.AuthorName
}
