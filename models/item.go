package models

import "time"

// Content-type discriminants, as carried in Envelope.ContentType.
const (
	ContentTypeNote = "Note"
	ContentTypeTag  = "Tag"
)

// PlainItem is the tagged-variant interface implemented by Note and Tag.
// The variant is selected by the envelope's content_type string; any other
// value is an unknown type to be skipped rather than treated as an error.
type PlainItem interface {
	// GetUUID returns the item's stable identifier.
	GetUUID() string
	// ContentType returns the content_type string this variant round-trips
	// as when re-encrypted ("Note" or "Tag").
	ContentType() string
}

// Note is a title/text plain item.
type Note struct {
	UUID      string
	Title     string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Note) GetUUID() string     { return n.UUID }
func (n *Note) ContentType() string { return ContentTypeNote }

// Tag is a title plus an ordered list of referenced note uuids.
type Tag struct {
	UUID       string
	Title      string
	References []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *Tag) GetUUID() string     { return t.UUID }
func (t *Tag) ContentType() string { return ContentTypeTag }
