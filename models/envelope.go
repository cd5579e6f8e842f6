package models

import "time"

// Envelope is the on-disk and on-wire record for a single item: a
// versioned, authenticated ciphertext plus the metadata needed to place it
// in the item store and on the sync server.
//
// Invariants (spec §3): UUID is stable across the item's lifetime;
// CreatedAt never changes after initial issuance; UpdatedAt is
// monotonically nondecreasing per UUID from the owning client's view. If
// Deleted is true, Content and EncItemKey are absent on the server's next
// response — treat absence as "tombstone only".
type Envelope struct {
	UUID        string  `json:"uuid"`
	ContentType string  `json:"content_type"`
	Content     *string `json:"content"`
	EncItemKey  *string `json:"enc_item_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted distinguishes "absent field" from "explicitly false" on the
	// wire only at the JSON level; the store treats both as "not deleted"
	// on read, and always writes false (never omits the field) for a live
	// item (spec §9 open question).
	Deleted *bool `json:"deleted"`
}

// IsDeleted reports whether the envelope is a tombstone, treating an absent
// Deleted field the same as an explicit false.
func (e *Envelope) IsDeleted() bool {
	return e.Deleted != nil && *e.Deleted
}
