package store

import "errors"

// Sentinel errors returned by a Store. Callers branch with [errors.Is].
var (
	// ErrCorruption is returned by Open when a bucket file's name does not
	// match the uuid field of the Envelope it contains.
	ErrCorruption = errors.New("store: corrupted bucket entry")

	// ErrNoCurrentItem is returned by SetTitle/SetText/GetTitle/GetText when
	// no uuid has been selected via SetCurrentUUID.
	ErrNoCurrentItem = errors.New("store: no current item selected")

	// ErrItemNotFound is returned by SetCurrentUUID when the uuid is not a
	// key of the items map, and by SetTitle/SetText/GetTitle/GetText when
	// the current uuid is no longer in it. Delete of an absent uuid is not
	// an error.
	ErrItemNotFound = errors.New("store: item not found")

	// ErrNotANote is a precondition violation: SetTitle/SetText were called
	// while the current item is a Tag.
	ErrNotANote = errors.New("store: current item is not a note")
)
