package envelope

import "errors"

// Sentinel errors produced by the codec. Callers branch with [errors.Is];
// a verification failure never falls through to a cipher-failure return
// (spec §7 "Crypto errors never fall through").
var (
	// ErrInvalidCredentials covers missing enc_item_key/content and
	// non-UTF8 plaintext after a successful decryption.
	ErrInvalidCredentials = errors.New("envelope: invalid credentials")

	// ErrUnsupportedScheme is returned when a ciphertext's leading version
	// field is not "003".
	ErrUnsupportedScheme = errors.New("envelope: unsupported scheme")

	// ErrUUIDMismatch is returned when a ciphertext's embedded uuid field
	// differs from the envelope uuid it is being decrypted against.
	ErrUUIDMismatch = errors.New("envelope: uuid mismatch")

	// ErrAuthentication is returned when the recomputed HMAC does not match
	// the ciphertext's auth_hash field. The envelope has been tampered with
	// or the keys are wrong.
	ErrAuthentication = errors.New("envelope: authentication failed")

	// ErrCipherFailure covers block-mode, padding, or iv-length failures
	// during AES decryption.
	ErrCipherFailure = errors.New("envelope: cipher failure")

	// ErrDecodeFailure is returned when base64 or hex decoding rejects its
	// input.
	ErrDecodeFailure = errors.New("envelope: decode failure")

	// ErrUnknownContentType is a soft error: content_type is neither "Note"
	// nor "Tag". Callers (the item store) skip such envelopes silently
	// rather than aborting a batch.
	ErrUnknownContentType = errors.New("envelope: unknown content type")

	// ErrTombstone is a soft error: the envelope is a deletion marker
	// (IsDeleted true) and carries no content to decrypt. Callers (the
	// item store) treat it as "remove this uuid locally", not a failure.
	ErrTombstone = errors.New("envelope: tombstone")
)
