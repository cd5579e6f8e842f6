package models

// Credentials are the caller-supplied parameters needed to reconstruct a
// Key Schedule. They are constructed by an external collaborator (a config
// file, an exported archive, or a remote-returned parameter block), consumed
// once, and never persisted by the core itself.
type Credentials struct {
	// Identifier is the stable user handle, typically an email address.
	Identifier string

	// Cost is the PBKDF2 iteration count. A zero value is invalid.
	Cost uint32

	// Nonce is a hex-encoded random value mixed into the KDF salt.
	Nonce string

	// Passphrase is the user's master passphrase. Never persisted, never
	// sent to the server — only the derived password proof is.
	Passphrase string
}

// AuthParams is the public (non-secret) half of a Credentials record: the
// scheme parameters the server needs in order to repeat the derivation, or
// that get written into an exported archive.
type AuthParams struct {
	Identifier string `json:"identifier"`
	PwCost     uint32 `json:"pw_cost"`
	PwNonce    string `json:"pw_nonce"`
	Version    string `json:"version"`
}

// Scheme is the fixed codec/KDF version tag this core implements.
const Scheme = "003"
