package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/MKhiriev/sfcore/models"
	"golang.org/x/crypto/pbkdf2"
)

// keyLen is the length in bytes of each of pw, mk, ak.
const keyLen = 32

// ErrInvalidCost is returned when Credentials.Cost is zero.
var ErrInvalidCost = errors.New("crypto: invalid cost")

// KeySchedule is the immutable (pw, mk, ak) triple derived from
// Credentials. It contains no other state.
type KeySchedule struct {
	pw [keyLen]byte
	mk [keyLen]byte
	ak [keyLen]byte
}

// MK returns the master key, used to wrap/unwrap a per-item key.
func (k *KeySchedule) MK() []byte { return k.mk[:] }

// AK returns the authentication key, used to authenticate a per-item key
// wrapper.
func (k *KeySchedule) AK() []byte { return k.ak[:] }

// Password returns the hex-encoded server-facing password proof. This
// value — not the raw passphrase — is what a Sync Client sends to the
// server for registration and sign-in.
func (k *KeySchedule) Password() string {
	return hex.EncodeToString(k.pw[:])
}

// keyScheduler is the default implementation of [KeyScheduler].
type keyScheduler struct{}

// NewKeyScheduler constructs a [KeyScheduler].
func NewKeyScheduler() KeyScheduler {
	return &keyScheduler{}
}

// Derive implements [KeyScheduler]. It builds the KDF salt per §4.1,
// derives 96 bytes with PBKDF2-HMAC-SHA512 over exactly creds.Cost
// iterations, and splits the output into pw, mk, ak in that order with no
// byte reordering.
func (k *keyScheduler) Derive(creds models.Credentials) (*KeySchedule, error) {
	if creds.Cost == 0 {
		return nil, ErrInvalidCost
	}

	salt := kdfSalt(creds.Identifier, creds.Cost, creds.Nonce)

	derived := pbkdf2.Key([]byte(creds.Passphrase), []byte(salt), int(creds.Cost), 3*keyLen, sha512.New)

	ks := &KeySchedule{}
	copy(ks.pw[:], derived[0:keyLen])
	copy(ks.mk[:], derived[keyLen:2*keyLen])
	copy(ks.ak[:], derived[2*keyLen:3*keyLen])
	return ks, nil
}

// kdfSalt composes "<identifier>:SF:003:<cost>:<nonce>", takes its SHA-256
// digest, and returns the digest lowercase-hex-encoded. This string is the
// PBKDF2 salt (spec §4.1).
func kdfSalt(identifier string, cost uint32, nonce string) string {
	raw := fmt.Sprintf("%s:SF:%s:%d:%s", identifier, models.Scheme, cost, nonce)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
