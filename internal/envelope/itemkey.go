package envelope

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const itemKeySize = 64 // 32-byte item_ek || 32-byte item_ak

// itemKey is the decoded plaintext of an outer (enc_item_key) layer: a
// random 64-byte value split into a 32-byte content encryption key and a
// 32-byte content authentication key.
type itemKey struct {
	ek [32]byte
	ak [32]byte
}

// generateItemKey draws a fresh 64-byte item key from crypto/rand.Reader.
func generateItemKey() (itemKey, error) {
	var raw [itemKeySize]byte
	if _, err := io.ReadFull(rand.Reader, raw[:]); err != nil {
		return itemKey{}, fmt.Errorf("envelope: generate item key: %w", err)
	}
	var ik itemKey
	copy(ik.ek[:], raw[:32])
	copy(ik.ak[:], raw[32:])
	return ik, nil
}

// wrapItemKey seals the item key's lowercase-hex rendering with (mk, ak)
// and returns the resulting wire string for an envelope's enc_item_key
// field (spec §4.2.1).
func wrapItemKey(ik itemKey, mk, ak [32]byte, uuid string) (string, error) {
	plaintext := []byte(hex.EncodeToString(append(append([]byte{}, ik.ek[:]...), ik.ak[:]...)))
	return sealWire(plaintext, mk, ak, uuid)
}

// unwrapItemKey is the inverse of wrapItemKey.
func unwrapItemKey(wire string, mk, ak [32]byte, uuid string) (itemKey, error) {
	plaintext, err := openWire(wire, mk, ak, uuid)
	if err != nil {
		return itemKey{}, err
	}

	raw, err := hex.DecodeString(string(plaintext))
	if err != nil {
		return itemKey{}, fmt.Errorf("%w: item key: %v", ErrDecodeFailure, err)
	}
	if len(raw) != itemKeySize {
		return itemKey{}, fmt.Errorf("%w: item key length %d", ErrInvalidCredentials, len(raw))
	}

	var ik itemKey
	copy(ik.ek[:], raw[:32])
	copy(ik.ak[:], raw[32:])
	return ik, nil
}
