package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/sfcore/models"
)

const ivSize = 16

// sealWire encrypts plaintext with AES-256-CBC (PKCS#7 padded) under key,
// authenticates the result with HMAC-SHA256 under authKey, and renders the
// five-field wire string (spec §4.2.3). A fresh 16-byte iv is drawn from
// crypto/rand.Reader on every call; it is never reused across calls.
func sealWire(plaintext []byte, key, authKey [32]byte, uuid string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("envelope: generate iv: %w", err)
	}

	ciphertext, err := aesCBCEncrypt(key[:], iv, plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCipherFailure, err)
	}

	ivHex := hex.EncodeToString(iv)
	ctB64 := base64.StdEncoding.EncodeToString(ciphertext)

	signed := fmt.Sprintf("%s:%s:%s:%s", models.Scheme, uuid, ivHex, ctB64)
	authHex := hex.EncodeToString(hmacSHA256(authKey[:], []byte(signed)))

	return fmt.Sprintf("%s:%s:%s:%s:%s", models.Scheme, authHex, uuid, ivHex, ctB64), nil
}

// openWire is the inverse of sealWire. It verifies the scheme tag, the
// embedded uuid, and the HMAC — in that order, never proceeding to AES
// decryption on an authentication failure — then decrypts and returns the
// plaintext.
func openWire(wire string, key, authKey [32]byte, wantUUID string) ([]byte, error) {
	fields := strings.Split(wire, ":")
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: expected 5 fields, got %d", ErrDecodeFailure, len(fields))
	}
	scheme, authHex, uuid, ivHex, ctB64 := fields[0], fields[1], fields[2], fields[3], fields[4]

	if scheme != models.Scheme {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	if uuid != wantUUID {
		return nil, fmt.Errorf("%w: envelope uuid %q, ciphertext uuid %q", ErrUUIDMismatch, wantUUID, uuid)
	}

	signed := fmt.Sprintf("%s:%s:%s:%s", scheme, uuid, ivHex, ctB64)
	wantAuth := hmacSHA256(authKey[:], []byte(signed))
	gotAuth, err := hex.DecodeString(authHex)
	if err != nil {
		return nil, fmt.Errorf("%w: auth_hash: %v", ErrDecodeFailure, err)
	}
	if subtle.ConstantTimeCompare(wantAuth, gotAuth) != 1 {
		return nil, ErrAuthentication
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return nil, fmt.Errorf("%w: iv: %v", ErrDecodeFailure, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(ctB64)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrDecodeFailure, err)
	}

	plaintext, err := aesCBCDecrypt(key[:], iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCipherFailure, err)
	}
	return plaintext, nil
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

func aesCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("bad iv length %d", len(iv))
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

func aesCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("bad iv length %d", len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("ciphertext is not a multiple of the block size")
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	return pkcs7Unpad(padded, block.BlockSize())
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := make([]byte, padLen)
	for i := range padding {
		padding[i] = byte(padLen)
	}
	return append(append([]byte{}, data...), padding...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := len(data)
	if n == 0 || n%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", n)
	}
	padLen := int(data[n-1])
	if padLen == 0 || padLen > blockSize || padLen > n {
		return nil, fmt.Errorf("invalid padding length %d", padLen)
	}
	for _, b := range data[n-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("invalid padding bytes")
		}
	}
	return data[:n-padLen], nil
}
