package envelope

import (
	"fmt"
	"time"

	"github.com/MKhiriev/sfcore/internal/crypto"
	"github.com/MKhiriev/sfcore/models"
)

//go:generate mockgen -source=codec.go -destination=../mock/codec_mock.go -package=mock

// Codec encrypts Plain Items into Envelopes and decrypts Envelopes back
// into Plain Items, under a given Key Schedule. It never touches the item
// store or the sync protocol.
type Codec interface {
	// Encrypt produces a fresh Envelope for item. A new random item key and
	// fresh ivs are generated on every call, so two encryptions of the same
	// item are bitwise distinct (spec §4.2.6).
	Encrypt(item models.PlainItem, ks *crypto.KeySchedule) (*models.Envelope, error)

	// Decrypt recovers the Plain Item an Envelope represents. Returns
	// ErrTombstone (soft) if the envelope is a deletion marker, or
	// ErrUnknownContentType (soft) if env.ContentType names neither "Note"
	// nor "Tag"; any other failure is one of the typed errors in errors.go.
	Decrypt(env *models.Envelope, ks *crypto.KeySchedule) (models.PlainItem, error)
}

type codec struct{}

// NewCodec constructs a [Codec].
func NewCodec() Codec {
	return &codec{}
}

func (c *codec) Encrypt(item models.PlainItem, ks *crypto.KeySchedule) (*models.Envelope, error) {
	ik, err := generateItemKey()
	if err != nil {
		return nil, err
	}

	var mk, ak [32]byte
	copy(mk[:], ks.MK())
	copy(ak[:], ks.AK())

	uuid := item.GetUUID()

	encItemKey, err := wrapItemKey(ik, mk, ak, uuid)
	if err != nil {
		return nil, fmt.Errorf("envelope: wrap item key: %w", err)
	}

	plaintext, err := marshalContent(item)
	if err != nil {
		return nil, err
	}
	content, err := sealWire(plaintext, ik.ek, ik.ak, uuid)
	if err != nil {
		return nil, fmt.Errorf("envelope: seal content: %w", err)
	}

	created, updated := itemTimestamps(item)
	deleted := false

	return &models.Envelope{
		UUID:        uuid,
		ContentType: item.ContentType(),
		Content:     &content,
		EncItemKey:  &encItemKey,
		CreatedAt:   created,
		UpdatedAt:   updated,
		Deleted:     &deleted,
	}, nil
}

func (c *codec) Decrypt(env *models.Envelope, ks *crypto.KeySchedule) (models.PlainItem, error) {
	if env.IsDeleted() {
		return nil, ErrTombstone
	}

	switch env.ContentType {
	case models.ContentTypeNote, models.ContentTypeTag:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, env.ContentType)
	}

	if env.EncItemKey == nil || env.Content == nil {
		return nil, fmt.Errorf("%w: missing content or enc_item_key", ErrInvalidCredentials)
	}

	var mk, ak [32]byte
	copy(mk[:], ks.MK())
	copy(ak[:], ks.AK())

	ik, err := unwrapItemKey(*env.EncItemKey, mk, ak, env.UUID)
	if err != nil {
		return nil, err
	}

	plaintext, err := openWire(*env.Content, ik.ek, ik.ak, env.UUID)
	if err != nil {
		return nil, err
	}

	return unmarshalContent(env.ContentType, plaintext, env)
}

func itemTimestamps(item models.PlainItem) (created, updated time.Time) {
	switch v := item.(type) {
	case *models.Note:
		return v.CreatedAt, v.UpdatedAt
	case *models.Tag:
		return v.CreatedAt, v.UpdatedAt
	default:
		now := time.Now().UTC()
		return now, now
	}
}
