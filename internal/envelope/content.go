package envelope

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/sfcore/models"
)

// noteContent is the JSON shape encrypted inside a Note envelope's content
// field (spec §4.2.2). A missing title decodes to the empty string.
type noteContent struct {
	Title *string `json:"title,omitempty"`
	Text  string  `json:"text"`
}

// tagReference is one entry of a Tag's references array.
type tagReference struct {
	UUID        string `json:"uuid"`
	ContentType string `json:"content_type"`
}

// tagContent is the JSON shape encrypted inside a Tag envelope's content
// field (spec §4.2.2).
type tagContent struct {
	Title      string         `json:"title"`
	References []tagReference `json:"references"`
}

// marshalContent serializes item to the JSON plaintext that belongs inside
// the content layer.
func marshalContent(item models.PlainItem) ([]byte, error) {
	switch v := item.(type) {
	case *models.Note:
		title := v.Title
		return json.Marshal(noteContent{Title: &title, Text: v.Text})
	case *models.Tag:
		refs := make([]tagReference, 0, len(v.References))
		for _, uuid := range v.References {
			refs = append(refs, tagReference{UUID: uuid, ContentType: models.ContentTypeNote})
		}
		return json.Marshal(tagContent{Title: v.Title, References: refs})
	default:
		return nil, fmt.Errorf("envelope: marshal: unsupported item type %T", item)
	}
}

// unmarshalContent decodes plaintext into a PlainItem of the variant named
// by contentType, stamping in uuid/createdAt/updatedAt from the owning
// envelope. Returns ErrUnknownContentType for any contentType other than
// "Note" or "Tag" (a soft error the caller may recover from).
func unmarshalContent(contentType string, plaintext []byte, env *models.Envelope) (models.PlainItem, error) {
	if !utf8.Valid(plaintext) {
		return nil, fmt.Errorf("%w: content is not valid utf-8", ErrInvalidCredentials)
	}

	switch contentType {
	case models.ContentTypeNote:
		var nc noteContent
		if err := json.Unmarshal(plaintext, &nc); err != nil {
			return nil, fmt.Errorf("%w: decode note content: %v", ErrInvalidCredentials, err)
		}
		title := ""
		if nc.Title != nil {
			title = *nc.Title
		}
		return &models.Note{
			UUID:      env.UUID,
			Title:     title,
			Text:      nc.Text,
			CreatedAt: env.CreatedAt,
			UpdatedAt: env.UpdatedAt,
		}, nil

	case models.ContentTypeTag:
		var tc tagContent
		if err := json.Unmarshal(plaintext, &tc); err != nil {
			return nil, fmt.Errorf("%w: decode tag content: %v", ErrInvalidCredentials, err)
		}
		refs := make([]string, 0, len(tc.References))
		for _, r := range tc.References {
			refs = append(refs, r.UUID)
		}
		return &models.Tag{
			UUID:       env.UUID,
			Title:      tc.Title,
			References: refs,
			CreatedAt:  env.CreatedAt,
			UpdatedAt:  env.UpdatedAt,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
	}
}
