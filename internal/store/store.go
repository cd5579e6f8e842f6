package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/sfcore/internal/crypto"
	"github.com/MKhiriev/sfcore/internal/envelope"
	"github.com/MKhiriev/sfcore/internal/logger"
	"github.com/MKhiriev/sfcore/models"
	"github.com/google/uuid"
)

const dirPerm = 0o700
const filePerm = 0o600

// Store owns a user's decrypted items, the dirty-uuid set awaiting flush,
// its Key Schedule, its bucket directory path, and (optionally) a
// SyncClient (spec §4.3.2).
//
// mu guards items, dirty, and current. A glue layer (internal/flush.Flusher)
// calls FlushDirty from its own debounce-timer goroutine, concurrently with
// ordinary application-goroutine calls like SetTitle/SetText/Delete, so
// every exported method that touches those fields takes mu; unexported
// helpers below assume the caller already holds it.
type Store struct {
	mu      sync.Mutex
	items   map[string]models.PlainItem
	dirty   map[string]struct{}
	current *string

	ks    *crypto.KeySchedule
	codec envelope.Codec

	path    string
	client  SyncClient
	log     *logger.Logger
	authPub models.AuthParams
}

// Open builds the bucket path under <dataDir>/<app>/<bucket>, derives the
// Key Schedule, loads any existing on-disk envelopes, and — if client is
// non-nil — performs an initial sync and merges its retrieved items (spec
// §4.3.3).
func Open(ctx context.Context, dataDir, app string, creds models.Credentials, client SyncClient, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	ks, err := crypto.NewKeyScheduler().Derive(creds)
	if err != nil {
		return nil, err
	}

	s := &Store{
		items:  make(map[string]models.PlainItem),
		dirty:  make(map[string]struct{}),
		ks:     ks,
		codec:  envelope.NewCodec(),
		path:   bucketPath(dataDir, app, creds.Identifier),
		client: client,
		log:    log,
		authPub: models.AuthParams{
			Identifier: creds.Identifier,
			PwCost:     creds.Cost,
			PwNonce:    creds.Nonce,
			Version:    models.Scheme,
		},
	}

	known, err := s.loadBucket()
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		retrieved, err := s.client.Sync(ctx, known)
		if err != nil {
			return nil, fmt.Errorf("store: initial sync: %w", err)
		}
		if err := s.insertEncrypted(retrieved); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// bucketPath derives <dataDir>/<app>/<sha256-hex(identifier)> (spec §4.3.1).
func bucketPath(dataDir, app, identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return filepath.Join(dataDir, app, hex.EncodeToString(sum[:]))
}

// loadBucket reads every existing bucket file, verifies filename/uuid
// binding, decrypts it, and returns the encrypted envelopes as "items we
// already know" for the caller to hand to a SyncClient.
func (s *Store) loadBucket() ([]models.Envelope, error) {
	entries, err := os.ReadDir(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read bucket dir: %w", err)
	}

	known := make([]models.Envelope, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		raw, err := os.ReadFile(filepath.Join(s.path, name))
		if err != nil {
			return nil, fmt.Errorf("store: read bucket file %s: %w", name, err)
		}

		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("store: decode bucket file %s: %w", name, err)
		}
		if env.UUID != name {
			return nil, fmt.Errorf("%w: file %s contains uuid %s", ErrCorruption, name, env.UUID)
		}

		item, err := s.codec.Decrypt(&env, s.ks)
		if err != nil {
			if errors.Is(err, envelope.ErrUnknownContentType) || errors.Is(err, envelope.ErrTombstone) {
				continue
			}
			return nil, err
		}

		s.items[item.GetUUID()] = item
		known = append(known, env)
	}

	return known, nil
}

// insertEncrypted decrypts each envelope in batch and, on success,
// inserts/overwrites the corresponding plain item and re-persists the
// envelope. Envelopes with an unknown content type are skipped silently. A
// tombstone (another device's delete, observed via sync) removes the uuid
// locally instead of decrypting it. Any other failure aborts the whole
// batch (spec §4.3.4).
func (s *Store) insertEncrypted(batch []models.Envelope) error {
	for i := range batch {
		env := batch[i]

		item, err := s.codec.Decrypt(&env, s.ks)
		if err != nil {
			if errors.Is(err, envelope.ErrUnknownContentType) {
				continue
			}
			if errors.Is(err, envelope.ErrTombstone) {
				s.removeLocal(env.UUID)
				continue
			}
			return err
		}

		s.items[item.GetUUID()] = item
		if err := s.persist(&env); err != nil {
			return err
		}
	}
	return nil
}

// removeLocal deletes id's bucket file (if any) and removes it from items,
// dirty, and current. Used when a remote tombstone arrives for a uuid this
// bucket still holds. Assumes the caller holds s.mu (or, as with
// insertEncrypted during Open, runs before the Store is shared).
func (s *Store) removeLocal(id string) {
	if err := os.Remove(filepath.Join(s.path, id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Str("uuid", id).Err(err).Msg("remove bucket file for remote tombstone")
	}
	delete(s.items, id)
	delete(s.dirty, id)
	if s.current != nil && *s.current == id {
		s.current = nil
	}
}

// persist writes env to its bucket file, creating the bucket directory
// lazily on first write.
func (s *Store) persist(env *models.Envelope) error {
	if err := os.MkdirAll(s.path, dirPerm); err != nil {
		return fmt.Errorf("store: create bucket dir: %w", err)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("store: encode envelope: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.path, env.UUID), data, filePerm); err != nil {
		return fmt.Errorf("store: write bucket file: %w", err)
	}
	return nil
}

// CreateNote inserts a fresh empty Note and returns its uuid. The note is
// not added to the dirty set; the first title/text mutation will do that.
func (s *Store) CreateNote() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now().UTC()
	s.items[id] = &models.Note{UUID: id, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

// SetCurrentUUID selects which item subsequent title/text mutations target.
// Returns ErrItemNotFound if id is not a key of items.
func (s *Store) SetCurrentUUID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	s.current = &id
	return nil
}

// SetTitle updates the current item's title, bumps updated_at, and marks
// it dirty. Fails with ErrNotANote if the current item is a Tag.
func (s *Store) SetTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.currentNote()
	if err != nil {
		return err
	}
	note.Title = title
	note.UpdatedAt = time.Now().UTC()
	s.markDirty(note.UUID)
	return nil
}

// SetText updates the current item's text, bumps updated_at, and marks it
// dirty. Fails with ErrNotANote if the current item is a Tag.
func (s *Store) SetText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.currentNote()
	if err != nil {
		return err
	}
	note.Text = text
	note.UpdatedAt = time.Now().UTC()
	s.markDirty(note.UUID)
	return nil
}

// GetTitle returns the current item's title.
func (s *Store) GetTitle() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.currentNote()
	if err != nil {
		return "", err
	}
	return note.Title, nil
}

// GetText returns the current item's text.
func (s *Store) GetText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.currentNote()
	if err != nil {
		return "", err
	}
	return note.Text, nil
}

// currentNote assumes the caller holds s.mu.
func (s *Store) currentNote() (*models.Note, error) {
	if s.current == nil {
		return nil, ErrNoCurrentItem
	}
	item, ok := s.items[*s.current]
	if !ok {
		return nil, ErrItemNotFound
	}
	note, ok := item.(*models.Note)
	if !ok {
		return nil, ErrNotANote
	}
	return note, nil
}

// markDirty assumes the caller holds s.mu.
func (s *Store) markDirty(id string) {
	s.dirty[id] = struct{}{}
}

// Delete pushes a tombstone to the sync client (if attached and the item
// is still present), then removes id's bucket file and removes it from
// items and the dirty set. The dirty set is left untouched until the
// tombstone push succeeds, so a failed push (e.g. a network error) leaves
// any unflushed edit on id intact for a later retry instead of silently
// discarding it (spec §4.3.5).
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.items[id]; ok && s.client != nil {
		env, err := s.codec.Encrypt(item, s.ks)
		if err != nil {
			return err
		}
		deleted := true
		env.Deleted = &deleted

		if _, err := s.client.Sync(ctx, []models.Envelope{*env}); err != nil {
			return fmt.Errorf("store: push tombstone for %s: %w", id, err)
		}
	}

	if err := os.Remove(filepath.Join(s.path, id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove bucket file for %s: %w", id, err)
	} else if errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Str("uuid", id).Msg("delete: bucket file already absent")
	}

	delete(s.items, id)
	delete(s.dirty, id)
	if s.current != nil && *s.current == id {
		s.current = nil
	}
	return nil
}

// FlushDirty re-encrypts every dirty item, persists it, pushes the
// collected envelopes to the sync client as one batch, and clears the
// dirty set on success. On any failure the dirty set is left intact so a
// retry is safe (spec §4.3.5, §5).
func (s *Store) FlushDirty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		snapshot = append(snapshot, id)
	}
	if len(snapshot) == 0 {
		return nil
	}

	envelopes := make([]models.Envelope, 0, len(snapshot))
	for _, id := range snapshot {
		item, ok := s.items[id]
		if !ok {
			continue
		}

		env, err := s.codec.Encrypt(item, s.ks)
		if err != nil {
			return fmt.Errorf("store: encrypt %s: %w", id, err)
		}
		if err := s.persist(env); err != nil {
			return err
		}
		envelopes = append(envelopes, *env)
	}

	if s.client != nil && len(envelopes) > 0 {
		if _, err := s.client.Sync(ctx, envelopes); err != nil {
			return fmt.Errorf("store: push flush batch: %w", err)
		}
	}

	for _, id := range snapshot {
		delete(s.dirty, id)
	}
	return nil
}

// Export builds an archive containing the user's public AuthParams and
// fresh envelopes for every item currently in memory (spec §4.3.5,
// §6 "Exported archive").
func (s *Store) Export() (*models.Archive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Envelope, 0, len(s.items))
	for _, item := range s.items {
		env, err := s.codec.Encrypt(item, s.ks)
		if err != nil {
			return nil, err
		}
		items = append(items, *env)
	}

	return &models.Archive{AuthParams: s.authPub, Items: items}, nil
}

// Item returns a read-only view of the item identified by id.
func (s *Store) Item(id string) (models.PlainItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	return item, ok
}

// DirtyCount reports the number of uuids currently pending flush. Exposed
// for tests and for a glue layer deciding whether to arm a debounce timer.
func (s *Store) DirtyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.dirty)
}
