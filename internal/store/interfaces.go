package store

import (
	"context"

	"github.com/MKhiriev/sfcore/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncclient_mock.go -package=mock

// SyncClient is the subset of internal/syncclient.Client the Store depends
// on. Declaring it here (rather than importing the syncclient package)
// lets the Store accept any sync implementation, and lets tests substitute
// a hand-written mock without an import cycle.
type SyncClient interface {
	// Sync pushes toPush and returns the envelopes the server retrieved for
	// this client (spec §4.4.3). A nil or empty toPush is a pull-only call.
	Sync(ctx context.Context, toPush []models.Envelope) ([]models.Envelope, error)
}
