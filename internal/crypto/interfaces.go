package crypto

import "github.com/MKhiriev/sfcore/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keyscheduler_mock.go -package=mock

// KeyScheduler derives a Key Schedule from Credentials. It has no knowledge
// of the network, the item store, or the envelope wire format — its sole
// responsibility is turning a passphrase into keys.
type KeyScheduler interface {
	// Derive builds a Key Schedule from creds. Returns ErrInvalidCost if
	// creds.Cost is zero; any other failure is an underlying crypto error
	// surfaced unchanged.
	Derive(creds models.Credentials) (*KeySchedule, error)
}
