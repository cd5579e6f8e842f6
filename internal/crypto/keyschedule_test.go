package crypto

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/MKhiriev/sfcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureCredentials returns the S1 fixed vector from the spec.
func fixtureCredentials() models.Credentials {
	return models.Credentials{
		Identifier: "foo@bar.com",
		Cost:       110000,
		Nonce:      "3f8ea1ffd8067c1550ca3ad78de71c9b6e68b5cb540e370c12065eca15d9a049",
		Passphrase: "secret",
	}
}

func TestKeyScheduler_Derive_FixedVector(t *testing.T) {
	sched := NewKeyScheduler()

	ks, err := sched.Derive(fixtureCredentials())
	require.NoError(t, err)

	require.Len(t, ks.MK(), 32)
	require.Len(t, ks.AK(), 32)
	require.Len(t, ks.Password(), 64) // 32 bytes hex-encoded

	_, err = hex.DecodeString(ks.Password())
	assert.NoError(t, err)
}

func TestKeyScheduler_Derive_Deterministic(t *testing.T) {
	sched := NewKeyScheduler()
	creds := fixtureCredentials()

	a, err := sched.Derive(creds)
	require.NoError(t, err)
	b, err := sched.Derive(creds)
	require.NoError(t, err)

	assert.Equal(t, a.Password(), b.Password())
	assert.Equal(t, a.MK(), b.MK())
	assert.Equal(t, a.AK(), b.AK())
}

func TestKeyScheduler_Derive_DistinctKeysWithinSchedule(t *testing.T) {
	sched := NewKeyScheduler()
	ks, err := sched.Derive(fixtureCredentials())
	require.NoError(t, err)

	assert.NotEqual(t, ks.MK(), ks.AK())
	pwBytes, _ := hex.DecodeString(ks.Password())
	assert.NotEqual(t, pwBytes, ks.MK())
}

func TestKeyScheduler_Derive_InvalidCost(t *testing.T) {
	sched := NewKeyScheduler()
	creds := fixtureCredentials()
	creds.Cost = 0

	_, err := sched.Derive(creds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCost))
}

func TestKeyScheduler_Derive_DifferentNonceDifferentKeys(t *testing.T) {
	sched := NewKeyScheduler()
	a, err := sched.Derive(fixtureCredentials())
	require.NoError(t, err)

	other := fixtureCredentials()
	other.Nonce = "0000000000000000000000000000000000000000000000000000000000000"
	b, err := sched.Derive(other)
	require.NoError(t, err)

	assert.NotEqual(t, a.Password(), b.Password())
}
