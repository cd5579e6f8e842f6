package syncclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"context"

	"github.com/MKhiriev/sfcore/internal/crypto"
	"github.com/MKhiriev/sfcore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSignIn_RewritesCredentialsFromServer is scenario S6: the server's
// /auth/params response is authoritative over whatever cost/nonce the
// caller supplied, and the password proof sent to /auth/sign_in must be
// derived from the rewritten values.
func TestNewSignIn_RewritesCredentialsFromServer(t *testing.T) {
	const wantCost = 200_000
	const wantNonce = "5b6c2e6f6b1a7d9e0c3f8a2b4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f70"

	var gotSignInPassword string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/params", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AuthParamsResponse{PwCost: wantCost, PwNonce: wantNonce})
	})
	mux.HandleFunc("/auth/sign_in", func(w http.ResponseWriter, r *http.Request) {
		var req models.SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotSignInPassword = req.Password
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: "tok-123"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := models.Credentials{
		Identifier: "foo@bar.com",
		Cost:       110_000, // stale, must be overridden
		Nonce:      "stale-nonce",
		Passphrase: "correct horse battery staple",
	}

	c, err := NewSignIn(context.Background(), srv.URL, creds)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", c.Token())
	assert.Equal(t, uint32(wantCost), c.creds.Cost)
	assert.Equal(t, wantNonce, c.creds.Nonce)

	wantKS, err := crypto.NewKeyScheduler().Derive(models.Credentials{
		Identifier: creds.Identifier,
		Cost:       wantCost,
		Nonce:      wantNonce,
		Passphrase: creds.Passphrase,
	})
	require.NoError(t, err)
	assert.Equal(t, wantKS.Password(), gotSignInPassword)
}

// TestNewRegister_DefaultsCostAndNonce covers spec §4.4.1: a zero Cost and
// empty Nonce are filled in locally before the request is sent.
func TestNewRegister_DefaultsCostAndNonce(t *testing.T) {
	var gotReq models.RegisterRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: "reg-tok"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := models.Credentials{Identifier: "new@user.com", Passphrase: "hunter2"}
	c, err := NewRegister(context.Background(), srv.URL, creds)
	require.NoError(t, err)

	assert.Equal(t, "reg-tok", c.Token())
	assert.Equal(t, uint32(defaultCost), gotReq.PwCost)
	assert.Len(t, gotReq.PwNonce, 64) // 32 random bytes, hex-encoded
	assert.Equal(t, models.Scheme, gotReq.Version)
}

// TestSync_CursorProgresses is spec §8 item 10: a second sync call using
// the cursor returned by the first receives an empty retrieved set when
// nothing has changed server-side.
func TestSync_CursorProgresses(t *testing.T) {
	var calls int

	mux := http.NewServeMux()
	mux.HandleFunc("/items/sync", func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req models.SyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if calls == 1 {
			assert.Nil(t, req.SyncToken)
			tok := "cursor-1"
			_ = json.NewEncoder(w).Encode(models.SyncResponse{
				RetrievedItems: []models.Envelope{{UUID: "item-1"}},
				SyncToken:      &tok,
			})
			return
		}

		require.NotNil(t, req.SyncToken)
		assert.Equal(t, "cursor-1", *req.SyncToken)
		tok := "cursor-2"
		_ = json.NewEncoder(w).Encode(models.SyncResponse{
			RetrievedItems: nil,
			SyncToken:      &tok,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := newClient(srv.URL, models.Credentials{}, nil)
	require.NoError(t, err)

	first, err := c.Sync(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "item-1", first[0].UUID)

	second, err := c.Sync(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 2, calls)
}

// TestMapRemoteError_SurfacesServerMessage is spec §6: a non-2xx response
// carrying errors[0] surfaces that message verbatim, wrapped in ErrRemote.
func TestMapRemoteError_SurfacesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/sign_in", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Errors: []string{"invalid email or password"}})
	})
	mux.HandleFunc("/auth/params", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AuthParamsResponse{PwCost: 110_000, PwNonce: "n"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewSignIn(context.Background(), srv.URL, models.Credentials{Identifier: "x@y.com", Passphrase: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "invalid email or password")
}
