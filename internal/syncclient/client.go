package syncclient

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"dario.cat/mergo"
	"github.com/MKhiriev/sfcore/internal/crypto"
	"github.com/MKhiriev/sfcore/internal/utils"
	"github.com/MKhiriev/sfcore/models"
	"github.com/go-resty/resty/v2"
)

// defaultCost is the PBKDF2 iteration count a fresh registration uses when
// the caller does not supply one (spec §4.4.1).
const defaultCost = 110_000

// Client wraps an HTTP client, a host URL, a Credentials clone (whose cost
// and nonce may be rewritten by the server during sign-in), a bearer
// token, and an optional sync cursor (spec §4.4).
type Client struct {
	http  *utils.HTTPClient
	creds models.Credentials
	ks    *crypto.KeySchedule

	token  string
	cursor *string
}

// NewRegister derives a Key Schedule from creds (filling in a default cost
// and a fresh nonce when absent), POSTs a registration request to
// POST /auth, and captures the returned bearer token (spec §4.4.1).
func NewRegister(ctx context.Context, host string, creds models.Credentials) (*Client, error) {
	if creds.Cost == 0 {
		creds.Cost = defaultCost
	}
	if creds.Nonce == "" {
		nonce, err := randomNonceHex()
		if err != nil {
			return nil, err
		}
		creds.Nonce = nonce
	}

	ks, err := crypto.NewKeyScheduler().Derive(creds)
	if err != nil {
		return nil, err
	}

	c, err := newClient(host, creds, ks)
	if err != nil {
		return nil, err
	}

	req := models.RegisterRequest{
		Email:    creds.Identifier,
		Password: ks.Password(),
		PwCost:   creds.Cost,
		PwNonce:  creds.Nonce,
		Version:  models.Scheme,
	}

	var authResp models.AuthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&authResp).
		Post("/auth")
	if err != nil {
		return nil, fmt.Errorf("%w: register: %v", ErrNetwork, err)
	}
	if err := mapRemoteError(resp); err != nil {
		return nil, err
	}

	c.token = authResp.Token
	return c, nil
}

// NewSignIn fetches the server's authoritative KDF parameters from
// GET /auth/params, rewrites the local Credentials' cost and nonce from
// them, re-derives the Key Schedule, then POSTs to /auth/sign_in and
// captures the returned bearer token (spec §4.4.2).
func NewSignIn(ctx context.Context, host string, creds models.Credentials) (*Client, error) {
	c, err := newClient(host, creds, nil)
	if err != nil {
		return nil, err
	}

	var params models.AuthParamsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", creds.Identifier).
		SetResult(&params).
		Get("/auth/params")
	if err != nil {
		return nil, fmt.Errorf("%w: auth params: %v", ErrNetwork, err)
	}
	if err := mapRemoteError(resp); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&creds, models.Credentials{Cost: params.PwCost, Nonce: params.PwNonce}, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("syncclient: rewrite credentials: %w", err)
	}

	ks, err := crypto.NewKeyScheduler().Derive(creds)
	if err != nil {
		return nil, err
	}
	c.creds = creds
	c.ks = ks

	signInReq := models.SignInRequest{Email: creds.Identifier, Password: ks.Password()}
	var authResp models.AuthResponse
	resp, err = c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(signInReq).
		SetResult(&authResp).
		Post("/auth/sign_in")
	if err != nil {
		return nil, fmt.Errorf("%w: sign_in: %v", ErrNetwork, err)
	}
	if err := mapRemoteError(resp); err != nil {
		return nil, err
	}

	c.token = authResp.Token
	return c, nil
}

// Sync implements store.SyncClient. It POSTs items_to_push and the current
// cursor to POST /items/sync, replaces the local cursor with the response's
// sync_token, and returns the retrieved items for the caller (the Store) to
// reconcile via insert_encrypted (spec §4.4.3).
func (c *Client) Sync(ctx context.Context, toPush []models.Envelope) ([]models.Envelope, error) {
	req := models.SyncRequest{
		Items:       toPush,
		SyncToken:   c.cursor,
		CursorToken: nil,
	}

	var syncResp models.SyncResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.token).
		SetBody(req).
		SetResult(&syncResp).
		Post("/items/sync")
	if err != nil {
		return nil, fmt.Errorf("%w: sync: %v", ErrNetwork, err)
	}
	if err := mapRemoteError(resp); err != nil {
		return nil, err
	}

	c.cursor = syncResp.SyncToken
	return syncResp.RetrievedItems, nil
}

// Token returns the bearer token currently held by the client.
func (c *Client) Token() string { return c.token }

func newClient(host string, creds models.Credentials, ks *crypto.KeySchedule) (*Client, error) {
	baseURL, err := normalizeBaseURL(host)
	if err != nil {
		return nil, fmt.Errorf("syncclient: invalid host: %w", err)
	}

	httpClient := utils.NewHTTPClient(utils.Config{BaseURL: baseURL})

	return &Client{http: httpClient, creds: creds, ks: ks}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty host")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("host must include scheme and host")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func mapRemoteError(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}

	var errResp models.ErrorResponse
	if jsonErr := json.Unmarshal(resp.Body(), &errResp); jsonErr == nil && len(errResp.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrRemote, errResp.Errors[0])
	}
	return fmt.Errorf("%w: http %d: %s", ErrRemote, resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
}

func randomNonceHex() (string, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("syncclient: generate nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
