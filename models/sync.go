package models

// RegisterRequest is the body of POST /auth (spec §4.4.1).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` // hex-encoded Key Schedule pw, never the raw passphrase
	PwCost   uint32 `json:"pw_cost"`
	PwNonce  string `json:"pw_nonce"`
	Version  string `json:"version"`
}

// AuthParamsResponse is the body of GET /auth/params (spec §4.4.2 step 1).
type AuthParamsResponse struct {
	PwCost  uint32 `json:"pw_cost"`
	PwNonce string `json:"pw_nonce"`
}

// SignInRequest is the body of POST /auth/sign_in (spec §4.4.2 step 4).
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the common shape of a successful /auth or /auth/sign_in
// response: a bearer token for all subsequent authenticated requests.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the shape of a non-2xx auth/sync response (spec §6,
// §4.4.1): surface Errors[0] verbatim as the failure message.
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// SyncRequest is the body of POST /items/sync (spec §4.4.3 step 1).
type SyncRequest struct {
	Items       []Envelope `json:"items"`
	SyncToken   *string    `json:"sync_token"`
	CursorToken *string    `json:"cursor_token"`
}

// SyncResponse is the decoded body of a sync round trip (spec §4.4.3 step 2).
type SyncResponse struct {
	RetrievedItems []Envelope `json:"retrieved_items"`
	SavedItems     []Envelope `json:"saved_items"`
	Unsaved        []Envelope `json:"unsaved,omitempty"`
	SyncToken      *string    `json:"sync_token,omitempty"`
	CursorToken    *string    `json:"cursor_token,omitempty"`
}
