package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config controls the base URL, timeout, and retry policy applied to an
// HTTPClient. Sync Client requests are safe to retry — spec §4.3.5
// documents flush_dirty's underlying push as "idempotent per uuid" — so a
// transient network failure on a push/pull round trip is retried by
// resty itself rather than surfaced to the caller as an error on the
// first hiccup.
type Config struct {
	// BaseURL is the sync server's origin. A trailing slash is trimmed.
	BaseURL string
	// Timeout bounds each request attempt; every retry gets its own
	// Timeout. Zero defaults to 15s (the teacher's adapter default).
	Timeout time.Duration
	// RetryCount is how many additional attempts a failed request gets.
	// Zero defaults to 2.
	RetryCount int
	// RetryWaitTime is the backoff before the first retry; resty grows it
	// up to RetryMaxWaitTime on subsequent attempts. Zero defaults to
	// 200ms/2s respectively.
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.RetryCount <= 0 {
		c.RetryCount = 2
	}
	if c.RetryWaitTime <= 0 {
		c.RetryWaitTime = 200 * time.Millisecond
	}
	if c.RetryMaxWaitTime <= 0 {
		c.RetryMaxWaitTime = 2 * time.Second
	}
	return c
}

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.Config{BaseURL: "https://sync.example.com"})
//	resp, err := client.R().Get("/auth/params")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient builds an HTTPClient against cfg, filling in the retry
// and timeout defaults above for any zero field.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(cfg Config) *HTTPClient {
	cfg = cfg.withDefaults()

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWaitTime)

	return &HTTPClient{Client: cli}
}
