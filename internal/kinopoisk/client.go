// Package kinopoisk provides a client for the Kinopoisk Unofficial API.
//
// A single Client instance is shared by every metadata consumer in the
// process: it is the only component allowed to talk to the upstream host,
// and it applies caching, rate limiting and error normalization uniformly
// to every call. All operations resolve ordinary not-found and transient
// failures to an absent result (nil, nil) instead of an error.
package kinopoisk

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/kinoteka/kinoteka/internal/cache"
	"github.com/kinoteka/kinoteka/internal/ratelimit"
)

const (
	defaultBaseURL = "https://kinopoiskapiunofficial.tech/api"
	defaultMaxRPS  = 5 // unofficial API free tier allows ~5 requests per second

	apiKeyHeader = "X-API-KEY"

	// rateLimitBackoff is the default pause before the single retry after a
	// 429; an upstream Retry-After hint can stretch it up to
	// maxRateLimitBackoff.
	rateLimitBackoff    = time.Second
	maxRateLimitBackoff = 30 * time.Second
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Kinopoisk Unofficial API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	cache      cache.Store
	limiter    *ratelimit.Limiter
	closeOnce  sync.Once
}

// NewClient creates a new Kinopoisk API client. The API token, cache TTL and
// rate limit settings are read from viper on every request, so configuration
// changes apply without rebuilding the client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.NewMemory(),
		limiter:    ratelimit.NewInterval("Kinopoisk", defaultMaxRPS),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Kinopoisk API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCache sets a custom response cache.
func WithCache(store cache.Store) Option {
	return func(client *Client) {
		if store != nil {
			client.cache = store
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.limiter = limiter
		}
	}
}

// Close releases the client's transport resources. Safe to call more than
// once; in-flight requests are not interrupted.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if hc, ok := c.httpClient.(*http.Client); ok {
			hc.CloseIdleConnections()
		}
	})
}

// settings is the live configuration snapshot taken at the start of each
// fetch. Values come from viper so the host can reconfigure the gateway
// between calls without restarting it.
type settings struct {
	token            string
	cacheTTL         time.Duration
	maxRPS           float64
	rateLimitEnabled bool
}

func (c *Client) settings() settings {
	s := settings{
		token:            viper.GetString("kinopoisk.api_token"),
		cacheTTL:         viper.GetDuration("kinopoisk.cache_ttl"),
		maxRPS:           viper.GetFloat64("kinopoisk.max_rps"),
		rateLimitEnabled: true,
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = cache.DefaultTTL
	}
	if s.maxRPS <= 0 {
		s.maxRPS = defaultMaxRPS
	}
	if viper.IsSet("kinopoisk.rate_limit_enabled") {
		s.rateLimitEnabled = viper.GetBool("kinopoisk.rate_limit_enabled")
	}
	return s
}
