package kinopoisk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/kinoteka/kinoteka/internal/errors"
)

// maxAttempts bounds the fetch routine: one regular attempt plus exactly one
// retry after a 429. A second 429 is the terminal result.
const maxAttempts = 2

// getJSON runs the shared fetch routine for endpoint and decodes the
// response into target. It returns false when the resource is absent for
// any of the normalized reasons: missing token, upstream 404, persistent
// 429, other upstream errors, transport failures or an undecodable body.
// The only error it returns is a context cancellation.
//
// The 429 retry deliberately re-enters the whole routine including the
// cache lookup: a value cached by a concurrent caller during the backoff
// window short-circuits the retry.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) (bool, error) {
	for attempt := 1; ; attempt++ {
		found, err := c.fetchOnce(ctx, endpoint, target)
		if err == nil {
			return found, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}

		if kerrors.IsRateLimitError(err) {
			if attempt >= maxAttempts {
				slog.Warn("Kinopoisk rate limit persisted after retry, giving up", "endpoint", endpoint)
				return false, nil
			}
			backoff := retryBackoff(err)
			slog.Warn("Kinopoisk rate limit hit, backing off", "endpoint", endpoint, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return false, ctx.Err()
			}
			continue
		}

		slog.Warn("Kinopoisk request failed", "endpoint", endpoint, "error", err)
		return false, nil
	}
}

// retryBackoff returns the wait before the 429 retry: the upstream
// Retry-After hint when it asks for more than the default, clamped to
// maxRateLimitBackoff.
func retryBackoff(err error) time.Duration {
	backoff := rateLimitBackoff
	var rateErr *kerrors.RateLimitError
	if errors.As(err, &rateErr) && rateErr.RetryAfter > backoff {
		backoff = min(rateErr.RetryAfter, maxRateLimitBackoff)
	}
	return backoff
}

// retryAfterHint parses a Retry-After header given as whole seconds.
// HTTP-date values are ignored, leaving the default backoff in effect.
func retryAfterHint(header string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// fetchOnce performs a single pass of the fetch routine: cache lookup,
// token check, rate-limit admission, dispatch and status interpretation.
func (c *Client) fetchOnce(ctx context.Context, endpoint string, target any) (bool, error) {
	cfg := c.settings()

	if data, ok := c.cache.Get(endpoint, cfg.cacheTTL); ok {
		if err := json.Unmarshal(data, target); err == nil {
			slog.Debug("Kinopoisk cache hit", "endpoint", endpoint)
			return true, nil
		}
		slog.Warn("Failed to decode cached response, refetching", "endpoint", endpoint)
	}

	if cfg.token == "" {
		slog.Debug("Kinopoisk API token not configured, skipping request", "endpoint", endpoint)
		return false, nil
	}

	if cfg.rateLimitEnabled {
		if c.limiter.Rate() != cfg.maxRPS {
			c.limiter.SetRate(cfg.maxRPS)
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, cfg.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		slog.Debug("Resource not found upstream", "endpoint", endpoint)
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		if hint := retryAfterHint(resp.Header.Get("Retry-After")); hint > 0 {
			return false, kerrors.NewRateLimitErrorWithRetry("kinopoisk API rate limit exceeded", hint)
		}
		return false, kerrors.NewRateLimitError("kinopoisk API rate limit exceeded")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, kerrors.NewUpstreamError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	c.cache.Set(endpoint, body)
	return true, nil
}
