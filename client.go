// Package itemfetch provides a small client for fetching item feeds over an
// abstract transport, with an in-memory TTL response cache and bounded
// retries under a per-attempt timeout.
//
// The Client type is the main entry point: create one with New from an
// immutable Config, an injected transport.Caller, and (optionally) an
// injected cache, then fetch with Request or FetchItems. Derivation helpers
// (FilterActive, DisplayNames, Summarize) turn a fetched item list into a
// display-ready view, and Loader tracks the loading/error/data state of a
// one-shot load operation.
package itemfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/caldera-labs/itemfetch/internal/cache"
	"github.com/caldera-labs/itemfetch/internal/circuitbreaker"
	"github.com/caldera-labs/itemfetch/internal/fetchlog"
	"github.com/caldera-labs/itemfetch/internal/logging"
	"github.com/caldera-labs/itemfetch/internal/metrics"
	"github.com/caldera-labs/itemfetch/transport"
)

// Client resolves logical item requests into responses, transparently
// applying caching and retry-with-timeout. A Client is safe for concurrent
// use; its configuration is fixed at construction.
type Client struct {
	basePath     string
	timeout      time.Duration
	retryCount   int
	cacheEnabled bool
	cacheTTL     time.Duration

	caller   transport.Caller
	cache    cache.Cache
	breaker  *circuitbreaker.Breaker
	schema   *jsonschema.Schema
	fetchLog fetchlog.Writer
}

// Option customises a Client beyond what Config expresses.
type Option func(*Client)

// WithCache injects a cache implementation. Without this option a client
// with caching enabled gets its own private Memory cache.
func WithCache(c cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithFetchLog injects a persistent fetch-outcome writer.
func WithFetchLog(w fetchlog.Writer) Option {
	return func(cl *Client) { cl.fetchLog = w }
}

// New creates a Client from cfg and the given transport.
func New(cfg Config, caller transport.Caller, opts ...Option) (*Client, error) {
	if caller == nil {
		return nil, fmt.Errorf("transport caller is required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout, err := parseDuration(cfg.Timeout, DefaultTimeout)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration(cfg.Cache.TTL, DefaultCacheTTL)
	if err != nil {
		return nil, err
	}
	schema, err := compileItemsSchema()
	if err != nil {
		return nil, err
	}

	c := &Client{
		basePath:     strings.TrimRight(cfg.BasePath, "/"),
		timeout:      timeout,
		retryCount:   cfg.RetryCount,
		cacheEnabled: cfg.Cache.Enabled,
		cacheTTL:     cacheTTL,
		caller:       caller,
		schema:       schema,
		fetchLog:     fetchlog.NoopWriter{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cacheEnabled && c.cache == nil {
		c.cache = cache.NewMemory()
	}
	if cfg.Breaker != nil {
		cooldown, err := parseDuration(cfg.Breaker.Cooldown, 0)
		if err != nil {
			return nil, err
		}
		c.breaker = circuitbreaker.New(cfg.Breaker.FailureThreshold, cooldown)
	}

	return c, nil
}

// RequestOptions carries per-request parameters.
type RequestOptions struct {
	// Params are encoded into the query string and the cache key.
	// Key order never affects either.
	Params map[string]string
}

// Request resolves path+params into a successful response.
//
// If caching is enabled and a fresh entry exists for the computed key, it is
// returned without touching the transport. Otherwise the underlying call is
// attempted up to the configured retry count, each attempt bounded by the
// configured timeout; timeouts, transport errors, non-success statuses, and
// schema-invalid bodies all count as failed attempts. Attempts are immediate,
// with no backoff in between. On success the response is cached when caching
// is enabled; a cache-write failure is logged and swallowed. When the budget
// is spent the returned error wraps ErrRetriesExhausted and the last attempt
// error.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (*transport.Response, error) {
	start := time.Now()
	if logging.TraceIDFromContext(ctx) == "" {
		ctx = logging.WithTraceID(ctx, logging.NewTraceID())
	}
	log := logging.FromContext(ctx)

	key := cacheKey(path, opts.Params)
	target := c.buildURL(path, opts.Params)

	if c.cacheEnabled && c.cache != nil {
		if resp, ok := c.cache.Get(key); ok {
			metrics.CacheHits.Inc()
			log.Debug("cache hit", "path", path, "key", key)
			c.record(ctx, fetchlog.Entry{
				TraceID:    logging.TraceIDFromContext(ctx),
				Path:       path,
				CacheHit:   true,
				Status:     resp.Status,
				DurationMS: time.Since(start).Milliseconds(),
			})
			return resp, nil
		}
		metrics.CacheMisses.Inc()
	}

	var lastErr error
	for attempt := 1; attempt <= c.retryCount; attempt++ {
		if attempt > 1 {
			log.Info("retrying", "path", path, "attempt", attempt)
		}

		resp, err := c.attempt(ctx, target)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			metrics.FetchAttempts.WithLabelValues(path, "error").Inc()
			log.Warn("attempt failed", "path", path, "attempt", attempt, "error", err.Error())
			continue
		}
		metrics.FetchAttempts.WithLabelValues(path, "success").Inc()

		if c.cacheEnabled && c.cache != nil {
			if err := c.cache.Set(key, resp, c.cacheTTL); err != nil {
				// Caching is a side concern; a failed write never fails the request.
				log.Warn("cache write failed", "key", key, "error", err.Error())
			}
		}

		latency := time.Since(start)
		metrics.FetchDuration.WithLabelValues(path).Observe(latency.Seconds())
		metrics.FetchesTotal.WithLabelValues(path, "success").Inc()
		log.Info("fetch completed",
			"path", path,
			"status", resp.Status,
			"attempts", attempt,
			"latency_ms", latency.Milliseconds(),
		)
		c.record(ctx, fetchlog.Entry{
			TraceID:    logging.TraceIDFromContext(ctx),
			Path:       path,
			Attempts:   attempt,
			Status:     resp.Status,
			DurationMS: latency.Milliseconds(),
		})
		return resp, nil
	}

	latency := time.Since(start)
	metrics.FetchesTotal.WithLabelValues(path, "error").Inc()
	err := fmt.Errorf("request %q: %w: %w", path, ErrRetriesExhausted, lastErr)
	log.Error("fetch failed",
		"path", path,
		"attempts", c.retryCount,
		"latency_ms", latency.Milliseconds(),
		"error", err.Error(),
	)
	c.record(ctx, fetchlog.Entry{
		TraceID:      logging.TraceIDFromContext(ctx),
		Path:         path,
		Attempts:     c.retryCount,
		ErrorMessage: err.Error(),
		DurationMS:   latency.Milliseconds(),
	})
	return nil, err
}

// FetchItems performs a Request and decodes the items payload.
func (c *Client) FetchItems(ctx context.Context, path string, opts RequestOptions) ([]Item, error) {
	resp, err := c.Request(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	var list ItemList
	if err := resp.Decode(&list); err != nil {
		// The schema check should make this unreachable.
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return list.Items, nil
}

// attempt performs one bounded call and classifies the outcome.
func (c *Client) attempt(ctx context.Context, target string) (*transport.Response, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, fmt.Errorf("%w: %v", ErrTransport, circuitbreaker.ErrOpen)
	}

	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.caller.Call(actx, target)
	if err != nil {
		c.recordBreaker(false)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if !resp.OK() {
		c.recordBreaker(false)
		return nil, &StatusError{Status: resp.Status}
	}
	if err := validatePayload(c.schema, resp.Body); err != nil {
		c.recordBreaker(false)
		return nil, err
	}
	c.recordBreaker(true)
	return resp, nil
}

func (c *Client) recordBreaker(success bool) {
	if c.breaker == nil {
		return
	}
	if success {
		c.breaker.RecordSuccess()
	} else {
		c.breaker.RecordFailure()
	}
	metrics.BreakerState.Set(float64(c.breaker.State()))
}

// record writes a fetch-log entry; persistence failures are non-fatal.
func (c *Client) record(ctx context.Context, entry fetchlog.Entry) {
	if err := c.fetchLog.Write(ctx, entry); err != nil {
		logging.FromContext(ctx).Warn("fetch log write failed", "error", err.Error())
	}
}

// buildURL joins the base path, request path, and canonically encoded params.
func (c *Client) buildURL(path string, params map[string]string) string {
	target := c.basePath + "/" + strings.TrimLeft(path, "/")
	if len(params) == 0 {
		return target
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return target + "?" + q.Encode()
}

// cacheKey derives a deterministic key from path and params. Params are
// ordered before hashing so semantically equal requests share a key.
func cacheKey(path string, params map[string]string) string {
	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	raw := path + "?" + strings.Join(pairs, "&")
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
