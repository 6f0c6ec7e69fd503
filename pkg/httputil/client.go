package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/staragarcia/routeplanner/pkg/cache"
	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
)

// Defaults for NewClient.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	DefaultTimeout  = 30 * time.Second

	// maxBody bounds a downloaded file.
	maxBody = 64 << 20
)

// Client downloads files over HTTP.
type Client struct {
	HTTP   *http.Client
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger

	// Attempts and Delay configure retries of transient failures.
	Attempts int
	Delay    time.Duration
}

// NewClient creates a client that caches downloads in c for ttl.
// If c is nil, downloads are not cached. If logger is nil, log.Default() is used.
func NewClient(c cache.Cache, ttl time.Duration, logger *log.Logger) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		HTTP:     &http.Client{Timeout: DefaultTimeout},
		Cache:    c,
		TTL:      ttl,
		Logger:   logger,
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
	}
}

// IsURL reports whether name is an http or https URL.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Fetch returns the body of url, from the cache when possible.
// A 404 response yields a FILE_NOT_FOUND error and is not retried.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := "dataset:" + url
	if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
		c.Logger.Debug("dataset cache hit", "url", url)
		return data, nil
	}

	var body []byte
	err := cache.Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.get(ctx, url)
		if err != nil && cache.IsRetryable(err) {
			c.Logger.Debug("retrying download", "url", url, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.Cache.Set(ctx, key, body, c.TTL); err != nil {
		c.Logger.Warn("dataset cache write failed", "url", url, "err", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, rperrors.Wrap(rperrors.ErrCodeInvalidPath, err, "dataset url %s", url)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: GET %s: %v", cache.ErrNetwork, url, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, rperrors.New(rperrors.ErrCodeFileNotFound, "dataset %s not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("GET %s: %s", url, resp.Status))
	default:
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("read %s: %w", url, err))
	}
	if len(data) > maxBody {
		return nil, rperrors.New(rperrors.ErrCodeInvalidDataset, "dataset %s exceeds %d bytes", url, maxBody)
	}
	return data, nil
}
