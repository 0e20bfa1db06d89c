package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	ClassURL    = "http://api-gw.it.umich.edu/Curriculum/SOC/v1"
	BuildingURL = "http://api-gw.it.umich.edu/Facilities/Buildings/v1"
)

// Requester makes requests to a catalog API and returns their JSON content
type Requester interface {
	Request(ctx context.Context, path string) (map[string]any, error)
}

type ClientConfig struct {
	BaseURL           string
	AccessKey         string // Like "Bearer abcdef1234567890..."
	Retries           uint64
	RetryWait         time.Duration
	RequestsPerWindow int
	Window            time.Duration
	Timeout           time.Duration
}

func (config *ClientConfig) setDefaults() {
	if config.RetryWait <= 0 {
		config.RetryWait = time.Minute
	}
	if config.RequestsPerWindow <= 0 {
		config.RequestsPerWindow = RequestsPerWindow
	}
	if config.Window <= 0 {
		config.Window = Window
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
}

// Client is a thin wrapper around a catalog API. It rate-limits and retries requests, and caches their responses.
type Client struct {
	config  ClientConfig
	http    *http.Client
	limiter *rateLimiter
	cache   Cache
	log     zerolog.Logger
}

// NewClient creates a client. A nil cache keeps responses in memory only.
func NewClient(config ClientConfig, cache Cache, log zerolog.Logger) *Client {
	config.setDefaults()
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		limiter: newRateLimiter(config.RequestsPerWindow, config.Window),
		cache:   cache,
		log:     log,
	}
}

// Request makes a request and parses its result as JSON. The path is relative to the base URL, like "/Terms".
func (client *Client) Request(ctx context.Context, path string) (map[string]any, error) {
	if cached, ok := client.cache.Lookup(path); ok {
		client.log.Debug().Str("path", path).Msg("cache hit")
		return cached, nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(client.config.RetryWait), client.config.Retries),
		ctx,
	)
	attempt := uint64(0)
	response, err := backoff.RetryNotifyWithData(
		func() (map[string]any, error) {
			attempt++
			return client.tryRequest(ctx, path)
		},
		policy,
		func(err error, wait time.Duration) {
			client.log.Info().
				Str("path", path).
				Err(err).
				Uint64("remaining_tries", client.config.Retries-attempt+1).
				Dur("wait", wait).
				Msg("request failed, retrying")
		},
	)
	if err != nil {
		var syntaxError *json.SyntaxError
		if errors.As(err, &syntaxError) {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return nil, err
	}

	client.cache.Store(path, response)
	return response, nil
}

// tryRequest makes a single request. Only responses that are not valid JSON (e.g. an authentication page) are retried.
func (client *Client) tryRequest(ctx context.Context, path string) (map[string]any, error) {
	if err := client.limiter.wait(ctx, func(delay time.Duration) {
		client.log.Info().Dur("delay", delay).Msg("rate limit reached, waiting")
	}); err != nil {
		return nil, backoff.Permanent(err)
	}
	requests := client.limiter.requestMade()
	client.log.Debug().Str("path", path).Int("recent_requests", requests).Msg("request made")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.config.BaseURL+path, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	request.Header.Set("Authorization", client.config.AccessKey)
	request.Header.Set("Accept", "application/json")

	httpResponse, err := client.http.Do(request)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("request %q failed: %w", path, err))
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("cannot read response of %q: %w", path, err))
	}

	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	return response, nil
}
