package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinedex/cinedex/auth"
	"github.com/cinedex/cinedex/key"
	"github.com/cinedex/cinedex/log"
	"github.com/cinedex/cinedex/network"
	"github.com/cinedex/cinedex/where"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single request when no other timeout is configured.
const DefaultTimeout = 15 * time.Second

// Client talks to an OMDb-compatible API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	keyHeader string
	keyParam  string

	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	details    *cacher[string, *Details]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root, e.g. https://www.omdbapi.com.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIKey sets the key sent with every request.
func WithAPIKey(k string) Option {
	return func(c *Client) { c.apiKey = k }
}

// WithKeyHeader sends the key in the named header. An empty name sends it as a query parameter.
func WithKeyHeader(name string) Option {
	return func(c *Client) { c.keyHeader = name }
}

// WithKeyParam names the query parameter used when no key header is set.
func WithKeyParam(name string) Option {
	return func(c *Client) { c.keyParam = name }
}

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout bounds each request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit allows perSecond requests per second. Non-positive values disable limiting.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
}

// WithDetailsCache caches details lookups in the gache file at path.
func WithDetailsCache(path string, lifetime time.Duration) Option {
	return func(c *Client) {
		c.details = newCacher[string, *Details](path, lifetime, normalizedID)
	}
}

// New returns a client with the given options applied over the defaults.
func New(options ...Option) *Client {
	c := &Client{
		keyParam:   "apikey",
		httpClient: network.Client,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// FromConfig builds a client from the api.* and cache.* settings.
func FromConfig() *Client {
	apiKey, _ := auth.APIKey()

	options := []Option{
		WithBaseURL(viper.GetString(key.APIURL)),
		WithAPIKey(apiKey),
		WithKeyHeader(viper.GetString(key.APIKeyHeader)),
		WithKeyParam(viper.GetString(key.APIKeyParam)),
		WithTimeout(time.Duration(viper.GetInt(key.APITimeoutSeconds)) * time.Second),
		WithRateLimit(viper.GetInt(key.APIRateLimit)),
	}

	if viper.GetBool(key.CacheDetails) {
		lifetime := time.Duration(viper.GetInt(key.CacheDetailsHours)) * time.Hour
		options = append(options, WithDetailsCache(where.DetailsCache(), lifetime))
	}

	return New(options...)
}

// SearchMovies fetches one page of results for q.
func (c *Client) SearchMovies(ctx context.Context, q Query) (*Page, error) {
	var response searchResponse
	if err := c.get(ctx, q.Values(), &response); err != nil {
		return nil, err
	}

	if !response.ok() {
		message := response.Error
		if message == "" {
			message = "search failed"
		}
		log.WithFields(log.Fields{"query": q.Text, "page": q.Page}).Warn("search rejected: " + message)
		return nil, &SearchFailedError{Message: message}
	}

	total := len(response.Search)
	if response.TotalResults != "" {
		parsed, err := cast.ToIntE(response.TotalResults)
		if err != nil {
			return nil, &TransportError{Err: fmt.Errorf("parse totalResults %q: %w", response.TotalResults, err)}
		}
		total = parsed
	}

	log.WithFields(log.Fields{"query": q.Text, "page": q.Page, "total": total}).Info("search succeeded")
	return &Page{Items: response.Search, TotalCount: total}, nil
}

// GetMovieDetails fetches the full record for an IMDb identifier.
func (c *Client) GetMovieDetails(ctx context.Context, id string) (*Details, error) {
	if c.details != nil {
		if cached, ok := c.details.Get(id).Get(); ok {
			return cached, nil
		}
	}

	values := url.Values{}
	values.Set("i", id)
	values.Set("r", "json")

	var response detailsResponse
	if err := c.get(ctx, values, &response); err != nil {
		return nil, err
	}

	if !response.ok() || response.ID == "" {
		message := response.Error
		if message == "" {
			message = id
		}
		return nil, fmt.Errorf("%w: %s", ErrDetailsNotFound, message)
	}

	details := response.Details
	if c.details != nil {
		if err := c.details.Set(id, &details); err != nil {
			log.Warnf("caching details of %s: %v", id, err)
		}
	}

	return &details, nil
}

func (c *Client) get(ctx context.Context, values url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.keyHeader == "" && c.apiKey != "" {
		values.Set(c.keyParam, c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+values.Encode(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if c.keyHeader != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}

	log.Debugf("GET %s", redact(req.URL, c.keyParam))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error(err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("metadata API returned status code %d", resp.StatusCode)
		return &TransportError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error(err)
		return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

func redact(u *url.URL, param string) string {
	q := u.Query()
	if q.Has(param) {
		q.Set(param, "***")
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}
