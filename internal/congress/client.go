package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openhill/hillbot/internal/cache"
	"github.com/openhill/hillbot/internal/logging"
)

// UpstreamError is returned when the Congress.gov API responds with a
// non-2xx status or cannot be reached.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("congress.gov: %d: %s", e.StatusCode, e.Message)
	}
	return "congress.gov: " + e.Message
}

// Client calls Congress.gov endpoints with response caching.
type Client struct {
	baseURL   string
	apiKey    string
	http      *http.Client
	cache     *cache.Cache
	listTTL   time.Duration
	entityTTL time.Duration
	log       *logging.Logger
}

type ClientOptions struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	ListTTL   time.Duration
	EntityTTL time.Duration
}

func NewClient(opts ClientOptions, c *cache.Cache, log *logging.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		apiKey:    opts.APIKey,
		http:      &http.Client{Timeout: opts.Timeout},
		cache:     c,
		listTTL:   opts.ListTTL,
		entityTTL: opts.EntityTTL,
		log:       log.Sub("congress"),
	}
}

// Result is a decoded upstream response plus the endpoint that produced it.
type Result struct {
	Endpoint string
	Data     map[string]any
	Cached   bool
}

// Call resolves the named endpoint with the given parameters, consulting
// the cache first. Path placeholders are filled from params, all
// remaining params become query string values.
func (c *Client) Call(ctx context.Context, name string, params map[string]string) (*Result, error) {
	ep, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown endpoint %q", name)
	}

	path, query, err := buildRequest(ep, params)
	if err != nil {
		return nil, err
	}

	key := cacheKey(path, query)
	if v, ok := c.cache.Get(key); ok {
		c.log.Debug().Str("endpoint", name).Str("key", key).Msg("cache hit")
		return &Result{Endpoint: name, Data: v.(map[string]any), Cached: true}, nil
	}

	data, err := c.fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}

	ttl := c.entityTTL
	if ep.TTLCategory == TTLList {
		ttl = c.listTTL
	}
	c.cache.Set(key, data, ttl)
	c.log.Debug().Str("endpoint", name).Str("key", key).Dur("ttl", ttl).Msg("cached")

	return &Result{Endpoint: name, Data: data}, nil
}

// buildRequest substitutes path placeholders and collects query params.
// A missing path param is an error, the planner should have supplied it.
func buildRequest(ep Endpoint, params map[string]string) (string, url.Values, error) {
	path := ep.PathTemplate
	used := map[string]bool{}
	for _, name := range ep.pathParams() {
		v, ok := params[name]
		if !ok || v == "" {
			return "", nil, fmt.Errorf("endpoint %s: missing required parameter %q", ep.Name, name)
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(v))
		used[name] = true
	}

	query := url.Values{}
	for k, v := range params {
		if !used[k] && v != "" {
			query.Set(k, v)
		}
	}
	return path, query, nil
}

// cacheKey builds a canonical key from the path and query params.
// Encode sorts keys and escapes values, so distinct parameter sets can
// never collide. The API key never participates in the key.
func cacheKey(path string, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		if k == "api_key" {
			continue
		}
		q[k] = vs
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")

	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("upstream error")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return data, nil
}
