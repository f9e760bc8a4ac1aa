// Package dork discovers candidate profile URLs through a web search
// provider, restricted to a single platform domain. This is the second
// discovery vector next to direct handle probing.
//
// The provider is the Brave Search API. When no API key is configured the
// client is disabled and every lookup returns an empty slice; that is an
// expected state, not an error.
package dork

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/doppel/httpcache"
	"github.com/codeGROOVE-dev/doppel/platform"
)

// EnvAPIKey is the environment variable holding the search API credential.
const EnvAPIKey = "DOPPEL_BRAVE_API_KEY"

const defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// maxCandidates caps how many URLs a lookup returns per platform.
const maxCandidates = 4

// Client wraps the search provider.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// WithAPIKey sets the search API credential explicitly.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithEndpoint overrides the provider endpoint, used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *config) { c.endpoint = endpoint }
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// New creates a discovery client. The API key falls back to EnvAPIKey.
func New(opts ...Option) *Client {
	cfg := &config{
		endpoint: defaultEndpoint,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.apiKey == "" {
		cfg.apiKey = os.Getenv(EnvAPIKey)
	}

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: 6 * time.Second}
	}

	return &Client{
		apiKey:     cfg.apiKey,
		endpoint:   cfg.endpoint,
		httpClient: client,
		cache:      cfg.cache,
		logger:     cfg.logger,
	}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Discover returns up to maxCandidates profile URLs on the given domain for
// the query text. Provider failures and a missing credential both yield an
// empty slice; vector B simply contributes nothing for that platform.
func (c *Client) Discover(ctx context.Context, domain, query string) []string {
	if !c.Enabled() {
		return nil
	}

	params := url.Values{}
	params.Set("q", "site:"+domain+" \""+query+"\"")
	params.Set("count", strconv.Itoa(maxCandidates * 2))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		c.logger.DebugContext(ctx, "search provider lookup failed", "domain", domain, "error", err)
		return nil
	}

	var result struct {
		Web struct {
			Results []struct {
				URL string `json:"url"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.DebugContext(ctx, "search provider parse failed", "domain", domain, "error", err)
		return nil
	}

	var candidates []string
	seen := make(map[string]bool)
	for _, r := range result.Web.Results {
		if !isProfileURL(r.URL, domain) {
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(r.URL, "/"))
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, r.URL)
		if len(candidates) == maxCandidates {
			break
		}
	}

	c.logger.DebugContext(ctx, "search discovery", "domain", domain, "candidates", len(candidates))
	return candidates
}

// nonProfilePaths are path prefixes that never point at a user profile.
var nonProfilePaths = []string{
	"/search", "/login", "/signup", "/signin", "/register",
	"/help", "/about", "/legal", "/terms", "/privacy", "/explore",
	"/settings", "/tag", "/tags", "/hashtag",
}

// isProfileURL keeps only candidate URLs on the requested domain whose path
// doesn't match a known non-profile pattern.
func isProfileURL(rawURL, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := platform.ExtractDomain(rawURL)
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return false
	}

	path := strings.ToLower(parsed.Path)
	if path == "" || path == "/" {
		return false
	}
	for _, prefix := range nonProfilePaths {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
