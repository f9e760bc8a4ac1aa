// Package scrape fetches candidate profile pages and extracts identity signals.
package scrape

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/doppel/auth"
	"github.com/codeGROOVE-dev/doppel/htmlutil"
	"github.com/codeGROOVE-dev/doppel/httpcache"
	"github.com/codeGROOVE-dev/doppel/platform"
	"github.com/codeGROOVE-dev/doppel/profile"
)

// Timeout is the hard per-fetch deadline.
const Timeout = 8 * time.Second

// visibleTextSample is how much visible page text the soft-404 check scans.
const visibleTextSample = 1000

// restrictedBio marks profiles behind a login wall (HTTP 401/403).
const restrictedBio = "restricted/private"

// Fetcher retrieves profile pages and turns them into ScrapedProfiles.
// Fetch never returns an error; every failure mode is a representable
// outcome (Found=false or Restricted=true).
type Fetcher struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	cookies    []auth.Source
	logger     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*config)

type config struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	cookies    []auth.Source
	logger     *slog.Logger
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

// WithCookieSource appends a cookie source consulted per platform before
// fetching. Sources are tried in order; the first with cookies wins.
func WithCookieSource(src auth.Source) Option {
	return func(c *config) { c.cookies = append(c.cookies, src) }
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}

	return &Fetcher{
		httpClient: client,
		cache:      cfg.cache,
		cookies:    cfg.cookies,
		logger:     cfg.logger,
	}
}

// Fetch retrieves a candidate profile URL and extracts identity signals.
// The username is the candidate handle this URL was derived from.
func (f *Fetcher) Fetch(ctx context.Context, plat platform.Platform, urlStr, username string) profile.ScrapedProfile {
	notFound := profile.ScrapedProfile{Platform: plat.Name, URL: urlStr, Username: username}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return notFound
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	f.attachCookies(ctx, req, plat.Name)

	// Single attempt: a failed profile fetch scores as absence, retrying
	// only slows the whole sweep down.
	body, err := httpcache.FetchURLOnce(ctx, f.cache, f.httpClient, req, f.logger)
	if err != nil {
		var httpErr *httpcache.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				// Real profiles commonly hide behind a login wall;
				// 401/403 indicates presence, not absence.
				return profile.ScrapedProfile{
					Platform:   plat.Name,
					URL:        urlStr,
					Username:   username,
					Found:      true,
					Restricted: true,
					Bio:        restrictedBio,
				}
			default:
				return notFound
			}
		}
		f.logger.DebugContext(ctx, "fetch failed", "url", urlStr, "error", err)
		return notFound
	}

	return parse(plat, urlStr, username, string(body))
}

// parse extracts identity signals from a 200 response body.
func parse(plat platform.Platform, urlStr, username, content string) profile.ScrapedProfile {
	p := profile.ScrapedProfile{
		Platform: plat.Name,
		URL:      urlStr,
		Username: username,
		Found:    true,
		Title:    htmlutil.Title(content),
		ImageURL: htmlutil.ImageURL(content),
	}

	// Signal priority: embedded structured data, then Open Graph, then the
	// generic description meta tag (htmlutil.Description tries both).
	if desc := htmlutil.StructuredDescription(content); desc != "" {
		p.Bio = desc
		p.HasStructuredData = true
	} else {
		p.Bio = htmlutil.Description(content)
	}

	if isSoft404(p.Title, content, p.Bio) {
		return profile.ScrapedProfile{Platform: plat.Name, URL: urlStr, Username: username}
	}

	return p
}

// soft404Markers flag 200 responses whose content says the profile is absent.
var soft404Markers = []string{
	"page not found",
	"user not found",
	"profile not found",
	"doesn't exist",
	"does not exist",
	"couldn't find",
	"could not find",
	"isn't available",
	"not available",
}

func isSoft404(title, content, bio string) bool {
	haystack := strings.ToLower(title + " " + htmlutil.VisibleText(content, visibleTextSample))
	for _, marker := range soft404Markers {
		if strings.Contains(haystack, marker) {
			return true
		}
	}
	// A noindex page with no bio is another absence tell.
	return htmlutil.NoIndex(content) && bio == ""
}

func (f *Fetcher) attachCookies(ctx context.Context, req *http.Request, platformName string) {
	if len(f.cookies) == 0 {
		return
	}
	cookies, err := auth.Chain(ctx, platformName, f.cookies...)
	if err != nil || len(cookies) == 0 {
		return
	}
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

// UsernameFromURL extracts the handle segment from a profile URL, used for
// search-discovered candidates where no generated variation applies.
func UsernameFromURL(urlStr string) string {
	urlStr = strings.TrimPrefix(urlStr, "https://")
	urlStr = strings.TrimPrefix(urlStr, "http://")

	parts := strings.Split(urlStr, "/")
	if len(parts) < 2 {
		return ""
	}

	// Common path segments to skip
	skipPaths := map[string]bool{
		"in": true, "profile": true, "users": true, "user": true,
		"p": true, "u": true, "id": true, "people": true, "channel": true,
	}

	for _, part := range parts[1:] {
		part = strings.TrimPrefix(part, "@")
		part = strings.Split(part, "?")[0]
		part = strings.TrimSpace(part)

		if part == "" || skipPaths[strings.ToLower(part)] {
			continue
		}
		return part
	}

	return ""
}
