// Package doppel discovers candidate identity profiles across social
// platforms for a free-text query.
//
// Basic usage:
//
//	results, err := doppel.Search(ctx, profile.Query{Text: "john doe"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.URL, r.Confidence)
//	}
//
// Two discovery vectors run per platform: direct probing of generated
// handle variations, and search-engine discovery of profile URLs when a
// Brave Search credential is configured. Every hit is fetched, scored
// against the query evidence, then deduplicated and ranked.
package doppel

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/doppel/auth"
	"github.com/codeGROOVE-dev/doppel/dork"
	"github.com/codeGROOVE-dev/doppel/httpcache"
	"github.com/codeGROOVE-dev/doppel/platform"
	"github.com/codeGROOVE-dev/doppel/probe"
	"github.com/codeGROOVE-dev/doppel/profile"
	"github.com/codeGROOVE-dev/doppel/rank"
	"github.com/codeGROOVE-dev/doppel/scrape"
	"github.com/codeGROOVE-dev/doppel/score"
	"github.com/codeGROOVE-dev/doppel/variation"
)

const (
	// probesPerPlatform bounds how many handle variations are probed
	// directly on each platform.
	probesPerPlatform = 3
	// defaultConcurrency bounds simultaneous platform/vector tasks.
	defaultConcurrency = 8
)

// Option configures a Search call.
type Option func(*config)

type config struct {
	registry    *platform.Registry
	logger      *slog.Logger
	cache       httpcache.Cacher
	apiKey      string
	httpClient  *http.Client
	cookies     []auth.Source
	concurrency int
}

// WithRegistry replaces the built-in platform registry.
func WithRegistry(r *platform.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHTTPCache sets the HTTP cache shared by fetches and search calls.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithAPIKey sets the search provider credential for the discovery vector.
// Without a key (or the DOPPEL_BRAVE_API_KEY variable) that vector is skipped.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithHTTPClient sets the HTTP client used for probes and fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithCookieSource appends a cookie source for authenticated platforms.
func WithCookieSource(src auth.Source) Option {
	return func(c *config) { c.cookies = append(c.cookies, src) }
}

// WithConcurrency bounds how many platform/vector tasks run at once.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// Search runs every discovery vector for the query and returns ranked,
// deduplicated results. Individual platform failures are logged and
// absorbed; only invalid input or context cancellation produce an error.
func Search(ctx context.Context, q profile.Query, opts ...Option) ([]profile.SearchResult, error) {
	cfg := &config{logger: slog.Default(), concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(cfg)
	}

	if strings.TrimSpace(q.Text) == "" {
		return nil, profile.ErrEmptyQuery
	}

	registry := cfg.registry
	if registry == nil {
		registry = platform.Default()
	}
	platforms := registry.All()
	if len(q.Platforms) > 0 {
		platforms = registry.Filter(q.Platforms)
		if len(platforms) == 0 {
			return nil, profile.ErrNoPlatforms
		}
	}

	eng := newEngine(cfg)

	handles := variation.Generate(q.Text)
	if len(handles) > probesPerPlatform {
		handles = handles[:probesPerPlatform]
	}

	cfg.logger.InfoContext(ctx, "starting identity search",
		"query", q.Text, "platforms", len(platforms), "probe_handles", len(handles),
		"discovery_enabled", eng.dork.Enabled())

	var (
		mu      sync.Mutex
		results []profile.SearchResult
	)
	collect := func(rs []profile.SearchResult) {
		if len(rs) == 0 {
			return
		}
		mu.Lock()
		results = append(results, rs...)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for _, plat := range platforms {
		g.Go(func() error {
			collect(eng.runVector(gctx, "probe", plat, func(ctx context.Context) []profile.SearchResult {
				return eng.probeVector(ctx, plat, handles, q)
			}))
			return nil
		})

		if !eng.dork.Enabled() {
			continue
		}
		g.Go(func() error {
			collect(eng.runVector(gctx, "discovery", plat, func(ctx context.Context) []profile.SearchResult {
				return eng.dorkVector(ctx, plat, q)
			}))
			return nil
		})
	}

	_ = g.Wait() // tasks never return errors; failures are absorbed per vector
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := rank.Results(results)
	cfg.logger.InfoContext(ctx, "identity search complete",
		"raw_results", len(results), "ranked_results", len(ranked))
	return ranked, nil
}

// engine bundles the per-search clients so both vectors share one HTTP
// cache, cookie chain, and logger.
type engine struct {
	prober  *probe.Prober
	fetcher *scrape.Fetcher
	dork    *dork.Client
	logger  *slog.Logger
}

func newEngine(cfg *config) *engine {
	probeOpts := []probe.Option{probe.WithLogger(cfg.logger)}
	scrapeOpts := []scrape.Option{scrape.WithLogger(cfg.logger)}
	dorkOpts := []dork.Option{dork.WithLogger(cfg.logger)}

	if cfg.httpClient != nil {
		probeOpts = append(probeOpts, probe.WithHTTPClient(cfg.httpClient))
		scrapeOpts = append(scrapeOpts, scrape.WithHTTPClient(cfg.httpClient))
		dorkOpts = append(dorkOpts, dork.WithHTTPClient(cfg.httpClient))
	}
	if cfg.cache != nil {
		scrapeOpts = append(scrapeOpts, scrape.WithHTTPCache(cfg.cache))
		dorkOpts = append(dorkOpts, dork.WithHTTPCache(cfg.cache))
	}
	for _, src := range cfg.cookies {
		scrapeOpts = append(scrapeOpts, scrape.WithCookieSource(src))
	}
	if cfg.apiKey != "" {
		dorkOpts = append(dorkOpts, dork.WithAPIKey(cfg.apiKey))
	}

	return &engine{
		prober:  probe.New(probeOpts...),
		fetcher: scrape.New(scrapeOpts...),
		dork:    dork.New(dorkOpts...),
		logger:  cfg.logger,
	}
}

// runVector executes one platform/vector task, containing any panic so a
// single misbehaving platform cannot take down the whole search.
func (e *engine) runVector(ctx context.Context, vector string, plat platform.Platform, fn func(context.Context) []profile.SearchResult) (results []profile.SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "vector panicked",
				"vector", vector, "platform", plat.Name, "panic", r)
			results = nil
		}
	}()
	return fn(ctx)
}

// probeVector checks handle variations directly against the platform's URL
// template, then fetches and scores every profile that appears to exist.
func (e *engine) probeVector(ctx context.Context, plat platform.Platform, handles []string, q profile.Query) []profile.SearchResult {
	outcomes := make([]probe.Outcome, len(handles))

	var g errgroup.Group
	for i, handle := range handles {
		g.Go(func() error {
			outcomes[i] = e.prober.Probe(ctx, plat.URLFor(handle))
			return nil
		})
	}
	_ = g.Wait() // Probe never returns an error

	var results []profile.SearchResult
	for i, out := range outcomes {
		if !out.Exists {
			continue
		}
		e.logger.DebugContext(ctx, "probe hit",
			"platform", plat.Name, "handle", handles[i], "status", out.StatusCode)
		if r, ok := e.evaluate(ctx, plat, out.URL, handles[i], q); ok {
			results = append(results, r)
		}
	}
	return results
}

// dorkVector asks the search provider for profile URLs on the platform's
// domain, then fetches and scores each candidate.
func (e *engine) dorkVector(ctx context.Context, plat platform.Platform, q profile.Query) []profile.SearchResult {
	var results []profile.SearchResult
	for _, candidate := range e.dork.Discover(ctx, plat.Domain(), q.Text) {
		username := scrape.UsernameFromURL(candidate)
		if r, ok := e.evaluate(ctx, plat, candidate, username, q); ok {
			results = append(results, r)
		}
	}
	return results
}

// evaluate fetches one candidate profile and scores it against the query.
// Profiles the fetch classifies as absent are dropped.
func (e *engine) evaluate(ctx context.Context, plat platform.Platform, urlStr, username string, q profile.Query) (profile.SearchResult, bool) {
	sp := e.fetcher.Fetch(ctx, plat, urlStr, username)
	if !sp.Found {
		return profile.SearchResult{}, false
	}

	ev := score.Score(username, q, sp.Bio, sp.Title, plat.Domain())
	return profile.SearchResult{
		Platform:     plat.Name,
		URL:          sp.URL,
		Username:     username,
		Found:        true,
		Category:     string(plat.Category),
		Confidence:   ev.Value,
		MatchReasons: ev.Reasons,
		Bio:          sp.Bio,
		ImageURL:     sp.ImageURL,
	}, true
}
