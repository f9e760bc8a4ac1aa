// Package probe performs lightweight existence checks for candidate profile URLs.
package probe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/doppel/httpcache"
)

// Timeout is the hard per-probe deadline.
const Timeout = 6 * time.Second

// maxBodySample bounds how much of a GET body is read for the login-wall check.
const maxBodySample = 64 * 1024

// Outcome is the result of probing a single URL. Probes never fail; network
// errors and timeouts surface as Exists=false.
type Outcome struct {
	URL        string
	Exists     bool
	StatusCode int
}

// Prober checks whether candidate profile URLs exist.
type Prober struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Prober.
type Option func(*config)

type config struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// New creates a Prober.
func New(opts ...Option) *Prober {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}

	return &Prober{httpClient: client, logger: cfg.logger}
}

// Probe checks whether url points at an existing profile. HEAD is tried
// first; platforms that reject or mishandle HEAD fall back to GET so they
// don't read as false negatives. A URL exists when the status is in
// [200,400) and the body, when fetched, doesn't look like a login wall.
func (p *Prober) Probe(ctx context.Context, url string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	outcome := Outcome{URL: url}

	status, err := p.request(ctx, http.MethodHead, url, nil)
	if err != nil || !headConclusive(status) {
		var body string
		status, err = p.request(ctx, http.MethodGet, url, &body)
		if err != nil {
			p.logger.DebugContext(ctx, "probe failed", "url", url, "error", err)
			return outcome
		}
		outcome.StatusCode = status
		outcome.Exists = status >= 200 && status < 400 && !looksLikeLoginWall(body)
		return outcome
	}

	outcome.StatusCode = status
	outcome.Exists = status >= 200 && status < 400
	return outcome
}

// request issues one HTTP request. When body is non-nil the response body is
// sampled into it.
func (p *Prober) request(ctx context.Context, method, url string, body *string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close() //nolint:errcheck // intentional

	if body != nil {
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySample))
		if readErr == nil {
			*body = string(data)
		}
	}

	return resp.StatusCode, nil
}

// headConclusive reports whether a HEAD status can be trusted. Servers that
// don't implement HEAD properly answer 403/405/501; those need a GET retry.
func headConclusive(status int) bool {
	switch status {
	case http.StatusForbidden, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return false
	default:
		return true
	}
}

// loginMarkers flag pages that redirect unknown handles to a login wall.
var loginMarkers = []string{"login", "sign in", "signup", "sign up"}

func looksLikeLoginWall(body string) bool {
	if body == "" {
		return false
	}
	lower := strings.ToLower(body)
	for _, marker := range loginMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
