package httpcache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewWithPath(time.Hour, t.TempDir())
	if err != nil {
		t.Fatalf("NewWithPath() error = %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close() //nolint:errcheck // test cleanup
	})
	return c
}

func TestURLToKey(t *testing.T) {
	a := URLToKey("https://github.com/johndoe")
	b := URLToKey("https://github.com/johndoe")
	c := URLToKey("https://github.com/janedoe")

	if a != b {
		t.Error("same URL produced different keys")
	}
	if a == c {
		t.Error("different URLs produced the same key")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}

func TestFetchURLCachesBody(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("profile body"))
	}))
	defer server.Close()

	cache := newTestCache(t)
	client := server.Client()
	ctx := context.Background()

	for range 3 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/johndoe", http.NoBody)
		if err != nil {
			t.Fatal(err)
		}
		body, err := FetchURL(ctx, cache, client, req, nil)
		if err != nil {
			t.Fatalf("FetchURL() error = %v", err)
		}
		if string(body) != "profile body" {
			t.Fatalf("body = %q", body)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("origin hits = %d, want 1 (cached)", got)
	}
}

func TestFetchURLCachesHTTPErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cache := newTestCache(t)
	client := server.Client()
	ctx := context.Background()

	for range 2 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/nobody", http.NoBody)
		if err != nil {
			t.Fatal(err)
		}
		_, fetchErr := FetchURL(ctx, cache, client, req, nil)
		var httpErr *HTTPError
		if !errors.As(fetchErr, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
			t.Fatalf("FetchURL() error = %v, want HTTPError 404", fetchErr)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("origin hits = %d, want 1 (negative response cached)", got)
	}
}

func TestFetchURLWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("direct"))
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	if err != nil {
		t.Fatal(err)
	}
	body, err := FetchURL(context.Background(), nil, server.Client(), req, nil)
	if err != nil {
		t.Fatalf("FetchURL() error = %v", err)
	}
	if string(body) != "direct" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchURLRetriesTransientErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	if err != nil {
		t.Fatal(err)
	}
	if _, fetchErr := FetchURL(context.Background(), nil, server.Client(), req, nil); fetchErr == nil {
		t.Fatal("FetchURL() error = nil, want HTTPError 503")
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("origin hits = %d, want 2 (one retry on 503)", got)
	}
}

func TestFetchURLOnceSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	if err != nil {
		t.Fatal(err)
	}
	_, fetchErr := FetchURLOnce(context.Background(), nil, server.Client(), req, nil)
	var httpErr *HTTPError
	if !errors.As(fetchErr, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("FetchURLOnce() error = %v, want HTTPError 500", fetchErr)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("origin hits = %d, want 1 (no retry)", got)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{&HTTPError{StatusCode: http.StatusServiceUnavailable}, true},
		{&HTTPError{StatusCode: http.StatusNotFound}, false},
		{&HTTPError{StatusCode: http.StatusForbidden}, false},
		{errors.New("connection refused"), true},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
