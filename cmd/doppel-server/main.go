// Command doppel-server exposes the identity search engine over HTTP.
//
// Endpoints:
//
//	POST /api/search  {"query": "john doe", "location": "London"}
//	GET  /healthz
//
// Configuration comes from the environment (a .env file is honored):
// PORT for the listen address, DOPPEL_BRAVE_API_KEY for search-engine
// discovery, DOPPEL_CACHE_TTL to override the HTTP cache lifetime.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeGROOVE-dev/doppel"
	"github.com/codeGROOVE-dev/doppel/auth"
	"github.com/codeGROOVE-dev/doppel/httpcache"
	"github.com/codeGROOVE-dev/doppel/server"
)

func main() {
	_ = godotenv.Load() // non-fatal if missing

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	cacheTTL := 24 * time.Hour
	if v := os.Getenv("DOPPEL_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			logger.Warn("invalid DOPPEL_CACHE_TTL, using default", "value", v, "error", err)
		} else {
			cacheTTL = ttl
		}
	}

	searchOpts := []doppel.Option{
		doppel.WithLogger(logger),
		doppel.WithCookieSource(auth.EnvSource{}),
	}
	cache, err := httpcache.New(cacheTTL)
	if err != nil {
		logger.Warn("failed to initialize cache, continuing without cache", "error", err)
	} else {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("failed to close cache", "error", err)
			}
		}()
		searchOpts = append(searchOpts, doppel.WithHTTPCache(cache))
	}

	srv := server.New(
		server.WithLogger(logger),
		server.WithSearchOptions(searchOpts...),
	)

	logger.Info("starting doppel server", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil { //nolint:gosec // timeouts bounded per request by the engine
		logger.Error("server error", "error", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}
}
