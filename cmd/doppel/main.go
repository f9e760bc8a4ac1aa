// Command doppel searches social platforms for profiles matching a name
// or handle.
//
// Usage:
//
//	doppel "john doe"
//	doppel -location London "john doe"
//	doppel -platforms github,twitter johndoe
//
// Results are printed as JSON on stdout; logs go to stderr. Set
// DOPPEL_BRAVE_API_KEY to enable search-engine discovery.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/doppel"
	"github.com/codeGROOVE-dev/doppel/auth"
	"github.com/codeGROOVE-dev/doppel/httpcache"
	"github.com/codeGROOVE-dev/doppel/platform"
	"github.com/codeGROOVE-dev/doppel/profile"
)

func main() {
	location := flag.String("location", "", "geographic hint used as scoring evidence")
	platforms := flag.String("platforms", "", "comma-separated platform names (default: all registered)")
	registryPath := flag.String("registry", "", "path to a YAML platform registry (default: built-in)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall search deadline")
	debug := flag.Bool("debug", false, "enable debug logging")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "cache time-to-live")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: doppel [options] <name or handle>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := []doppel.Option{doppel.WithLogger(logger)}

	if *registryPath != "" {
		registry, err := platform.Load(*registryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, doppel.WithRegistry(registry))
	}

	if !*noCache {
		cache, err := httpcache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			opts = append(opts, doppel.WithHTTPCache(cache))
		}
	}

	opts = append(opts, doppel.WithCookieSource(auth.EnvSource{}))
	if !*noBrowser {
		opts = append(opts, doppel.WithCookieSource(auth.NewBrowserSource(logger)))
	}

	q := profile.Query{
		Text:     strings.Join(flag.Args(), " "),
		Location: *location,
	}
	if *platforms != "" {
		for _, name := range strings.Split(*platforms, ",") {
			if name = strings.TrimSpace(name); name != "" {
				q.Platforms = append(q.Platforms, name)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	results, err := doppel.Search(ctx, q, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}
