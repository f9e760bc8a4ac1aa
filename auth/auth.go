// Package auth provides session cookies for platforms that wall profiles
// behind a login. The fetcher attaches them so real, access-controlled
// profiles don't read as absent.
package auth

import (
	"context"
	"maps"
)

// Source represents a source of authentication cookies.
type Source interface {
	// Cookies returns cookies for the given platform, or nil if unavailable.
	Cookies(ctx context.Context, platform string) (map[string]string, error)
}

// Chain returns cookies from the first source that provides them.
func Chain(ctx context.Context, platform string, sources ...Source) (map[string]string, error) {
	for _, src := range sources {
		cookies, err := src.Cookies(ctx, platform)
		if err != nil {
			return nil, err
		}
		if len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, nil //nolint:nilnil // no source had cookies, but this is not an error
}

// StaticSource serves a fixed cookie set to every platform. Cookies handed
// in through engine options ride through one of these.
type StaticSource map[string]string

// NewStaticSource creates a cookie source from a fixed map.
func NewStaticSource(cookies map[string]string) StaticSource {
	return StaticSource(cookies)
}

// Cookies returns a copy of the fixed set; callers may mutate it freely.
func (s StaticSource) Cookies(_ context.Context, _ string) (map[string]string, error) {
	if len(s) == 0 {
		return nil, nil //nolint:nilnil // an empty source is not an error
	}
	return maps.Clone(map[string]string(s)), nil
}
