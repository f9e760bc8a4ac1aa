// Package platform holds the read-only platform registry consumed by the engine.
//
// The registry is loaded once at process start and never mutated. Each entry
// names a platform, a profile URL template with a single {} placeholder for
// the candidate handle, and a category used for result grouping.
package platform

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category classifies a platform for result grouping.
type Category string

// Known categories.
const (
	CategorySocial       Category = "social"
	CategoryProfessional Category = "professional"
	CategoryGaming       Category = "gaming"
	CategoryCreative     Category = "creative"
	CategoryOther        Category = "other"
)

const placeholder = "{}"

// Platform describes one external platform. Immutable.
type Platform struct {
	Name        string   `yaml:"name"`
	URLTemplate string   `yaml:"url_template"`
	Category    Category `yaml:"category"`
}

// URLFor returns the candidate profile URL for a handle.
func (p Platform) URLFor(handle string) string {
	return strings.Replace(p.URLTemplate, placeholder, url.PathEscape(handle), 1)
}

// Domain returns the hostname of the platform's URL template, without www.
func (p Platform) Domain() string {
	return ExtractDomain(strings.Replace(p.URLTemplate, placeholder, "x", 1))
}

// Registry is an immutable, ordered set of platforms.
type Registry struct {
	platforms []Platform
}

// New validates the given platforms and builds a registry.
func New(platforms []Platform) (*Registry, error) {
	if len(platforms) == 0 {
		return nil, fmt.Errorf("platform registry is empty")
	}
	seen := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		switch {
		case p.Name == "":
			return nil, fmt.Errorf("platform with template %q has no name", p.URLTemplate)
		case !strings.Contains(p.URLTemplate, placeholder):
			return nil, fmt.Errorf("platform %q: url_template must contain %s", p.Name, placeholder)
		case !strings.HasPrefix(p.URLTemplate, "https://") && !strings.HasPrefix(p.URLTemplate, "http://"):
			return nil, fmt.Errorf("platform %q: url_template must be an absolute http(s) URL", p.Name)
		case seen[strings.ToLower(p.Name)]:
			return nil, fmt.Errorf("duplicate platform %q", p.Name)
		}
		seen[strings.ToLower(p.Name)] = true
	}
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	for i := range out {
		if out[i].Category == "" {
			out[i].Category = CategoryOther
		}
	}
	return &Registry{platforms: out}, nil
}

// Load reads a registry from a YAML file.
//
// The file is a list of entries:
//
//	- name: github
//	  url_template: https://github.com/{}
//	  category: professional
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied configuration
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var platforms []Platform
	if err := yaml.Unmarshal(data, &platforms); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return New(platforms)
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(defaultPlatforms)
	if err != nil {
		panic("default platform registry invalid: " + err.Error())
	}
	return r
}

// All returns a copy of the registered platforms in order.
func (r *Registry) All() []Platform {
	out := make([]Platform, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// Len returns the number of registered platforms.
func (r *Registry) Len() int { return len(r.platforms) }

// Filter returns the platforms whose names appear in names, preserving
// registry order. Empty names means all platforms. Unknown names are ignored.
func (r *Registry) Filter(names []string) []Platform {
	if len(names) == 0 {
		return r.All()
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var out []Platform
	for _, p := range r.platforms {
		if want[strings.ToLower(p.Name)] {
			out = append(out, p)
		}
	}
	return out
}

// defaultPlatforms is the built-in registry. URL patterns follow each
// platform's public profile scheme.
var defaultPlatforms = []Platform{
	{Name: "github", URLTemplate: "https://github.com/{}", Category: CategoryProfessional},
	{Name: "twitter", URLTemplate: "https://twitter.com/{}", Category: CategorySocial},
	{Name: "instagram", URLTemplate: "https://instagram.com/{}", Category: CategorySocial},
	{Name: "tiktok", URLTemplate: "https://tiktok.com/@{}", Category: CategorySocial},
	{Name: "reddit", URLTemplate: "https://reddit.com/user/{}", Category: CategorySocial},
	{Name: "youtube", URLTemplate: "https://youtube.com/@{}", Category: CategoryCreative},
	{Name: "medium", URLTemplate: "https://medium.com/@{}", Category: CategoryCreative},
	{Name: "devto", URLTemplate: "https://dev.to/{}", Category: CategoryProfessional},
	{Name: "linkedin", URLTemplate: "https://linkedin.com/in/{}", Category: CategoryProfessional},
	{Name: "bluesky", URLTemplate: "https://bsky.app/profile/{}.bsky.social", Category: CategorySocial},
	{Name: "mastodon", URLTemplate: "https://mastodon.social/@{}", Category: CategorySocial},
	{Name: "pinterest", URLTemplate: "https://pinterest.com/{}", Category: CategorySocial},
	{Name: "twitch", URLTemplate: "https://twitch.tv/{}", Category: CategoryGaming},
	{Name: "steam", URLTemplate: "https://steamcommunity.com/id/{}", Category: CategoryGaming},
	{Name: "behance", URLTemplate: "https://behance.net/{}", Category: CategoryCreative},
	{Name: "dribbble", URLTemplate: "https://dribbble.com/{}", Category: CategoryCreative},
	{Name: "soundcloud", URLTemplate: "https://soundcloud.com/{}", Category: CategoryCreative},
	{Name: "vkontakte", URLTemplate: "https://vk.com/{}", Category: CategorySocial},
	{Name: "habr", URLTemplate: "https://habr.com/users/{}", Category: CategoryProfessional},
	{Name: "linktree", URLTemplate: "https://linktr.ee/{}", Category: CategoryOther},
}
