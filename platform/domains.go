package platform

import (
	"net/url"
	"sort"
	"strings"
)

// knownSocialDomains contains domains of established platforms. The evidence
// scorer treats a bio link to any of these as a cross-platform signal.
var knownSocialDomains = map[string]bool{
	"github.com": true, "gitlab.com": true, "bitbucket.org": true, "codeberg.org": true,
	"twitter.com": true, "x.com": true, "facebook.com": true, "instagram.com": true,
	"linkedin.com": true, "tiktok.com": true, "youtube.com": true, "twitch.tv": true,
	"reddit.com": true, "discord.com": true, "telegram.org": true,
	"medium.com": true, "substack.com": true, "dev.to": true, "hashnode.dev": true,
	"stackoverflow.com": true, "stackexchange.com": true,
	"keybase.io": true, "bsky.app": true, "mastodon.social": true,
	"vk.com": true, "weibo.com": true, "habr.com": true,
	"pinterest.com": true, "tumblr.com": true, "flickr.com": true,
	"soundcloud.com": true, "spotify.com": true, "bandcamp.com": true,
	"behance.net": true, "dribbble.com": true, "steamcommunity.com": true,
	"patreon.com": true, "ko-fi.com": true, "buymeacoffee.com": true,
	"linktree.com": true, "linktr.ee": true, "bio.link": true,
}

// IsKnownSocialDomain returns true if the domain belongs to a known platform.
func IsKnownSocialDomain(domain string) bool {
	domain = strings.ToLower(domain)

	if knownSocialDomains[domain] {
		return true
	}

	// Check if it's a subdomain of a known platform
	for known := range knownSocialDomains {
		if strings.HasSuffix(domain, "."+known) {
			return true
		}
	}

	return false
}

// KnownSocialDomains returns the known platform domains in sorted order.
func KnownSocialDomains() []string {
	out := make([]string, 0, len(knownSocialDomains))
	for d := range knownSocialDomains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ExtractDomain extracts the domain from a URL, stripping www. prefix and lowercasing.
func ExtractDomain(urlStr string) string {
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return host
}
