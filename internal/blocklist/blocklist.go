// Package blocklist decides which link domains are never worth summarizing.
package blocklist

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// List is a static set of registrable domains, loaded once at startup and
// read-only thereafter.
type List struct {
	domains map[string]struct{}
}

// Load reads one registrable domain per line from path. The file must exist;
// unlike the dedup log it is operator-maintained and never auto-created.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blocklist: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse builds a List from newline-separated domains. Blank lines and
// leading/trailing whitespace are ignored.
func Parse(text string) *List {
	domains := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		domains[line] = struct{}{}
	}
	return &List{domains: domains}
}

// Contains reports whether the registrable domain is blocked.
func (l *List) Contains(domain string) bool {
	_, ok := l.domains[strings.ToLower(domain)]
	return ok
}

// Len returns the number of blocked domains.
func (l *List) Len() int {
	return len(l.domains)
}

// NormalizeURL strips a leading "amp." segment from the host so AMP mirrors
// and their canonical counterparts share one blocklist decision. Anything
// unparseable is returned unchanged; the fetch will surface the real error.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := u.Hostname()
	if !strings.HasPrefix(strings.ToLower(host), "amp.") {
		return raw
	}
	stripped := host[len("amp."):]
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(stripped, port)
	} else {
		u.Host = stripped
	}
	return u.String()
}

// RegistrableDomain extracts the public-suffix-aware registrable domain of
// a URL, e.g. "sub.news.example.co.uk" -> "example.co.uk". Blocklist entries
// therefore match regardless of subdomain.
func RegistrableDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("extract registrable domain: %w", err)
	}
	return domain, nil
}
