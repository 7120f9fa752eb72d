package scrabtopus

import (
	"net/url"
	"regexp"
	"strings"
)

// DeniedPathKeywords are substrings that exclude a link when found in its
// lowercased path.
var DeniedPathKeywords = []string{"policy", "terms", "cookie", "privacy", "license"}

// InScope reports whether a resolved link belongs to the crawl rooted at base:
// the hosts must be equal (subdomains are out of scope) and the path must not
// contain a denied keyword.
func InScope(resolved, base *url.URL) bool {
	if resolved == nil || base == nil {
		return false
	}
	if resolved.Host != base.Host {
		return false
	}
	path := strings.ToLower(resolved.Path)
	for _, keyword := range DeniedPathKeywords {
		if strings.Contains(path, keyword) {
			return false
		}
	}
	return true
}

// NormalizeURL returns a copy of u reduced to scheme, host, path and query.
// The host is lowercased and an empty path becomes "/".
func NormalizeURL(u *url.URL) *url.URL {
	n := *u
	n.Fragment = ""
	n.RawFragment = ""
	n.User = nil
	n.Host = strings.ToLower(n.Host)
	if n.Host != "" && n.Path == "" {
		n.Path = "/"
		n.RawPath = ""
	}
	return &n
}

// ParseSeed parses and normalizes a seed URL. Only absolute http(s) URLs
// are accepted. Unparseable input is reported as ERESOLVE, anything else
// rejected as EINVALID.
func ParseSeed(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, Errorf(ERESOLVE, "invalid seed URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "seed URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL %q has no host", rawURL)
	}
	return NormalizeURL(u), nil
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns into a URLFilter.
// It returns nil when no patterns are given.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
