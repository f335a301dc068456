package textnorm

import (
	"net/url"
	"slices"
	"strings"
)

// CanonicalURL returns a stable form of raw: lowercase scheme and host,
// default ports removed, fragment and user info dropped, a trailing slash
// trimmed from the path, and only the query parameters named in keep,
// sorted. Text that does not parse as a URL is returned trimmed and
// lowercased.
func CanonicalURL(raw string, keep []string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + strings.TrimPrefix(candidate, "//")
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return strings.ToLower(raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host += ":" + port
	}
	path := strings.TrimRight(u.EscapedPath(), "/")

	allowed := make(map[string]bool, len(keep))
	for _, k := range keep {
		allowed[strings.ToLower(k)] = true
	}
	query := url.Values{}
	for key, values := range u.Query() {
		lower := strings.ToLower(key)
		if !allowed[lower] {
			continue
		}
		for _, v := range values {
			query.Add(lower, v)
		}
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(path)
	if len(query) > 0 {
		for _, values := range query {
			slices.Sort(values)
		}
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}
