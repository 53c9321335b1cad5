package sitemap

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Resolver turns candidate locations (absolute or origin-relative) into
// final absolute, percent-encoded URLs.
type Resolver struct {
	baseURL       string
	trailingSlash bool
}

func NewResolver(baseURL string, trailingSlash bool) *Resolver {
	return &Resolver{
		baseURL:       strings.TrimRight(baseURL, "/"),
		trailingSlash: trailingSlash,
	}
}

// Run resolves one candidate location. Candidates carrying a scheme are used
// as-is; everything else is joined onto the configured origin.
func (r *Resolver) Run(candidate string) (string, error) {
	var absolute string

	if hasScheme(candidate) {
		absolute = candidate
	} else {
		if r.baseURL == "" {
			return "", &ConfigurationError{
				Msg: fmt.Sprintf("base URL is required to resolve relative location %q", candidate),
			}
		}
		if candidate != "" && !strings.HasPrefix(candidate, "/") {
			candidate = "/" + candidate
		}
		absolute = r.baseURL + candidate
	}

	absolute = r.applyTrailingSlash(absolute)

	return escapeLocation(absolute), nil
}

// applyTrailingSlash normalizes the path component: with the policy enabled
// the path ends in exactly one "/" (the root path stays a single "/"); with
// the policy disabled any non-root trailing "/" is stripped.
func (r *Resolver) applyTrailingSlash(u string) string {
	prefix, path, query := splitURL(u)

	if r.trailingSlash {
		if path == "" || path == "/" {
			path = "/"
		} else {
			path = strings.TrimRight(path, "/") + "/"
		}
	} else {
		if path != "/" {
			path = strings.TrimRight(path, "/")
		}
	}

	return prefix + path + query
}

// splitURL separates an absolute URL into the scheme+host prefix, the path,
// and the query (including its "?").
func splitURL(u string) (prefix, path, query string) {
	rest := u
	if i := strings.Index(u, "://"); i >= 0 {
		if j := strings.IndexByte(u[i+3:], '/'); j >= 0 {
			prefix, rest = u[:i+3+j], u[i+3+j:]
		} else {
			return u, "", ""
		}
	}
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		return prefix, rest[:q], rest[q:]
	}
	return prefix, rest, ""
}

func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for _, r := range s[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// escapeLocation percent-encodes spaces, quotes, angle brackets and every
// non-ASCII code point, after NFC normalization so visually identical
// locations encode identically. Already-encoded sequences and reserved
// characters pass through untouched; "&" is left for the XML layer.
func escapeLocation(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteString("%20")
		case r == '"':
			b.WriteString("%22")
		case r == '\'':
			b.WriteString("%27")
		case r == '<':
			b.WriteString("%3C")
		case r == '>':
			b.WriteString("%3E")
		case r > unicode.MaxASCII:
			for _, byt := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", byt)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
