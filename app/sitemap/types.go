package sitemap

import (
	"context"
	"fmt"
	"time"
)

// Protocol limit: maximum number of <url> elements per sitemap document.
const EntryCap = 50000

// ChangeFreq is the sitemaps.org change frequency hint.
type ChangeFreq string

const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// IsValid reports whether f is one of the enumerated frequencies.
// The empty string is valid as "unset".
func (f ChangeFreq) IsValid() bool {
	switch f {
	case "", ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily,
		ChangeFreqWeekly, ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	}
	return false
}

// Metadata is a sparse set of per-entry hints. Unset fields are inherited
// through the defaults -> route -> slug overlay chain.
type Metadata struct {
	LastMod    *time.Time
	ChangeFreq ChangeFreq
	Priority   *float64
}

// Overlay returns m with every field that is set in o replacing m's value.
func (m Metadata) Overlay(o *Metadata) Metadata {
	if o == nil {
		return m
	}
	out := m
	if o.LastMod != nil {
		out.LastMod = o.LastMod
	}
	if o.ChangeFreq != "" {
		out.ChangeFreq = o.ChangeFreq
	}
	if o.Priority != nil {
		out.Priority = o.Priority
	}
	return out
}

// Entry is one <url> element of the final output: an absolute,
// percent-encoded location plus its resolved metadata.
type Entry struct {
	Loc string
	Metadata
}

// Slug is a concrete value set substituted into a parametrized route path.
// Exactly one of Value (single-parameter routes) or Params (multi-parameter
// routes) is populated. Meta carries optional per-slug metadata overrides.
type Slug struct {
	Value  string
	Params map[string]string
	Meta   *Metadata
}

// SlugSource produces the slug list for a parametrized route. Sources backed
// by slow storage are resolved concurrently across routes; a source that
// never returns stalls the whole generation, which is the source's problem
// to solve, not ours.
type SlugSource func(ctx context.Context) ([]Slug, error)

// Route describes one path template. Parametrized templates (containing
// ":name" segments) need either a literal slug list or a slug source, never
// both.
type Route struct {
	Path    string
	Meta    *Metadata
	Slugs   []Slug
	Source  SlugSource
	Exclude bool
}

// URL is an explicitly configured entry: an absolute or origin-relative
// location with optional metadata overrides.
type URL struct {
	Loc  string
	Meta *Metadata
}

// Config is the full input of one generation run. It is read once and never
// mutated by the pipeline.
type Config struct {
	BaseURL       string
	Defaults      Metadata
	Routes        []Route
	URLs          []URL
	TrailingSlash bool
	Pretty        bool
}

// ParseTime normalizes the accepted last-modification forms (time.Time,
// epoch milliseconds, RFC 3339 or plain date strings) to a UTC instant.
func ParseTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case *time.Time:
		return t.UTC(), nil
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case float64:
		return time.UnixMilli(int64(t)).UTC(), nil
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized time value %q", t)
	default:
		return time.Time{}, fmt.Errorf("unsupported time value of type %T", v)
	}
}
