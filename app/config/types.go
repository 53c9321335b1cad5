package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/okulov/sitemap-gen/app/sitemap"
)

// SiteConfig is the YAML shape of a site description file.
type SiteConfig struct {
	BaseURL       string      `yaml:"baseURL"`
	TrailingSlash bool        `yaml:"trailingSlash"`
	Pretty        bool        `yaml:"pretty"`
	Defaults      MetaConfig  `yaml:"defaults"`
	Routes        []Route     `yaml:"routes"`
	URLs          []URLEntry  `yaml:"urls"`
	Feeds         []FeedEntry `yaml:"feeds"`
}

// MetaConfig carries the optional per-entry metadata fields. LastMod accepts
// a date string, an RFC 3339 timestamp, or epoch milliseconds.
type MetaConfig struct {
	LastMod    interface{} `yaml:"lastmod"`
	ChangeFreq string      `yaml:"changefreq"`
	Priority   *float64    `yaml:"priority"`
}

// IsZero reports whether no metadata field is set.
func (m MetaConfig) IsZero() bool {
	return m.LastMod == nil && m.ChangeFreq == "" && m.Priority == nil
}

// Resolve converts the YAML metadata into the pipeline's sparse form.
func (m MetaConfig) Resolve() (*sitemap.Metadata, error) {
	if m.IsZero() {
		return nil, nil
	}
	meta := &sitemap.Metadata{
		ChangeFreq: sitemap.ChangeFreq(m.ChangeFreq),
		Priority:   m.Priority,
	}
	if m.LastMod != nil {
		t, err := sitemap.ParseTime(m.LastMod)
		if err != nil {
			return nil, fmt.Errorf("invalid lastmod: %w", err)
		}
		meta.LastMod = &t
	}
	return meta, nil
}

// Route is one path template with optional metadata, an inline slug list, or
// a reference to an external slug source.
type Route struct {
	Path       string       `yaml:"path"`
	Exclude    bool         `yaml:"exclude"`
	MetaConfig `yaml:",inline"`
	Slugs      []SlugEntry  `yaml:"slugs"`
	SlugsFrom  *SlugsSource `yaml:"slugsFrom"`
}

// SlugsSource references an external slug provider for a parametrized route.
type SlugsSource struct {
	SQLite *SQLiteSource `yaml:"sqlite"`
}

// SQLiteSource queries slugs out of a content database. Single-column
// results become scalar slugs; multi-column results map column names to
// route parameters.
type SQLiteSource struct {
	Path  string `yaml:"path"`
	Query string `yaml:"query"`
}

// FeedEntry pulls URL entries out of an RSS or Atom feed.
type FeedEntry struct {
	URL string `yaml:"url"`
}

// SlugEntry accepts either a scalar slug value or a mapping. In mapping form
// the reserved keys "value", "lastmod", "changefreq" and "priority" carry
// the value and metadata overrides; every other key is a route parameter.
type SlugEntry struct {
	Value  string
	Params map[string]string
	Meta   MetaConfig
}

func (s *SlugEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Value = node.Value
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("slug must be a scalar or a mapping, got %s", nodeKind(node))
	}

	var raw map[string]interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	for key, value := range raw {
		switch key {
		case "value":
			s.Value = fmt.Sprintf("%v", value)
		case "lastmod":
			s.Meta.LastMod = value
		case "changefreq":
			s.Meta.ChangeFreq = fmt.Sprintf("%v", value)
		case "priority":
			f, ok := toFloat(value)
			if !ok {
				return fmt.Errorf("slug priority must be a number, got %v", value)
			}
			s.Meta.Priority = &f
		default:
			if s.Params == nil {
				s.Params = make(map[string]string)
			}
			s.Params[key] = fmt.Sprintf("%v", value)
		}
	}
	return nil
}

// URLEntry accepts either a bare location string or a mapping with metadata.
type URLEntry struct {
	Loc  string
	Meta MetaConfig
}

func (u *URLEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		u.Loc = node.Value
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("url entry must be a string or a mapping, got %s", nodeKind(node))
	}

	var raw struct {
		Loc        string `yaml:"loc"`
		MetaConfig `yaml:",inline"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	u.Loc = raw.Loc
	u.Meta = raw.MetaConfig
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	default:
		return "unknown node"
	}
}
