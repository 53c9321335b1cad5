package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/okulov/sitemap-gen/app/sitemap"
	"github.com/okulov/sitemap-gen/app/sources"
)

// Loader reads a YAML site description and turns it into a pipeline
// configuration with slug sources attached.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the site description file. Feed URLs are returned separately:
// fetching them is the caller's decision, not the loader's.
func (l *Loader) Load() (*sitemap.Config, []string, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read site description: %w", err)
	}

	var site SiteConfig
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, nil, fmt.Errorf("failed to parse site description: %w", err)
	}

	cfg, err := l.build(&site)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid site description %s: %w", l.path, err)
	}

	feeds := make([]string, 0, len(site.Feeds))
	for _, feed := range site.Feeds {
		if feed.URL == "" {
			return nil, nil, fmt.Errorf("invalid site description %s: feed entry has no url", l.path)
		}
		feeds = append(feeds, feed.URL)
	}

	slog.Debug("Site description loaded", "path", l.path,
		"routes", len(cfg.Routes), "urls", len(cfg.URLs), "feeds", len(feeds))

	return cfg, feeds, nil
}

func (l *Loader) build(site *SiteConfig) (*sitemap.Config, error) {
	cfg := &sitemap.Config{
		BaseURL:       site.BaseURL,
		TrailingSlash: site.TrailingSlash,
		Pretty:        site.Pretty,
	}

	defaults, err := site.Defaults.Resolve()
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	if defaults != nil {
		cfg.Defaults = *defaults
	}

	for _, route := range site.Routes {
		built, err := l.buildRoute(route)
		if err != nil {
			return nil, err
		}
		cfg.Routes = append(cfg.Routes, built)
	}

	for _, entry := range site.URLs {
		meta, err := entry.Meta.Resolve()
		if err != nil {
			return nil, fmt.Errorf("url %q: %w", entry.Loc, err)
		}
		cfg.URLs = append(cfg.URLs, sitemap.URL{Loc: entry.Loc, Meta: meta})
	}

	return cfg, nil
}

func (l *Loader) buildRoute(route Route) (sitemap.Route, error) {
	if route.Path == "" {
		return sitemap.Route{}, fmt.Errorf("route has no path")
	}

	meta, err := route.MetaConfig.Resolve()
	if err != nil {
		return sitemap.Route{}, fmt.Errorf("route %q: %w", route.Path, err)
	}

	built := sitemap.Route{
		Path:    route.Path,
		Exclude: route.Exclude,
		Meta:    meta,
	}

	for _, slug := range route.Slugs {
		slugMeta, err := slug.Meta.Resolve()
		if err != nil {
			return sitemap.Route{}, fmt.Errorf("route %q slug: %w", route.Path, err)
		}
		built.Slugs = append(built.Slugs, sitemap.Slug{
			Value:  slug.Value,
			Params: slug.Params,
			Meta:   slugMeta,
		})
	}

	if route.SlugsFrom != nil {
		if route.SlugsFrom.SQLite == nil {
			return sitemap.Route{}, fmt.Errorf("route %q: slugsFrom needs a sqlite block", route.Path)
		}
		src := route.SlugsFrom.SQLite
		if src.Query == "" {
			return sitemap.Route{}, fmt.Errorf("route %q: sqlite slug source needs a query", route.Path)
		}
		built.Source = sources.NewSQLiteSource(l.resolvePath(src.Path), src.Query).Slugs
	}

	return built, nil
}

// resolvePath interprets relative source paths relative to the site
// description file, not the working directory.
func (l *Loader) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(l.path), path)
}
