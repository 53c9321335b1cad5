// Package sitemap implements the generation pipeline: a declarative site
// description goes in, a set of sitemaps.org-conformant XML documents comes
// out. The pipeline is pure and deterministic; reading configuration and
// writing files belong to the callers.
package sitemap

import (
	"context"
	"strings"
)

// Generate runs the full pipeline over one configuration and returns the
// document set keyed by name ("sitemap", or "sitemap-part-N" plus
// "sitemap-index" when the entry cap forces a split). Either the complete,
// valid document set is returned or an error and no output.
func Generate(ctx context.Context, cfg Config) (map[string]string, error) {
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	resolver := NewResolver(cfg.BaseURL, cfg.TrailingSlash)

	routeEntries, err := NewExpander(resolver, cfg.Defaults).Run(ctx, cfg.Routes)
	if err != nil {
		return nil, err
	}

	urlEntries := make([]Entry, 0, len(cfg.URLs))
	for _, u := range cfg.URLs {
		loc, err := resolver.Run(u.Loc)
		if err != nil {
			return nil, err
		}
		urlEntries = append(urlEntries, Entry{Loc: loc, Metadata: cfg.Defaults.Overlay(u.Meta)})
	}

	entries := NewMerger().Run(routeEntries, urlEntries)

	indexBase := ""
	if hasScheme(cfg.BaseURL) {
		indexBase = strings.TrimRight(cfg.BaseURL, "/")
	}
	chunks := NewPaginator(indexBase).Run(entries)

	generator := NewGenerator(cfg.Pretty)
	documents := make(map[string]string, len(chunks))
	for _, chunk := range chunks {
		documents[chunk.Name] = generator.Run(chunk)
	}

	return documents, nil
}
