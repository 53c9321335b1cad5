package sitemap

import (
	"context"
	"strings"
	"sync"
)

// Expander turns route definitions into concrete entries, substituting slugs
// into parametrized path templates and resolving the metadata overlay chain
// (defaults -> route -> slug).
type Expander struct {
	resolver *Resolver
	defaults Metadata
}

func NewExpander(resolver *Resolver, defaults Metadata) *Expander {
	return &Expander{resolver: resolver, defaults: defaults}
}

// Run expands all routes in order. Slug sources are resolved concurrently,
// but entries are emitted strictly in route order, each route's entries in
// slug-list order.
func (e *Expander) Run(ctx context.Context, routes []Route) ([]Entry, error) {
	resolved, err := resolveSources(ctx, routes)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i, route := range routes {
		if route.Exclude || isCatchAll(route.Path) {
			continue
		}

		expanded, err := e.expandRoute(route, resolved[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, expanded...)
	}

	return entries, nil
}

// resolveSources starts every slug source concurrently and waits for all of
// them. The returned slice is indexed by route position so completion order
// never influences output order.
func resolveSources(ctx context.Context, routes []Route) ([][]Slug, error) {
	resolved := make([][]Slug, len(routes))
	errs := make([]error, len(routes))

	var wg sync.WaitGroup
	for i, route := range routes {
		if route.Source == nil {
			resolved[i] = route.Slugs
			continue
		}
		if len(route.Slugs) > 0 {
			return nil, validationErrf(route.Path, "", "route has both a literal slug list and a slug source")
		}

		wg.Add(1)
		go func(i int, route Route) {
			defer wg.Done()
			slugs, err := route.Source(ctx)
			if err != nil {
				errs[i] = validationErrf(route.Path, "", "slug source failed: %v", err)
				return
			}
			if slugs == nil {
				// A source matching nothing still counts as a resolved
				// (empty) list, not a missing one.
				slugs = []Slug{}
			}
			resolved[i] = slugs
		}(i, route)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (e *Expander) expandRoute(route Route, slugs []Slug) ([]Entry, error) {
	params := PathParams(route.Path)
	routeMeta := e.defaults.Overlay(route.Meta)

	if len(params) == 0 {
		loc, err := e.resolver.Run(route.Path)
		if err != nil {
			return nil, err
		}
		return []Entry{{Loc: loc, Metadata: routeMeta}}, nil
	}

	if slugs == nil {
		return nil, validationErrf(route.Path, "", "dynamic route is missing slugs")
	}

	entries := make([]Entry, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		path, err := substitute(route.Path, params, slug)
		if err != nil {
			return nil, err
		}

		loc, err := e.resolver.Run(path)
		if err != nil {
			return nil, err
		}
		if seen[loc] {
			// Duplicate within one route keeps the first occurrence.
			continue
		}
		seen[loc] = true

		entries = append(entries, Entry{Loc: loc, Metadata: routeMeta.Overlay(slug.Meta)})
	}

	return entries, nil
}

// substitute replaces every ":name" segment of the template with the slug's
// value for that parameter.
func substitute(path string, params []string, slug Slug) (string, error) {
	values := slug.Params

	if values == nil {
		if slug.Value == "" {
			return "", validationErrf(path, "", "slug has no value")
		}
		if len(params) > 1 {
			return "", validationErrf(path, "", "route declares %d parameters but slug %q is a single value", len(params), slug.Value)
		}
		values = map[string]string{params[0]: slug.Value}
	}

	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p] = true
		if values[p] == "" {
			return "", validationErrf(path, "", "slug is missing a value for parameter %q", p)
		}
	}
	for name := range values {
		if !declared[name] {
			return "", validationErrf(path, "", "slug supplies parameter %q which the path does not declare", name)
		}
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = values[seg[1:]]
		}
	}
	return strings.Join(segments, "/"), nil
}

// PathParams returns the named parameters of a path template in declaration
// order, e.g. "/article/:category/:title" -> ["category", "title"].
func PathParams(path string) []string {
	var params []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			params = append(params, seg[1:])
		}
	}
	return params
}

// isCatchAll reports whether the path is the wildcard catch-all token, which
// never belongs in a sitemap.
func isCatchAll(path string) bool {
	return path == "*" || path == "/*"
}
