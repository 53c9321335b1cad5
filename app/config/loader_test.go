package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okulov/sitemap-gen/app/sitemap"
)

func writeSiteConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitemap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadFullSiteDescription(t *testing.T) {
	path := writeSiteConfig(t, `
baseURL: https://example.com
trailingSlash: true
pretty: true
defaults:
  changefreq: weekly
  priority: 0.5
routes:
  - path: /
    priority: 1.0
  - path: /blog/:slug
    changefreq: daily
    slugs:
      - first-post
      - value: second-post
        lastmod: 2024-03-01
        priority: 0.8
  - path: /article/:category/:title
    slugs:
      - category: blog
        title: a
  - path: "*"
urls:
  - /contact
  - loc: /pricing
    priority: 0.9
    lastmod: 2024-01-15
feeds:
  - url: https://example.com/rss.xml
`)

	cfg, feeds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.BaseURL != "https://example.com" {
		t.Errorf("Expected base URL 'https://example.com', got '%s'", cfg.BaseURL)
	}
	if !cfg.TrailingSlash || !cfg.Pretty {
		t.Error("Expected trailingSlash and pretty enabled")
	}

	if cfg.Defaults.ChangeFreq != sitemap.ChangeFreqWeekly {
		t.Errorf("Expected default changefreq 'weekly', got '%s'", cfg.Defaults.ChangeFreq)
	}
	if cfg.Defaults.Priority == nil || *cfg.Defaults.Priority != 0.5 {
		t.Errorf("Expected default priority 0.5, got %v", cfg.Defaults.Priority)
	}

	if len(cfg.Routes) != 4 {
		t.Fatalf("Expected 4 routes, got %d", len(cfg.Routes))
	}

	blog := cfg.Routes[1]
	if blog.Path != "/blog/:slug" {
		t.Errorf("Unexpected route path: %s", blog.Path)
	}
	if len(blog.Slugs) != 2 {
		t.Fatalf("Expected 2 slugs, got %d", len(blog.Slugs))
	}
	if blog.Slugs[0].Value != "first-post" {
		t.Errorf("Expected scalar slug 'first-post', got '%s'", blog.Slugs[0].Value)
	}
	second := blog.Slugs[1]
	if second.Value != "second-post" {
		t.Errorf("Expected slug value 'second-post', got '%s'", second.Value)
	}
	if second.Meta == nil || second.Meta.Priority == nil || *second.Meta.Priority != 0.8 {
		t.Error("Expected the slug's priority override to survive loading")
	}
	if second.Meta.LastMod == nil {
		t.Error("Expected the slug's lastmod override to survive loading")
	}

	article := cfg.Routes[2]
	if len(article.Slugs) != 1 {
		t.Fatalf("Expected 1 article slug, got %d", len(article.Slugs))
	}
	if article.Slugs[0].Params["category"] != "blog" || article.Slugs[0].Params["title"] != "a" {
		t.Errorf("Unexpected slug params: %v", article.Slugs[0].Params)
	}

	if len(cfg.URLs) != 2 {
		t.Fatalf("Expected 2 URL entries, got %d", len(cfg.URLs))
	}
	if cfg.URLs[0].Loc != "/contact" || cfg.URLs[0].Meta != nil {
		t.Errorf("Unexpected bare URL entry: %+v", cfg.URLs[0])
	}
	pricing := cfg.URLs[1]
	if pricing.Loc != "/pricing" {
		t.Errorf("Expected '/pricing', got '%s'", pricing.Loc)
	}
	if pricing.Meta == nil || pricing.Meta.Priority == nil || *pricing.Meta.Priority != 0.9 {
		t.Error("Expected the URL entry's metadata to survive loading")
	}

	if len(feeds) != 1 || feeds[0] != "https://example.com/rss.xml" {
		t.Errorf("Unexpected feeds: %v", feeds)
	}
}

func TestLoadSQLiteSlugSource(t *testing.T) {
	path := writeSiteConfig(t, `
baseURL: https://example.com
routes:
  - path: /blog/:slug
    slugsFrom:
      sqlite:
        path: content.db
        query: SELECT slug FROM posts
`)

	cfg, _, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.Routes[0].Source == nil {
		t.Fatal("Expected a slug source attached to the route")
	}

	// The relative database path resolves against the config file, so the
	// source fails on the missing file rather than a wrong-directory lookup.
	_, err = cfg.Routes[0].Source(context.Background())
	if err == nil {
		t.Skip("content.db unexpectedly present")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing route path", "routes:\n  - priority: 0.5\n"},
		{"bad lastmod", "urls:\n  - loc: /a\n    lastmod: not-a-date\n"},
		{"empty slugsFrom", "routes:\n  - path: /b/:s\n    slugsFrom: {}\n"},
		{"sqlite without query", "routes:\n  - path: /b/:s\n    slugsFrom:\n      sqlite:\n        path: x.db\n"},
		{"feed without url", "feeds:\n  - {}\n"},
		{"not yaml", "{{nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSiteConfig(t, tt.content)
			if _, _, err := NewLoader(path).Load(); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := NewLoader("/nonexistent/sitemap.yaml").Load(); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
