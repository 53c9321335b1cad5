package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Blog</title>
    <link>https://example.com</link>
    <description>Test</description>
    <item>
      <title>First</title>
      <link>https://example.com/blog/first</link>
      <pubDate>Mon, 01 Jul 2024 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>No link</title>
    </item>
    <item>
      <title>Second</title>
      <link>https://example.com/blog/second</link>
    </item>
  </channel>
</rss>`

func TestFeedSourceParse(t *testing.T) {
	source := NewFeedSource("https://example.com/rss.xml", nil)

	entries, err := source.parse(strings.NewReader(testFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries (item without link skipped), got %d", len(entries))
	}
	if entries[0].Loc != "https://example.com/blog/first" {
		t.Errorf("Unexpected first entry: %s", entries[0].Loc)
	}
	if entries[0].Meta == nil || entries[0].Meta.LastMod == nil {
		t.Error("Expected pubDate mapped to lastmod")
	} else if got := entries[0].Meta.LastMod.Format("2006-01-02"); got != "2024-07-01" {
		t.Errorf("Expected lastmod 2024-07-01, got %s", got)
	}
	if entries[1].Meta != nil {
		t.Error("Expected no metadata for an item without dates")
	}
}

func TestFeedSourceEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeed))
	}))
	defer server.Close()

	entries, err := NewFeedSource(server.URL, server.Client()).Entries(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
}

func TestFeedSourceHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewFeedSource(server.URL, server.Client()).Entries(context.Background()); err == nil {
		t.Error("Expected an error for a failing feed endpoint")
	}
}

func TestFeedSourceBadContent(t *testing.T) {
	source := NewFeedSource("https://example.com/rss.xml", nil)

	if _, err := source.parse(strings.NewReader("this is not a feed")); err == nil {
		t.Error("Expected an error for unparsable feed content")
	}
}
