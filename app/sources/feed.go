package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/okulov/sitemap-gen/app/sitemap"
)

// FeedSource turns the items of an RSS or Atom feed into URL entries, using
// each item's publication date as the entry's last modification.
type FeedSource struct {
	url    string
	client *http.Client
}

func NewFeedSource(url string, client *http.Client) *FeedSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedSource{url: url, client: client}
}

// Entries fetches and parses the feed.
func (s *FeedSource) Entries(ctx context.Context) ([]sitemap.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch feed %s: HTTP %d", s.url, resp.StatusCode)
	}

	entries, err := s.parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", s.url, err)
	}

	slog.Debug("URL entries loaded from feed", "url", s.url, "count", len(entries))

	return entries, nil
}

func (s *FeedSource) parse(r io.Reader) ([]sitemap.URL, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}

	entries := make([]sitemap.URL, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		entry := sitemap.URL{Loc: item.Link}
		if t := item.UpdatedParsed; t != nil {
			utc := t.UTC()
			entry.Meta = &sitemap.Metadata{LastMod: &utc}
		} else if t := item.PublishedParsed; t != nil {
			utc := t.UTC()
			entry.Meta = &sitemap.Metadata{LastMod: &utc}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
