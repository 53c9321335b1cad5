package sitemap

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateCompactDocument(t *testing.T) {
	generator := NewGenerator(false)

	lastMod := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	priority := 0.8
	chunk := Chunk{
		Name: "sitemap",
		Entries: []Entry{{
			Loc: "https://example.com/about",
			Metadata: Metadata{
				LastMod:    &lastMod,
				ChangeFreq: ChangeFreqWeekly,
				Priority:   &priority,
			},
		}},
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` +
		`<url><loc>https://example.com/about</loc>` +
		`<lastmod>2024-03-01T12:30:00Z</lastmod>` +
		`<changefreq>weekly</changefreq>` +
		`<priority>0.8</priority></url></urlset>`

	if got := generator.Run(chunk); got != want {
		t.Errorf("Unexpected document:\n got: %s\nwant: %s", got, want)
	}
}

func TestGenerateTagOrder(t *testing.T) {
	generator := NewGenerator(false)

	lastMod := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	priority := 0.5
	doc := generator.Run(Chunk{Name: "sitemap", Entries: []Entry{{
		Loc:      "https://example.com/",
		Metadata: Metadata{LastMod: &lastMod, ChangeFreq: ChangeFreqDaily, Priority: &priority},
	}}})

	locIdx := strings.Index(doc, "<loc>")
	lastmodIdx := strings.Index(doc, "<lastmod>")
	changefreqIdx := strings.Index(doc, "<changefreq>")
	priorityIdx := strings.Index(doc, "<priority>")

	if !(locIdx < lastmodIdx && lastmodIdx < changefreqIdx && changefreqIdx < priorityIdx) {
		t.Errorf("Tags out of order in: %s", doc)
	}
}

func TestGeneratePrettyDocument(t *testing.T) {
	generator := NewGenerator(true)

	doc := generator.Run(Chunk{Name: "sitemap", Entries: []Entry{
		{Loc: "https://example.com/"},
	}})

	if !strings.Contains(doc, "\n\t<url>\n\t\t<loc>https://example.com/</loc>\n\t</url>\n</urlset>") {
		t.Errorf("Expected tab indentation, got: %s", doc)
	}
}

func TestGenerateEscapesAmpersand(t *testing.T) {
	generator := NewGenerator(false)

	doc := generator.Run(Chunk{Name: "sitemap", Entries: []Entry{
		{Loc: "https://example.com/search?a=1&b=2"},
	}})

	if !strings.Contains(doc, "<loc>https://example.com/search?a=1&amp;b=2</loc>") {
		t.Errorf("Expected ampersand escaped to &amp;, got: %s", doc)
	}
	if strings.Contains(doc, "a=1&b") {
		t.Errorf("Raw ampersand leaked into: %s", doc)
	}
}

func TestGeneratePriorityRendering(t *testing.T) {
	tests := []struct {
		priority float64
		want     string
	}{
		{1, "<priority>1.0</priority>"},
		{0, "<priority>0.0</priority>"},
		{0.5, "<priority>0.5</priority>"},
		{0.25, "<priority>0.25</priority>"},
	}

	generator := NewGenerator(false)
	for _, tt := range tests {
		p := tt.priority
		doc := generator.Run(Chunk{Name: "sitemap", Entries: []Entry{
			{Loc: "https://example.com/", Metadata: Metadata{Priority: &p}},
		}})
		if !strings.Contains(doc, tt.want) {
			t.Errorf("Priority %v: expected %s in: %s", tt.priority, tt.want, doc)
		}
	}
}

func TestGenerateOptionalTagsOmitted(t *testing.T) {
	generator := NewGenerator(false)

	doc := generator.Run(Chunk{Name: "sitemap", Entries: []Entry{
		{Loc: "https://example.com/"},
	}})

	for _, tag := range []string{"<lastmod>", "<changefreq>", "<priority>"} {
		if strings.Contains(doc, tag) {
			t.Errorf("Unset metadata should omit %s, got: %s", tag, doc)
		}
	}
}

func TestGenerateIndexDocument(t *testing.T) {
	generator := NewGenerator(false)

	doc := generator.Run(Chunk{
		Name:    "sitemap-index",
		IsIndex: true,
		Entries: []Entry{
			{Loc: "https://example.com/sitemap-part-1.xml"},
			{Loc: "https://example.com/sitemap-part-2.xml"},
		},
	})

	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Index document is missing the XML prolog")
	}
	if !strings.Contains(doc, `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Errorf("Expected a sitemapindex root, got: %s", doc)
	}
	if !strings.Contains(doc, "<sitemap><loc>https://example.com/sitemap-part-1.xml</loc></sitemap>") {
		t.Errorf("Expected sitemap references, got: %s", doc)
	}
	if strings.Contains(doc, "<url>") {
		t.Errorf("Index document must not contain <url> elements: %s", doc)
	}
}
