package sitemap

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

const xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Generator renders chunks into the sitemap XML dialect.
type Generator struct {
	pretty bool
}

func NewGenerator(pretty bool) *Generator {
	return &Generator{pretty: pretty}
}

// Run renders one chunk: a <urlset> document for entry chunks, a
// <sitemapindex> document for the index chunk.
func (g *Generator) Run(chunk Chunk) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")

	root, entryTag := "urlset", "url"
	if chunk.IsIndex {
		root, entryTag = "sitemapindex", "sitemap"
	}

	buf.WriteString("<" + root + ` xmlns="` + xmlnsSitemap + `">`)

	for _, entry := range chunk.Entries {
		g.writeEntry(&buf, entryTag, entry, chunk.IsIndex)
	}

	if g.pretty {
		buf.WriteString("\n")
	}
	buf.WriteString("</" + root + ">")

	return buf.String()
}

func (g *Generator) writeEntry(buf *bytes.Buffer, tag string, entry Entry, indexOnly bool) {
	g.indent(buf, 1)
	buf.WriteString("<" + tag + ">")

	g.writeElement(buf, "loc", entry.Loc)

	// Tag order is fixed by the protocol schema.
	if !indexOnly {
		if entry.LastMod != nil {
			g.writeElement(buf, "lastmod", entry.LastMod.UTC().Format(time.RFC3339))
		}
		if entry.ChangeFreq != "" {
			g.writeElement(buf, "changefreq", string(entry.ChangeFreq))
		}
		if entry.Priority != nil {
			g.writeElement(buf, "priority", formatPriority(*entry.Priority))
		}
	}

	g.indent(buf, 1)
	buf.WriteString("</" + tag + ">")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string) {
	g.indent(buf, 2)
	buf.WriteString("<" + tag + ">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</" + tag + ">")
}

func (g *Generator) indent(buf *bytes.Buffer, depth int) {
	if !g.pretty {
		return
	}
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("\t", depth))
}

// formatPriority keeps a decimal point even for whole values, so 1 renders
// as "1.0" and 0 as "0.0".
func formatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
