package sitemap

import "fmt"

// Chunk is one output document before serialization: a named slice of the
// final entry set, or the synthesized index.
type Chunk struct {
	Name    string
	Entries []Entry
	IsIndex bool
}

// Paginator splits the final entry list into documents respecting the
// per-document entry cap and synthesizes the index document when the list
// does not fit into one.
type Paginator struct {
	baseURL string
}

func NewPaginator(baseURL string) *Paginator {
	return &Paginator{baseURL: baseURL}
}

// Run returns a single "sitemap" chunk for lists within the cap. Larger
// lists become "sitemap-part-N" chunks plus a trailing "sitemap-index"
// chunk listing every part in emission order.
func (p *Paginator) Run(entries []Entry) []Chunk {
	if len(entries) <= EntryCap {
		return []Chunk{{Name: "sitemap", Entries: entries}}
	}

	var chunks []Chunk
	for start := 0; start < len(entries); start += EntryCap {
		end := start + EntryCap
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, Chunk{
			Name:    fmt.Sprintf("sitemap-part-%d", len(chunks)+1),
			Entries: entries[start:end],
		})
	}

	index := Chunk{Name: "sitemap-index", IsIndex: true}
	for _, chunk := range chunks {
		loc := "/" + chunk.Name + ".xml"
		if p.baseURL != "" {
			loc = p.baseURL + loc
		}
		index.Entries = append(index.Entries, Entry{Loc: loc})
	}

	return append(chunks, index)
}
