package sitemap

// Merger combines route-derived entries with explicitly configured URL
// entries into one ordered, location-unique set.
type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

// Run places route entries first, in their existing order. A URL entry whose
// location is already present replaces the earlier entry in place, keeping
// its position; unseen URL entries are appended in URL order.
func (m *Merger) Run(routeEntries, urlEntries []Entry) []Entry {
	merged := make([]Entry, 0, len(routeEntries)+len(urlEntries))
	position := make(map[string]int, len(routeEntries))

	for _, entry := range routeEntries {
		if i, ok := position[entry.Loc]; ok {
			merged[i] = entry
			continue
		}
		position[entry.Loc] = len(merged)
		merged = append(merged, entry)
	}

	for _, entry := range urlEntries {
		if i, ok := position[entry.Loc]; ok {
			merged[i] = entry
			continue
		}
		position[entry.Loc] = len(merged)
		merged = append(merged, entry)
	}

	return merged
}
