package api

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler serves the generated document set from memory. Documents are
// produced once per process; there is no regeneration endpoint because every
// invocation recomputes the full output anyway.
type Handler struct {
	documents   map[string]string
	generatedAt time.Time
}

func NewHandler(documents map[string]string) *Handler {
	return &Handler{
		documents:   documents,
		generatedAt: time.Now().UTC(),
	}
}

// GetDocument serves one generated document, addressed as "<name>.xml".
func (h *Handler) GetDocument(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".xml")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	doc, ok := h.documents[name]
	if !ok {
		slog.Debug("Unknown document requested", "name", name)
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Document-Name", name)
	c.Header("X-Generated-At", h.generatedAt.Format(time.RFC3339))

	c.String(http.StatusOK, doc)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"documents": len(h.documents),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	names := make([]string, 0, len(h.documents))
	for name := range h.documents {
		names = append(names, name)
	}
	sort.Strings(names)

	docs := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		doc := h.documents[name]
		docs = append(docs, map[string]interface{}{
			"name":    name + ".xml",
			"bytes":   len(doc),
			"entries": strings.Count(doc, "<loc>"),
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"generated_at": h.generatedAt.Format(time.RFC3339),
		"documents":    docs,
	})
}
