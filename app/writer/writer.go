// Package writer persists a generated document set to disk. It is the only
// output-side collaborator; the pipeline itself never touches the
// filesystem.
package writer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Run writes every document as "<name>.xml" into the output directory,
// creating it if needed. Files are written in sorted name order so logs stay
// stable between runs.
func (w *Writer) Run(documents map[string]string) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.outputDir, err)
	}

	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(w.outputDir, name+".xml")
		if err := os.WriteFile(path, []byte(documents[name]), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		slog.Info("Document written", "path", path, "bytes", len(documents[name]))
	}

	return nil
}
