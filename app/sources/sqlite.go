// Package sources provides slug and entry providers backed by external
// stores: SQLite content databases and RSS/Atom feeds. Providers are the
// suspension points of a generation run; the pipeline itself never touches
// storage or network.
package sources

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/okulov/sitemap-gen/app/sitemap"
)

// SQLiteSource reads slugs out of a content database with a single query.
// A one-column result yields scalar slugs; a multi-column result yields
// parameter mappings keyed by column name.
type SQLiteSource struct {
	path  string
	query string
}

func NewSQLiteSource(path, query string) *SQLiteSource {
	return &SQLiteSource{path: path, query: query}
}

// Slugs satisfies sitemap.SlugSource.
func (s *SQLiteSource) Slugs(ctx context.Context) ([]sitemap.Slug, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", s.path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("slug query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read query columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("slug query returned no columns")
	}

	var slugs []sitemap.Slug
	values := make([]sql.NullString, len(columns))
	scan := make([]interface{}, len(columns))
	for i := range values {
		scan[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan slug row: %w", err)
		}

		if len(columns) == 1 {
			slugs = append(slugs, sitemap.Slug{Value: values[0].String})
			continue
		}

		params := make(map[string]string, len(columns))
		for i, column := range columns {
			params[column] = values[i].String
		}
		slugs = append(slugs, sitemap.Slug{Params: params})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slug query failed: %w", err)
	}

	slog.Debug("Slugs loaded from database", "path", s.path, "count", len(slugs))

	return slugs, nil
}
