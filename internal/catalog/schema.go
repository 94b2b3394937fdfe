package catalog

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// additiveColumns lists columns later revisions added to the products table.
// A database created before a column existed gains it in place; existing rows
// are preserved.
var additiveColumns = []struct {
	name       string
	definition string
}{
	{"key_tags", "key_tags TEXT"},
	{"created_at", "created_at TEXT"},
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return s.ensureColumns(ctx)
}

func (s *Store) ensureColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info(products)")
	if err != nil {
		return fmt.Errorf("inspect products table: %w", err)
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var (
			cid        int
			name       string
			columnType string
			notNull    int
			dflt       any
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &columnType, &notNull, &dflt, &primaryKey); err != nil {
			return fmt.Errorf("scan column info: %w", err)
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read column info: %w", err)
	}

	for _, column := range additiveColumns {
		if _, ok := existing[column.name]; ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, "ALTER TABLE products ADD COLUMN "+column.definition); err != nil {
			return fmt.Errorf("add column %s: %w", column.name, err)
		}
	}
	return nil
}
