package wardrobe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"
)

const (
	attributeKind  = "kind"
	attributeColor = "color"
)

const sqlPoolTables = `
/*
  Label enumerations keep their manifest order through position. Items
  reference labels by value.
*/
CREATE TABLE IF NOT EXISTS labels (
  attribute TEXT    NOT NULL,
  position  INTEGER NOT NULL,
  value     TEXT    NOT NULL,
  PRIMARY KEY(attribute, position)
);

CREATE TABLE IF NOT EXISTS items (
  id    INTEGER PRIMARY KEY AUTOINCREMENT,
  src   TEXT NOT NULL,
  kind  TEXT NOT NULL,
  color TEXT NOT NULL,
  UNIQUE(src)
);
`

// DBSource keeps the catalog in a SQLite database. Without any stored labels
// it falls back to DefaultKinds and DefaultColors.
type DBSource struct {
	logger *zap.SugaredLogger
	db     *sql.DB
}

func OpenDBSource(logger *zap.SugaredLogger, path string) (*DBSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB(%s): %w", path, err)
	}

	s, err := NewDBSource(logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewDBSource(logger *zap.SugaredLogger, db *sql.DB) (*DBSource, error) {
	if _, err := db.ExecContext(context.Background(), sqlPoolTables); err != nil {
		return nil, fmt.Errorf("failed to run init sql: %w", err)
	}
	return &DBSource{logger: logger, db: db}, nil
}

func (s *DBSource) Close() error {
	return s.db.Close()
}

func (s *DBSource) Catalog(ctx context.Context) (*Catalog, error) {
	kinds, err := s.labels(ctx, attributeKind)
	if err != nil {
		return nil, err
	}
	colors, err := s.labels(ctx, attributeColor)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{Kinds: kinds, Colors: colors, Items: []*Item{}}
	if len(catalog.Kinds) == 0 {
		catalog.Kinds = DefaultKinds
	}
	if len(catalog.Colors) == 0 {
		catalog.Colors = DefaultColors
	}

	rows, err := s.db.QueryContext(ctx, "SELECT src, kind, color FROM items ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &Item{}
		if err = rows.Scan(&item.Src, &item.Kind, &item.Color); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		catalog.Items = append(catalog.Items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	if err = catalog.Validate(); err != nil {
		return nil, fmt.Errorf("stored catalog: %w", err)
	}

	s.logger.Infow("loaded catalog from database", "items", humanize.Comma(int64(len(catalog.Items))))
	return catalog, nil
}

func (s *DBSource) labels(ctx context.Context, attribute string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT value FROM labels WHERE attribute = ? ORDER BY position ASC", attribute)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s labels: %w", attribute, err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err = rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan %s label: %w", attribute, err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Import replaces the stored catalog with catalog in a single transaction.
func (s *DBSource) Import(ctx context.Context, catalog *Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{"DELETE FROM labels", "DELETE FROM items"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	enumerations := map[string][]string{
		attributeKind:  catalog.Kinds,
		attributeColor: catalog.Colors,
	}
	for attribute, labels := range enumerations {
		for pos, label := range labels {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO labels (attribute, position, value) VALUES (?, ?, ?)",
				attribute, pos, label,
			); err != nil {
				return fmt.Errorf("failed to insert %s label %q: %w", attribute, label, err)
			}
		}
	}

	for _, item := range catalog.Items {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO items (src, kind, color) VALUES (?, ?, ?)",
			item.Src, item.Kind, item.Color,
		); err != nil {
			return fmt.Errorf("failed to insert item %q: %w", item.Src, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Infow("imported catalog",
		"items", len(catalog.Items),
		"kinds", len(catalog.Kinds),
		"colors", len(catalog.Colors),
	)
	return nil
}
