// Package poolimport copies a pool manifest into the sqlite pool database.
package poolimport

import (
	"context"
	"fmt"

	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"go.uber.org/zap"
)

type PoolImport struct {
	logger *zap.SugaredLogger
	db     *wardrobe.DBSource
}

func New(logger *zap.SugaredLogger, dbPath string) (*PoolImport, error) {
	db, err := wardrobe.OpenDBSource(logger, dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening pool database: %w", err)
	}
	return &PoolImport{logger, db}, nil
}

// Import loads the catalog from src and replaces the database contents with
// it. It returns the number of items imported.
func (p *PoolImport) Import(ctx context.Context, src wardrobe.Source) (int, error) {
	catalog, err := src.Catalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err = p.db.Import(ctx, catalog); err != nil {
		return 0, fmt.Errorf("failed to import catalog: %w", err)
	}

	return len(catalog.Items), nil
}

func (p *PoolImport) Close() error {
	return p.db.Close()
}
