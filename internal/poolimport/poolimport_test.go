package poolimport_test

import (
	"path/filepath"
	"testing"

	"github.com/jbpratt/wardrobe/internal/poolimport"
	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestImport(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	dbPath := filepath.Join(t.TempDir(), "pool.db")

	pi, err := poolimport.New(logger, dbPath)
	require.NoError(t, err)

	embedded, err := wardrobe.NewDefaultManifestSource(logger).Catalog(t.Context())
	require.NoError(t, err)

	n, err := pi.Import(t.Context(), wardrobe.NewDefaultManifestSource(logger))
	require.NoError(t, err)
	require.Equal(t, len(embedded.Items), n)
	require.NoError(t, pi.Close())

	db, err := wardrobe.OpenDBSource(logger, dbPath)
	require.NoError(t, err)
	defer db.Close()

	stored, err := db.Catalog(t.Context())
	require.NoError(t, err)
	require.Equal(t, embedded, stored)
}

func TestImportRejectsInvalidManifest(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()

	pi, err := poolimport.New(logger, filepath.Join(t.TempDir(), "pool.db"))
	require.NoError(t, err)
	defer pi.Close()

	src := wardrobe.NewManifestSource(logger, "bad", []byte(`{"items": [{"src": "x.jpg", "kind": "kalosze", "color": "czarny"}]}`))
	_, err = pi.Import(t.Context(), src)
	require.ErrorIs(t, err, wardrobe.ErrInvalidItem)
}
