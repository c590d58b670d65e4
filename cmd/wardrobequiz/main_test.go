package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenSource(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	dir := t.TempDir()

	manifest := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"items": [{"src": "x.jpg", "kind": "buty", "color": "czarny"}]}`), 0o600))

	src, closeSource, err := openSource(logger, options{})
	require.NoError(t, err)
	require.IsType(t, &wardrobe.ManifestSource{}, src)
	require.NoError(t, closeSource())

	src, closeSource, err = openSource(logger, options{manifest: manifest})
	require.NoError(t, err)
	catalog, err := src.Catalog(t.Context())
	require.NoError(t, err)
	require.Len(t, catalog.Items, 1)
	require.NoError(t, closeSource())

	src, closeSource, err = openSource(logger, options{manifest: manifest, dbPath: filepath.Join(dir, "pool.db")})
	require.NoError(t, err)
	require.IsType(t, &wardrobe.DBSource{}, src)
	require.NoError(t, closeSource())

	_, _, err = openSource(logger, options{manifest: filepath.Join(dir, "missing.json")})
	require.Error(t, err)
}

func TestRunFailsOnBadManifest(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	manifest := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"items": [{"src": "x.jpg", "kind": "kalosze", "color": "czarny"}]}`), 0o600))

	err := run(t.Context(), logger, options{manifest: manifest, addr: "127.0.0.1:0"})
	require.ErrorIs(t, err, wardrobe.ErrInvalidItem)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := run(ctx, zaptest.NewLogger(t).Sugar(), options{addr: "127.0.0.1:0", questions: 2})
	require.NoError(t, err)
}
