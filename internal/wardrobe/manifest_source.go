package wardrobe

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

//go:embed json/manifest.json
var defaultManifestJSON []byte

// ManifestSource reads the catalog from a JSON asset manifest. Kinds and colors
// left out of the manifest fall back to DefaultKinds and DefaultColors.
type ManifestSource struct {
	logger *zap.SugaredLogger
	name   string
	data   []byte
}

func NewDefaultManifestSource(logger *zap.SugaredLogger) *ManifestSource {
	return NewManifestSource(logger, "embedded", defaultManifestJSON)
}

func NewManifestSource(logger *zap.SugaredLogger, name string, data []byte) *ManifestSource {
	return &ManifestSource{logger: logger, name: name, data: data}
}

func NewFileManifestSource(logger *zap.SugaredLogger, path string) (*ManifestSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest(%s): %w", path, err)
	}
	return NewManifestSource(logger, path, data), nil
}

func (s *ManifestSource) Catalog(_ context.Context) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(s.data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest(%s): %w", s.name, err)
	}

	if len(catalog.Kinds) == 0 {
		catalog.Kinds = DefaultKinds
	}
	if len(catalog.Colors) == 0 {
		catalog.Colors = DefaultColors
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("manifest(%s): %w", s.name, err)
	}

	s.logger.Infow("loaded manifest",
		"manifest", s.name,
		"size", humanize.Bytes(uint64(len(s.data))),
		"items", len(catalog.Items),
		"kinds", len(catalog.Kinds),
		"colors", len(catalog.Colors),
	)

	return &catalog, nil
}
