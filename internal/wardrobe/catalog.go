package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidItem    = errors.New("invalid item")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Source loads the label enumerations and the item pool a quiz is played from.
type Source interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// Item is a single picture in the pool. Items are never mutated once loaded and
// are compared by pointer.
type Item struct {
	Src   string `json:"src"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type Catalog struct {
	Kinds  []string `json:"kinds"`
	Colors []string `json:"colors"`
	Items  []*Item  `json:"items"`
}

// Validate rejects catalogs with empty enumerations and items whose kind or
// color is not one of the enumerated labels. An empty pool is valid.
func (c *Catalog) Validate() error {
	if len(c.Kinds) == 0 {
		return fmt.Errorf("%w: no kind labels", ErrInvalidCatalog)
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("%w: no color labels", ErrInvalidCatalog)
	}

	for idx, item := range c.Items {
		if item == nil {
			return fmt.Errorf("%w: item %d is empty", ErrInvalidItem, idx)
		}
		if item.Src == "" {
			return fmt.Errorf("%w: item %d has no image", ErrInvalidItem, idx)
		}
		if !slices.Contains(c.Kinds, item.Kind) {
			return fmt.Errorf("%w: item %d (%s) has unknown kind %q", ErrInvalidItem, idx, item.Src, item.Kind)
		}
		if !slices.Contains(c.Colors, item.Color) {
			return fmt.Errorf("%w: item %d (%s) has unknown color %q", ErrInvalidItem, idx, item.Src, item.Color)
		}
	}

	return nil
}
