package render

import (
	"errors"
	"fmt"

	"github.com/vancomm/officegen/internal/wfc"
)

var (
	// ErrNotSolved indicates the layout is missing or has empty cells.
	ErrNotSolved = errors.New("render: layout is not solved")
	// ErrMissingAsset indicates a tile has no image.
	ErrMissingAsset = errors.New("render: missing tile image")
)

// MissingAssetError names the tile whose image could not be found. Path is
// empty when the tile has no mapping at all.
type MissingAssetError struct {
	Tile wfc.Tile
	Path string
}

// [MissingAssetError] implements [error]
func (e *MissingAssetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render: tile %q has no image mapping", e.Tile)
	}
	return fmt.Sprintf("render: image for tile %q not found: %s", e.Tile, e.Path)
}

func (e *MissingAssetError) Is(target error) bool {
	return target == ErrMissingAsset
}
