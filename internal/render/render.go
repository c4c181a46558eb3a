// Package render stitches per-tile images into a single picture of a solved
// layout.
package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/officegen/internal/wfc"
)

var Log *slog.Logger = slog.Default()

// Assets maps tiles to image files inside Dir.
type Assets struct {
	Dir   string
	Files map[wfc.Tile]string
}

// Path returns the image path of t, checking that the file exists.
func (a Assets) Path(t wfc.Tile) (string, error) {
	name, ok := a.Files[t]
	if !ok || name == "" {
		return "", &MissingAssetError{Tile: t}
	}
	path := filepath.Join(a.Dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingAssetError{Tile: t, Path: path}
		}
		return "", fmt.Errorf("render: unable to stat %s: %w", path, err)
	}
	return path, nil
}

// Compose draws layout with one image per cell, placed row-major. Every
// tile is drawn at the size of the top-left tile's image and resized when
// its own image differs.
func Compose(layout wfc.Layout, assets Assets) (*image.RGBA, error) {
	if !layout.Complete() {
		return nil, ErrNotSolved
	}

	var (
		order []wfc.Tile
		paths = make(map[wfc.Tile]string)
	)
	for _, row := range layout {
		for _, t := range row {
			if _, seen := paths[t]; seen {
				continue
			}
			path, err := assets.Path(t)
			if err != nil {
				return nil, err
			}
			paths[t] = path
			order = append(order, t)
		}
	}

	decoded := make([]image.Image, len(order))
	var g errgroup.Group
	for i, t := range order {
		g.Go(func() error {
			img, err := decodeFile(paths[t])
			if err != nil {
				return fmt.Errorf("render: tile %q: %w", t, err)
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make(map[wfc.Tile]image.Image, len(order))
	for i, t := range order {
		images[t] = decoded[i]
	}

	// order[0] is layout[0][0]
	tileW, tileH := decoded[0].Bounds().Dx(), decoded[0].Bounds().Dy()
	for t, img := range images {
		if b := img.Bounds(); b.Dx() != tileW || b.Dy() != tileH {
			Log.Debug("resizing tile image",
				"tile", t, "from", b.Size(), "to", image.Pt(tileW, tileH))
			images[t] = resize(img, tileW, tileH)
		}
	}

	n := layout.Size()
	out := image.NewRGBA(image.Rect(0, 0, n*tileW, n*tileH))
	for row := range n {
		for col := range n {
			img := images[layout.At(row, col)]
			at := image.Rect(col*tileW, row*tileH, (col+1)*tileW, (row+1)*tileH)
			draw.Draw(out, at, img, img.Bounds().Min, draw.Src)
		}
	}
	return out, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func resize(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// UniquePath returns path if nothing exists there, otherwise the first free
// name of the form base_N.ext with N counting from 1.
func UniquePath(path string) (string, error) {
	free, err := isFree(path)
	if err != nil || free {
		return path, err
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for count := 1; ; count++ {
		candidate := fmt.Sprintf("%s_%d%s", base, count, ext)
		free, err := isFree(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
}

func isFree(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, fmt.Errorf("render: unable to stat %s: %w", path, err)
	}
}

// Save writes img as PNG to path, or to a fresh name next to it when path
// is taken. It never overwrites a file and returns the path written.
func Save(img image.Image, path string) (string, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("render: unable to create %s: %w", dir, err)
		}
	}
	for {
		target, err := UniquePath(path)
		if err != nil {
			return "", err
		}
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue // lost a race for target
		}
		if err != nil {
			return "", fmt.Errorf("render: unable to create %s: %w", target, err)
		}
		if err := Encode(f, img); err != nil {
			f.Close()
			return "", fmt.Errorf("render: unable to encode %s: %w", target, err)
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		Log.Info("saved layout image", "path", target)
		return target, nil
	}
}
