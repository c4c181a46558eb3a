// Package tileset reads adjacency rules, boundary tiles and image names from
// YAML or JSON files.
package tileset

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vancomm/officegen/internal/render"
	"github.com/vancomm/officegen/internal/wfc"
)

var Log *slog.Logger = slog.Default()

var ErrInvalidTileset = errors.New("tileset: invalid tileset")

//go:embed office.yaml
var office []byte

type Tileset struct {
	Rules    *wfc.RuleTable
	Boundary wfc.Boundary
	Images   map[wfc.Tile]string
}

// Assets maps the tileset images onto files in dir.
func (ts *Tileset) Assets(dir string) render.Assets {
	files := make(map[wfc.Tile]string, len(ts.Images))
	for t, name := range ts.Images {
		files[t] = name
	}
	return render.Assets{Dir: dir, Files: files}
}

type entry struct {
	Tile  string   `yaml:"tile"`
	North []string `yaml:"north,omitempty,flow"`
	East  []string `yaml:"east,omitempty,flow"`
	South []string `yaml:"south,omitempty,flow"`
	West  []string `yaml:"west,omitempty,flow"`
}

type boundary struct {
	TopLeft     string   `yaml:"top_left"`
	TopRight    string   `yaml:"top_right"`
	BottomLeft  string   `yaml:"bottom_left"`
	BottomRight string   `yaml:"bottom_right"`
	Top         string   `yaml:"top"`
	Bottom      string   `yaml:"bottom"`
	Left        string   `yaml:"left"`
	Right       string   `yaml:"right"`
	Interior    []string `yaml:"interior,flow"`
}

type document struct {
	Tiles    []entry           `yaml:"tiles"`
	Boundary *boundary         `yaml:"boundary,omitempty"`
	Images   map[string]string `yaml:"images,omitempty"`
}

// Default returns the desk-office tileset.
func Default() *Tileset {
	ts, err := parse(office)
	if err != nil {
		panic(err)
	}
	return ts
}

// Load reads a tileset file. JSON documents are accepted as well.
func Load(path string) (*Tileset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ts, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	Log.Debug("loaded tileset", "path", path, "tiles", ts.Rules.Len())
	return ts, nil
}

func Parse(r io.Reader) (*Tileset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(b)
}

func parse(b []byte) (*Tileset, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTileset, err)
	}

	entries := make([]wfc.Adjacency, len(doc.Tiles))
	for i, e := range doc.Tiles {
		entries[i] = wfc.Adjacency{
			Tile:  wfc.Tile(e.Tile),
			North: tiles(e.North),
			East:  tiles(e.East),
			South: tiles(e.South),
			West:  tiles(e.West),
		}
	}
	rules, err := wfc.NewRuleTable(entries)
	if err != nil {
		return nil, err
	}

	ts := &Tileset{Rules: rules, Images: make(map[wfc.Tile]string, len(doc.Images))}
	if doc.Boundary == nil {
		ts.Boundary = wfc.OfficeBoundary()
	} else {
		ts.Boundary = wfc.Boundary{
			TopLeft:     wfc.Tile(doc.Boundary.TopLeft),
			TopRight:    wfc.Tile(doc.Boundary.TopRight),
			BottomLeft:  wfc.Tile(doc.Boundary.BottomLeft),
			BottomRight: wfc.Tile(doc.Boundary.BottomRight),
			Top:         wfc.Tile(doc.Boundary.Top),
			Bottom:      wfc.Tile(doc.Boundary.Bottom),
			Left:        wfc.Tile(doc.Boundary.Left),
			Right:       wfc.Tile(doc.Boundary.Right),
			Interior:    tiles(doc.Boundary.Interior),
		}
	}
	if err := checkBoundary(ts.Boundary, rules); err != nil {
		return nil, err
	}

	for name, file := range doc.Images {
		t := wfc.Tile(name)
		if !rules.Has(t) {
			return nil, fmt.Errorf("%w: image for unknown tile %q", ErrInvalidTileset, name)
		}
		if file == "" {
			return nil, fmt.Errorf("%w: empty image name for tile %q", ErrInvalidTileset, name)
		}
		ts.Images[t] = file
	}
	return ts, nil
}

func checkBoundary(b wfc.Boundary, rules *wfc.RuleTable) error {
	if len(b.Interior) == 0 {
		return fmt.Errorf("%w: boundary has no interior tiles", ErrInvalidTileset)
	}
	edges := []wfc.Tile{
		b.TopLeft, b.TopRight, b.BottomLeft, b.BottomRight,
		b.Top, b.Bottom, b.Left, b.Right,
	}
	for _, t := range append(edges, b.Interior...) {
		if !rules.Has(t) {
			return fmt.Errorf("%w: boundary tile %q is not in the table", ErrInvalidTileset, t)
		}
	}
	return nil
}

// Encode writes ts as YAML in the format read by [Parse].
func Encode(w io.Writer, ts *Tileset) error {
	doc := document{
		Boundary: &boundary{
			TopLeft:     string(ts.Boundary.TopLeft),
			TopRight:    string(ts.Boundary.TopRight),
			BottomLeft:  string(ts.Boundary.BottomLeft),
			BottomRight: string(ts.Boundary.BottomRight),
			Top:         string(ts.Boundary.Top),
			Bottom:      string(ts.Boundary.Bottom),
			Left:        string(ts.Boundary.Left),
			Right:       string(ts.Boundary.Right),
			Interior:    names(ts.Boundary.Interior),
		},
	}
	for _, a := range ts.Rules.Entries() {
		doc.Tiles = append(doc.Tiles, entry{
			Tile:  string(a.Tile),
			North: names(a.North),
			East:  names(a.East),
			South: names(a.South),
			West:  names(a.West),
		})
	}
	if len(ts.Images) > 0 {
		doc.Images = make(map[string]string, len(ts.Images))
		for t, file := range ts.Images {
			doc.Images[string(t)] = file
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func tiles(names []string) []wfc.Tile {
	if names == nil {
		return nil
	}
	ts := make([]wfc.Tile, len(names))
	for i, n := range names {
		ts[i] = wfc.Tile(n)
	}
	return ts
}

func names(ts []wfc.Tile) []string {
	if len(ts) == 0 {
		return nil
	}
	ns := make([]string, len(ts))
	for i, t := range ts {
		ns[i] = string(t)
	}
	return ns
}
