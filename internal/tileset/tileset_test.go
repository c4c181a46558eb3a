package tileset_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/officegen/internal/tileset"
	"github.com/vancomm/officegen/internal/wfc"
)

func TestDefaultMatchesOfficeRules(t *testing.T) {
	ts := tileset.Default()
	assert.Equal(t, wfc.DefaultRules().Entries(), ts.Rules.Entries())
	assert.Equal(t, wfc.OfficeBoundary(), ts.Boundary)
	assert.Len(t, ts.Images, 10)
	assert.Equal(t, "desk.png", ts.Images[wfc.Desk])
}

func TestParseJSON(t *testing.T) {
	const doc = `{
  "tiles": [
    {"tile": "A", "east": ["A", "B"], "west": ["A", "B"]},
    {"tile": "B", "east": ["A"], "west": ["A"]}
  ],
  "boundary": {
    "top_left": "A", "top_right": "A", "bottom_left": "A", "bottom_right": "A",
    "top": "A", "bottom": "A", "left": "A", "right": "A",
    "interior": ["A", "B"]
  },
  "images": {"A": "a.png"}
}`
	ts, err := tileset.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []wfc.Tile{"A", "B"}, ts.Rules.Tiles())
	assert.Equal(t, []wfc.Tile{"A", "B"}, ts.Rules.Allowed("A", wfc.East))
	assert.Empty(t, ts.Rules.Allowed("B", wfc.North))
	assert.Equal(t, []wfc.Tile{"A", "B"}, ts.Boundary.Interior)
	assert.Equal(t, map[wfc.Tile]string{"A": "a.png"}, ts.Images)
}

func TestParseWithoutBoundaryUsesOffice(t *testing.T) {
	var buf bytes.Buffer
	ts := tileset.Default()
	ts.Images = nil
	require.NoError(t, tileset.Encode(&buf, ts))

	doc := buf.String()
	doc = doc[:strings.Index(doc, "boundary:")]
	got, err := tileset.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, wfc.OfficeBoundary(), got.Boundary)
}

func TestEncodeRoundTrip(t *testing.T) {
	ts := tileset.Default()

	var buf bytes.Buffer
	require.NoError(t, tileset.Encode(&buf, ts))

	got, err := tileset.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, ts.Rules.Entries(), got.Rules.Entries())
	assert.Equal(t, ts.Boundary, got.Boundary)
	assert.Equal(t, ts.Images, got.Images)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{
			name: "malformed",
			doc:  "tiles: [",
			err:  tileset.ErrInvalidTileset,
		},
		{
			name: "no tiles",
			doc:  "tiles: []",
			err:  wfc.ErrInvalidRuleTable,
		},
		{
			name: "unknown neighbour",
			doc:  "tiles:\n  - tile: A\n    east: [Z]\n",
			err:  wfc.ErrInvalidRuleTable,
		},
		{
			name: "boundary outside table",
			doc: "tiles:\n  - tile: A\nboundary:\n  top_left: A\n  top_right: A\n" +
				"  bottom_left: A\n  bottom_right: A\n  top: A\n  bottom: A\n" +
				"  left: A\n  right: Z\n  interior: [A]\n",
			err: tileset.ErrInvalidTileset,
		},
		{
			name: "boundary without interior",
			doc: "tiles:\n  - tile: A\nboundary:\n  top_left: A\n  top_right: A\n" +
				"  bottom_left: A\n  bottom_right: A\n  top: A\n  bottom: A\n" +
				"  left: A\n  right: A\n",
			err: tileset.ErrInvalidTileset,
		},
		{
			name: "office defaults outside table",
			doc:  "tiles:\n  - tile: A\n",
			err:  tileset.ErrInvalidTileset,
		},
		{
			name: "image for unknown tile",
			doc: "tiles:\n  - tile: A\nboundary:\n  top_left: A\n  top_right: A\n" +
				"  bottom_left: A\n  bottom_right: A\n  top: A\n  bottom: A\n" +
				"  left: A\n  right: A\n  interior: [A]\nimages:\n  Z: z.png\n",
			err: tileset.ErrInvalidTileset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tileset.Parse(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "office.yaml")

	var buf bytes.Buffer
	require.NoError(t, tileset.Encode(&buf, tileset.Default()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	ts, err := tileset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Rules.Len())

	_, err = tileset.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAssets(t *testing.T) {
	ts := tileset.Default()
	assets := ts.Assets("/srv/tiles")
	assert.Equal(t, "/srv/tiles", assets.Dir)
	assert.Equal(t, "carpet.png", assets.Files[wfc.Carpet])

	assets.Files[wfc.Carpet] = "other.png"
	assert.Equal(t, "carpet.png", ts.Images[wfc.Carpet])
}
