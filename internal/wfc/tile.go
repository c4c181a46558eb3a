package wfc

// Tile identifies a tile type. The set of valid tiles is defined by a
// [RuleTable].
type Tile string

// Tiles of the built-in office rule set.
const (
	CornerTL   Tile = "CornerTL"
	CornerTR   Tile = "CornerTR"
	CornerBL   Tile = "CornerBL"
	CornerBR   Tile = "CornerBR"
	WallTop    Tile = "WallTop"
	WallBottom Tile = "WallBottom"
	WallLeft   Tile = "WallLeft"
	WallRight  Tile = "WallRight"
	Desk       Tile = "Desk"
	Carpet     Tile = "Carpet"
)

type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the four directions in N, E, S, W order.
var Directions = [4]Direction{North, East, South, West}

func (d Direction) Opposite() Direction { return (d + 2) & 3 }

// Offset returns the row and column delta of a step in direction d.
func (d Direction) Offset() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	default:
		return 0, -1
	}
}

// Direction implements [fmt.Stringer]
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}
