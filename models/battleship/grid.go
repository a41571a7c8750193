package battleship

const GridSize = 10

// PositionState is the shot record of a single cell.
type PositionState uint8

const (
	PositionStateUntried PositionState = iota
	PositionStateMiss
	PositionStateHit
)

func (p PositionState) String() string {
	switch p {
	case PositionStateMiss:
		return "miss"
	case PositionStateHit:
		return "hit"
	default:
		return "untried"
	}
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) InBounds() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

// Orthogonal neighbours that are inside the grid.
func (c Coordinates) neighbours4() []Coordinates {
	out := make([]Coordinates, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nb := NewCoordinates(c.Row+d[0], c.Col+d[1])
		if nb.InBounds() {
			out = append(out, nb)
		}
	}
	return out
}

// Orthogonal and diagonal neighbours that are inside the grid.
func (c Coordinates) neighbours8() []Coordinates {
	out := make([]Coordinates, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nb := NewCoordinates(c.Row+dr, c.Col+dc)
			if nb.InBounds() {
				out = append(out, nb)
			}
		}
	}
	return out
}

// Grid is the shot record of one board. The zero value is a fresh
// grid where every cell is untried.
type Grid [GridSize][GridSize]PositionState

func (g *Grid) at(c Coordinates) PositionState {
	return g[c.Row][c.Col]
}

func (g *Grid) set(c Coordinates, state PositionState) {
	g[c.Row][c.Col] = state
}

// Untried returns the untried cells in row-major order.
func (g *Grid) Untried() []Coordinates {
	out := make([]Coordinates, 0, GridSize*GridSize)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] == PositionStateUntried {
				out = append(out, NewCoordinates(r, c))
			}
		}
	}
	return out
}
