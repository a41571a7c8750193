package battleship

const (
	ShipSizeCarrier   = 5
	ShipSizeCruiser   = 3
	ShipSizeDestroyer = 2

	ShipsPerFleet = 3
)

// NewPlacementQueue returns the ship sizes in the order they must be placed.
func NewPlacementQueue() []int {
	return []int{ShipSizeCarrier, ShipSizeCruiser, ShipSizeDestroyer}
}

func ShipName(size int) string {
	switch size {
	case ShipSizeCarrier:
		return "Carrier"
	case ShipSizeCruiser:
		return "Cruiser"
	case ShipSizeDestroyer:
		return "Destroyer"
	default:
		return "Unknown"
	}
}

// Ship shape is fixed once placed; only the hit state changes.
type Ship struct {
	cells []Coordinates
	hit   []bool
	hits  int
}

func NewShip(cells []Coordinates) *Ship {
	owned := make([]Coordinates, len(cells))
	copy(owned, cells)

	return &Ship{
		cells: owned,
		hit:   make([]bool, len(cells)),
		hits:  0,
	}
}

func (sh *Ship) Size() int {
	return len(sh.cells)
}

func (sh *Ship) Name() string {
	return ShipName(sh.Size())
}

func (sh *Ship) Cells() []Coordinates {
	out := make([]Coordinates, len(sh.cells))
	copy(out, sh.cells)
	return out
}

// Returns the index of c within the ship.
func (sh *Ship) occupies(c Coordinates) (int, bool) {
	for i, cell := range sh.cells {
		if cell == c {
			return i, true
		}
	}
	return -1, false
}

func (sh *Ship) gotHit(idx int) {
	if sh.hit[idx] {
		return
	}
	sh.hit[idx] = true
	sh.hits++
}

func (sh *Ship) Hits() int {
	return sh.hits
}

func (sh *Ship) IsSunk() bool {
	return sh.hits == len(sh.cells)
}
