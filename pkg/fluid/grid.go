package fluid

import "fmt"

// Grid3 is a dense, contiguous three-dimensional scalar field indexed by
// integer cell coordinates [i,j,k]. It is sized once at construction and
// never reallocated during a step, matching the teacher's pattern of
// fixed-size backing slices (pkg/fluid.Fluid.U/V/p/S in the 2D original).
type Grid3 struct {
	nx, ny, nz int
	data       []float64
}

// NewGrid3 allocates a zero-filled grid of the given shape.
func NewGrid3(nx, ny, nz int) *Grid3 {
	return &Grid3{
		nx: nx, ny: ny, nz: nz,
		data: make([]float64, nx*ny*nz),
	}
}

// Dims returns the grid's shape.
func (g *Grid3) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

func (g *Grid3) inBounds(i, j, k int) bool {
	return i >= 0 && i < g.nx && j >= 0 && j < g.ny && k >= 0 && k < g.nz
}

func (g *Grid3) index(i, j, k int) int {
	return (i*g.ny+j)*g.nz + k
}

// At returns the value at (i,j,k), panicking on out-of-range indices —
// the same contract walls.go uses for the teacher's SetSolid/IsSolid.
func (g *Grid3) At(i, j, k int) float64 {
	if !g.inBounds(i, j, k) {
		panic(fmt.Sprintf("fluid: grid index (%d,%d,%d) out of range for (%d,%d,%d)", i, j, k, g.nx, g.ny, g.nz))
	}
	return g.data[g.index(i, j, k)]
}

// Set writes the value at (i,j,k).
func (g *Grid3) Set(i, j, k int, v float64) {
	if !g.inBounds(i, j, k) {
		panic(fmt.Sprintf("fluid: grid index (%d,%d,%d) out of range for (%d,%d,%d)", i, j, k, g.nx, g.ny, g.nz))
	}
	g.data[g.index(i, j, k)] = v
}

// Add accumulates a delta at (i,j,k).
func (g *Grid3) Add(i, j, k int, delta float64) {
	g.data[g.index(i, j, k)] += delta
}

// Fill sets every cell to v.
func (g *Grid3) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CopyFrom overwrites g's contents with src's, which must share g's shape.
func (g *Grid3) CopyFrom(src *Grid3) {
	copy(g.data, src.data)
}

// BoolGrid3 is the "known" companion grid used alongside a velocity Grid3:
// per spec.md §9's Design Notes, UNKNOWN is tracked via a parallel boolean
// grid rather than a bit-punned sentinel float.
type BoolGrid3 struct {
	nx, ny, nz int
	data       []bool
}

// NewBoolGrid3 allocates a grid of the given shape, all cells false.
func NewBoolGrid3(nx, ny, nz int) *BoolGrid3 {
	return &BoolGrid3{nx: nx, ny: ny, nz: nz, data: make([]bool, nx*ny*nz)}
}

func (g *BoolGrid3) index(i, j, k int) int { return (i*g.ny+j)*g.nz + k }

// At returns whether (i,j,k) is known.
func (g *BoolGrid3) At(i, j, k int) bool { return g.data[g.index(i, j, k)] }

// Set marks (i,j,k)'s known state.
func (g *BoolGrid3) Set(i, j, k int, v bool) { g.data[g.index(i, j, k)] = v }

// Fill sets every cell to v.
func (g *BoolGrid3) Fill(v bool) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Label identifies the physical contents of a MAC grid cell.
type Label int

const (
	// Solid cells are set once from initial geometry and never relabeled.
	Solid Label = iota
	// Fluid cells currently contain at least one marker particle.
	Fluid
	// Air cells are neither Solid nor Fluid.
	Air
)

func (l Label) String() string {
	switch l {
	case Solid:
		return "SOLID"
	case Fluid:
		return "FLUID"
	case Air:
		return "AIR"
	default:
		return "UNKNOWN"
	}
}

// LabelGrid is the dense nx*ny*nz cell classification field.
type LabelGrid struct {
	nx, ny, nz int
	data       []Label
}

// NewLabelGrid allocates a grid of the given shape, all cells Air.
func NewLabelGrid(nx, ny, nz int) *LabelGrid {
	g := &LabelGrid{nx: nx, ny: ny, nz: nz, data: make([]Label, nx*ny*nz)}
	g.Fill(Air)
	return g
}

func (g *LabelGrid) index(i, j, k int) int { return (i*g.ny+j)*g.nz + k }

// Dims returns the grid's shape.
func (g *LabelGrid) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// At returns the label at (i,j,k).
func (g *LabelGrid) At(i, j, k int) Label { return g.data[g.index(i, j, k)] }

// Set writes the label at (i,j,k).
func (g *LabelGrid) Set(i, j, k int, l Label) { g.data[g.index(i, j, k)] = l }

// Fill sets every cell's label to l.
func (g *LabelGrid) Fill(l Label) {
	for i := range g.data {
		g.data[i] = l
	}
}

// InBounds reports whether (i,j,k) addresses a cell in this grid.
func (g *LabelGrid) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.nx && j >= 0 && j < g.ny && k >= 0 && k < g.nz
}
