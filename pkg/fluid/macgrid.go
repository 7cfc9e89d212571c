package fluid

// MACGrid is the staggered Marker-And-Cell lattice described in spec.md
// §3: a cell-centered pressure and label field plus three face-centered
// velocity components, each its own typed Grid3 rather than one packed
// array — per spec.md §9's Design Notes, keeping u/v/w separate keeps
// their differing shapes' bounds checks honest, the way the teacher keeps
// U and V as separate same-shape slices rather than one interleaved one.
type MACGrid struct {
	NX, NY, NZ int
	Dx         float64

	Label *LabelGrid

	P *Grid3

	U, V, W                *Grid3
	USaved, VSaved, WSaved *Grid3
	UKnown, VKnown, WKnown *BoolGrid3

	// Numerator/denominator scratch for the particle-to-grid scatter
	// (§4.2). Allocated once here so particlesToGrid never allocates.
	UNum, UDen *Grid3
	VNum, VDen *Grid3
	WNum, WDen *Grid3
}

// NewMACGrid allocates every field of the lattice for an nx*ny*nz domain
// of cell width dx. All grids are sized once here and reused for the
// lifetime of the solver; no step reallocates them.
func NewMACGrid(nx, ny, nz int, dx float64) *MACGrid {
	return &MACGrid{
		NX: nx, NY: ny, NZ: nz, Dx: dx,

		Label: NewLabelGrid(nx, ny, nz),

		P: NewGrid3(nx, ny, nz),

		U:      NewGrid3(nx+1, ny, nz),
		V:      NewGrid3(nx, ny+1, nz),
		W:      NewGrid3(nx, ny, nz+1),
		USaved: NewGrid3(nx+1, ny, nz),
		VSaved: NewGrid3(nx, ny+1, nz),
		WSaved: NewGrid3(nx, ny, nz+1),

		UKnown: NewBoolGrid3(nx+1, ny, nz),
		VKnown: NewBoolGrid3(nx, ny+1, nz),
		WKnown: NewBoolGrid3(nx, ny, nz+1),

		UNum: NewGrid3(nx+1, ny, nz),
		UDen: NewGrid3(nx+1, ny, nz),
		VNum: NewGrid3(nx, ny+1, nz),
		VDen: NewGrid3(nx, ny+1, nz),
		WNum: NewGrid3(nx, ny, nz+1),
		WDen: NewGrid3(nx, ny, nz+1),
	}
}

// saveVelocityGrids snapshots u,v,w into uSaved,vSaved,wSaved immediately
// after particle-to-grid transfer, per spec.md §4.2 — the baseline FLIP's
// grid-to-particle update (§4.7) diffs against.
func (m *MACGrid) saveVelocityGrids() {
	m.USaved.CopyFrom(m.U)
	m.VSaved.CopyFrom(m.V)
	m.WSaved.CopyFrom(m.W)
}

// IsSolid reports whether (i,j,k) is a Solid cell, treating out-of-domain
// coordinates as Solid (the domain boundary behaves like a wall).
func (m *MACGrid) IsSolid(i, j, k int) bool {
	if !m.Label.InBounds(i, j, k) {
		return true
	}
	return m.Label.At(i, j, k) == Solid
}

// zeroSolidFaceVelocities sets the normal velocity to 0 at every face
// adjacent to a Solid cell, per spec.md §3's post-projection invariant
// and §4.6's velocity-update contract.
func (m *MACGrid) zeroSolidFaceVelocities() {
	for i := 0; i <= m.NX; i++ {
		for j := 0; j < m.NY; j++ {
			for k := 0; k < m.NZ; k++ {
				left := i - 1
				if m.IsSolid(left, j, k) || m.IsSolid(i, j, k) {
					m.U.Set(i, j, k, 0)
				}
			}
		}
	}
	for i := 0; i < m.NX; i++ {
		for j := 0; j <= m.NY; j++ {
			for k := 0; k < m.NZ; k++ {
				below := j - 1
				if m.IsSolid(i, below, k) || m.IsSolid(i, j, k) {
					m.V.Set(i, j, k, 0)
				}
			}
		}
	}
	for i := 0; i < m.NX; i++ {
		for j := 0; j < m.NY; j++ {
			for k := 0; k <= m.NZ; k++ {
				front := k - 1
				if m.IsSolid(i, j, front) || m.IsSolid(i, j, k) {
					m.W.Set(i, j, k, 0)
				}
			}
		}
	}
}
