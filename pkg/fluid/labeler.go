package fluid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// labelGrid reclassifies every non-Solid cell as Fluid or Air from current
// particle occupancy, per spec.md §4.3: Fluid iff at least one particle
// currently lies in the cell, else Air. Solid cells are never touched —
// they come from initial geometry and are permanent.
func labelGrid(grid *MACGrid, particles []Particle) {
	nx, ny, nz := grid.Label.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if grid.Label.At(i, j, k) != Solid {
					grid.Label.Set(i, j, k, Air)
				}
			}
		}
	}

	dx := grid.Dx
	for _, p := range particles {
		i, j, k := cellOf(p.Pos, dx)
		if !grid.Label.InBounds(i, j, k) {
			continue
		}
		if grid.Label.At(i, j, k) != Solid {
			grid.Label.Set(i, j, k, Fluid)
		}
	}
}

// cellOf returns the integer cell coordinate containing world position x,
// for a grid of cell width dx.
func cellOf(x r3.Vec, dx float64) (int, int, int) {
	return int(math.Floor(x.X / dx)), int(math.Floor(x.Y / dx)), int(math.Floor(x.Z / dx))
}
