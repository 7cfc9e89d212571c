package fluid

import "gonum.org/v1/gonum/spatial/r3"

// applyBodyForces adds dt*GravityMagnitude*orientation to every face
// velocity, known or not, per spec.md §4.5. orientation is the unit vector updateOrientation
// last set (default {0,-1,0}, standard down); only the component of gravity
// along each face's own axis is added, matching the staggered layout.
func applyBodyForces(grid *MACGrid, orientation r3.Vec, dt float64) {
	g := r3.Scale(GravityMagnitude*dt, orientation)

	if g.X != 0 {
		nx, ny, nz := grid.U.Dims()
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					grid.U.Add(i, j, k, g.X)
				}
			}
		}
	}
	if g.Y != 0 {
		nx, ny, nz := grid.V.Dims()
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					grid.V.Add(i, j, k, g.Y)
				}
			}
		}
	}
	if g.Z != 0 {
		nx, ny, nz := grid.W.Dims()
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					grid.W.Add(i, j, k, g.Z)
				}
			}
		}
	}

	grid.zeroSolidFaceVelocities()
}
