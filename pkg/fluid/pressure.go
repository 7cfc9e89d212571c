package fluid

import "gonum.org/v1/gonum/floats"

// pressureSystem is the sparse SPD Laplacian restricted to Fluid cells:
// Air cells are Dirichlet boundaries at p=0 and contribute nothing to the
// unknown vector, Solid cells simply don't couple across their faces.
type pressureSystem struct {
	grid    *MACGrid
	density float64
	index   []int // index[i*ny*nz+j*nz+k] -> unknown slot, or -1
	cells   []int // unknown slot -> flattened (i,j,k) index, inverse of index
	diag    []float64
}

func newPressureSystem(grid *MACGrid, density float64) *pressureSystem {
	nx, ny, nz := grid.Label.Dims()
	sys := &pressureSystem{
		grid:    grid,
		density: density,
		index:   make([]int, nx*ny*nz),
	}
	for i := range sys.index {
		sys.index[i] = -1
	}
	flat := func(i, j, k int) int { return (i*ny+j)*nz + k }

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if grid.Label.At(i, j, k) != Fluid {
					continue
				}
				sys.index[flat(i, j, k)] = len(sys.cells)
				sys.cells = append(sys.cells, flat(i, j, k))
			}
		}
	}

	sys.diag = make([]float64, len(sys.cells))
	for slot, f := range sys.cells {
		i, j, k := f/(ny*nz), (f/nz)%ny, f%nz
		sys.diag[slot] = float64(sys.nonSolidNeighbors(i, j, k))
	}
	return sys
}

func (s *pressureSystem) nonSolidNeighbors(i, j, k int) int {
	n := 0
	if !s.grid.IsSolid(i-1, j, k) {
		n++
	}
	if !s.grid.IsSolid(i+1, j, k) {
		n++
	}
	if !s.grid.IsSolid(i, j-1, k) {
		n++
	}
	if !s.grid.IsSolid(i, j+1, k) {
		n++
	}
	if !s.grid.IsSolid(i, j, k-1) {
		n++
	}
	if !s.grid.IsSolid(i, j, k+1) {
		n++
	}
	return n
}

// apply computes Ax for the unknown vector x (one entry per Fluid cell,
// ordered per s.cells), writing into dst. Air neighbors are p=0 Dirichlet
// boundaries so they drop out of the off-diagonal sum entirely; Solid
// neighbors already don't count towards diag.
func (s *pressureSystem) apply(x, dst []float64) {
	_, ny, nz := s.grid.Label.Dims()
	for slot, f := range s.cells {
		i, j, k := f/(ny*nz), (f/nz)%ny, f%nz
		sum := s.diag[slot] * x[slot]
		neighbors := [6][3]int{
			{i - 1, j, k}, {i + 1, j, k},
			{i, j - 1, k}, {i, j + 1, k},
			{i, j, k - 1}, {i, j, k + 1},
		}
		for _, n := range neighbors {
			if s.grid.Label.InBounds(n[0], n[1], n[2]) && s.grid.Label.At(n[0], n[1], n[2]) == Fluid {
				sum -= x[s.index[(n[0]*ny+n[1])*nz+n[2]]]
			}
		}
		dst[slot] = sum
	}
}

// divergenceRHS fills b with -divergence(u)*Dx*density/dt per Fluid
// cell, the right-hand side of the pressure Poisson equation (the scaling
// the teacher's solveSingleGrid calls cp, density*h/dt, applied the other
// way around here since we solve for p directly rather than iterating a
// per-face correction).
func (s *pressureSystem) divergenceRHS(dt float64) []float64 {
	_, ny, nz := s.grid.Label.Dims()
	dx := s.grid.Dx
	scale := s.density * dx / dt
	b := make([]float64, len(s.cells))
	for slot, f := range s.cells {
		i, j, k := f/(ny*nz), (f/nz)%ny, f%nz
		div := (s.grid.U.At(i+1, j, k) - s.grid.U.At(i, j, k)) +
			(s.grid.V.At(i, j+1, k) - s.grid.V.At(i, j, k)) +
			(s.grid.W.At(i, j, k+1) - s.grid.W.At(i, j, k))
		b[slot] = -div * scale
	}
	return b
}

// solve runs Jacobi-preconditioned CG for Ap=b and returns p per Fluid
// cell slot, along with the iteration count and whether the residual
// reached tolerance*||b|| before maxIter, per spec.md §4.6's convergence
// contract (non-convergence is reported, not fatal).
func (s *pressureSystem) solve(b []float64, tolerance float64, maxIter int) ([]float64, int, bool) {
	n := len(b)
	p := make([]float64, n)
	if n == 0 {
		return p, 0, true
	}

	r := make([]float64, n)
	copy(r, b)

	minv := make([]float64, n)
	for i, d := range s.diag {
		if d > 0 {
			minv[i] = 1 / d
		}
	}

	z := make([]float64, n)
	applyJacobi := func(dst, src []float64) {
		for i := range dst {
			dst[i] = minv[i] * src[i]
		}
	}
	applyJacobi(z, r)

	d := make([]float64, n)
	copy(d, z)

	rz := floats.Dot(r, z)
	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		bNorm = 1
	}

	ad := make([]float64, n)
	iter := 0
	converged := false
	for ; iter < maxIter; iter++ {
		if floats.Norm(r, 2)/bNorm < tolerance {
			converged = true
			break
		}
		s.apply(d, ad)
		dad := floats.Dot(d, ad)
		if dad == 0 {
			break
		}
		alpha := rz / dad

		floats.AddScaled(p, alpha, d)
		floats.AddScaled(r, -alpha, ad)

		applyJacobi(z, r)
		rzNew := floats.Dot(r, z)
		if rz == 0 {
			break
		}
		beta := rzNew / rz
		for i := range d {
			d[i] = z[i] + beta*d[i]
		}
		rz = rzNew
	}
	if !converged && floats.Norm(r, 2)/bNorm < tolerance {
		converged = true
	}
	return p, iter, converged
}

// applyPressure solves for the pressure field that removes divergence from
// the velocity grids and applies the resulting per-face correction, per
// spec.md §4.6. It reports the CG iteration count and whether the solve
// converged; non-convergence is not fatal, per spec.md §7. density,
// cgTolerance, and cgMaxIter are configuration-overridable per
// SPEC_FULL.md's AMBIENT STACK section, defaulting to DefaultFluidDensity/
// DefaultCGTolerance/DefaultCGMaxIter.
func applyPressure(grid *MACGrid, dt, density, cgTolerance float64, cgMaxIter int) (iterations int, converged bool) {
	sys := newPressureSystem(grid, density)
	grid.P.Fill(0)
	if len(sys.cells) == 0 {
		return 0, true
	}

	b := sys.divergenceRHS(dt)
	x, iterations, converged := sys.solve(b, cgTolerance, cgMaxIter)

	_, ny, nz := grid.Label.Dims()
	for slot, f := range sys.cells {
		i, j, k := f/(ny*nz), (f/nz)%ny, f%nz
		grid.P.Set(i, j, k, x[slot])
	}

	dx := grid.Dx
	coef := dt / (density * dx)

	nxU, nyU, nzU := grid.U.Dims()
	for i := 1; i < nxU-1; i++ {
		for j := 0; j < nyU; j++ {
			for k := 0; k < nzU; k++ {
				if grid.IsSolid(i-1, j, k) || grid.IsSolid(i, j, k) {
					continue
				}
				grad := grid.P.At(i, j, k) - grid.P.At(i-1, j, k)
				grid.U.Add(i, j, k, -coef*grad)
			}
		}
	}
	nxV, nyV, nzV := grid.V.Dims()
	for i := 0; i < nxV; i++ {
		for j := 1; j < nyV-1; j++ {
			for k := 0; k < nzV; k++ {
				if grid.IsSolid(i, j-1, k) || grid.IsSolid(i, j, k) {
					continue
				}
				grad := grid.P.At(i, j, k) - grid.P.At(i, j-1, k)
				grid.V.Add(i, j, k, -coef*grad)
			}
		}
	}
	nxW, nyW, nzW := grid.W.Dims()
	for i := 0; i < nxW; i++ {
		for j := 0; j < nyW; j++ {
			for k := 1; k < nzW-1; k++ {
				if grid.IsSolid(i, j, k-1) || grid.IsSolid(i, j, k) {
					continue
				}
				grad := grid.P.At(i, j, k) - grid.P.At(i, j, k-1)
				grid.W.Add(i, j, k, -coef*grad)
			}
		}
	}

	grid.zeroSolidFaceVelocities()
	return iterations, converged
}
