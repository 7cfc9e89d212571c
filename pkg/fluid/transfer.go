package fluid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// axisCand holds the (up to two) grid-line candidates a coordinate's
// 1D hat kernel touches along one axis, per spec.md §4.2's H(r) = 1-|r|
// kernel: the particle's coordinate is converted to grid units relative
// to offset (0 for a face-aligned axis, dx/2 for a cell-center-aligned
// axis), and the two bracketing grid lines each pick up linear weight.
// Candidates outside [0,n) are marked invalid.
type axisCand struct {
	i0, i1   int
	w0, w1   float64
	ok0, ok1 bool
}

func axisCandOf(coord, offset, dx float64, n int) axisCand {
	u := (coord - offset) / dx
	i0 := int(math.Floor(u))
	i1 := i0 + 1
	w0 := hatFunction(u - float64(i0))
	w1 := hatFunction(u - float64(i1))
	return axisCand{
		i0: i0, i1: i1, w0: w0, w1: w1,
		ok0: i0 >= 0 && i0 < n && w0 > 0,
		ok1: i1 >= 0 && i1 < n && w1 > 0,
	}
}

// scatterFace accumulates weight*value into num/den at (i,j,k) for every
// combination of the three per-axis candidates whose combined weight is
// positive — the "up to eight faces" scatter spec.md §4.2 calls for,
// done once per particle per axis rather than once per face.
func scatterFace(num, den *Grid3, ax, ay, az axisCand, value float64) {
	type cand struct {
		i int
		w float64
	}
	xs := make([]cand, 0, 2)
	if ax.ok0 {
		xs = append(xs, cand{ax.i0, ax.w0})
	}
	if ax.ok1 {
		xs = append(xs, cand{ax.i1, ax.w1})
	}
	ys := make([]cand, 0, 2)
	if ay.ok0 {
		ys = append(ys, cand{ay.i0, ay.w0})
	}
	if ay.ok1 {
		ys = append(ys, cand{ay.i1, ay.w1})
	}
	zs := make([]cand, 0, 2)
	if az.ok0 {
		zs = append(zs, cand{az.i0, az.w0})
	}
	if az.ok1 {
		zs = append(zs, cand{az.i1, az.w1})
	}
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				w := x.w * y.w * z.w
				if w <= 0 {
					continue
				}
				num.Add(x.i, y.i, z.i, w*value)
				den.Add(x.i, y.i, z.i, w)
			}
		}
	}
}

// particlesToGrid sets each MAC face velocity to the weighted average of
// nearby particle velocities under the trilinear hat kernel, per spec.md
// §4.2. Faces with no contributing particle are left Unknown. The grid's
// U/V/W are overwritten from scratch — this is the one place per step
// that defines them from particle data rather than updating in place.
func particlesToGrid(grid *MACGrid, particles []Particle) {
	dx := grid.Dx
	half := dx / 2

	grid.UNum.Fill(0)
	grid.UDen.Fill(0)
	grid.VNum.Fill(0)
	grid.VDen.Fill(0)
	grid.WNum.Fill(0)
	grid.WDen.Fill(0)

	unx, uny, unz := grid.U.Dims()
	vnx, vny, vnz := grid.V.Dims()
	wnx, wny, wnz := grid.W.Dims()

	for _, p := range particles {
		x, y, z := p.Pos.X, p.Pos.Y, p.Pos.Z

		// u faces: x face-aligned, y/z cell-center-aligned.
		scatterFace(grid.UNum, grid.UDen,
			axisCandOf(x, 0, dx, unx),
			axisCandOf(y, half, dx, uny),
			axisCandOf(z, half, dx, unz),
			p.Vel.X)

		// v faces: y face-aligned, x/z cell-center-aligned.
		scatterFace(grid.VNum, grid.VDen,
			axisCandOf(x, half, dx, vnx),
			axisCandOf(y, 0, dx, vny),
			axisCandOf(z, half, dx, vnz),
			p.Vel.Y)

		// w faces: z face-aligned, x/y cell-center-aligned.
		scatterFace(grid.WNum, grid.WDen,
			axisCandOf(x, half, dx, wnx),
			axisCandOf(y, half, dx, wny),
			axisCandOf(z, 0, dx, wnz),
			p.Vel.Z)
	}

	finishTransfer(grid.U, grid.UKnown, grid.UNum, grid.UDen)
	finishTransfer(grid.V, grid.VKnown, grid.VNum, grid.VDen)
	finishTransfer(grid.W, grid.WKnown, grid.WNum, grid.WDen)
}

// finishTransfer converts accumulated numerator/denominator pairs into
// final face values and known flags: value = num/den if den>0, else the
// face is Unknown (left at 0, per spec.md §4.2).
func finishTransfer(dst *Grid3, known *BoolGrid3, num, den *Grid3) {
	nx, ny, nz := dst.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				d := den.At(i, j, k)
				if d > 0 {
					dst.Set(i, j, k, num.At(i, j, k)/d)
					known.Set(i, j, k, true)
				} else {
					dst.Set(i, j, k, 0)
					known.Set(i, j, k, false)
				}
			}
		}
	}
}

// interpVel trilinearly interpolates the three staggered velocity
// components at world position x, per spec.md §4.7's v_PIC definition
// (and reused, against u-uSaved etc., for v_FLIP).
func interpVel(u, v, w *Grid3, dx float64, x r3.Vec) r3.Vec {
	return r3.Vec{
		X: sampleStaggered(u, dx, x, 0, dx/2, dx/2),
		Y: sampleStaggered(v, dx, x, dx/2, 0, dx/2),
		Z: sampleStaggered(w, dx, x, dx/2, dx/2, 0),
	}
}

// sampleStaggered trilinearly interpolates one staggered component grid
// at x, given the per-axis offsets of its face-centered sampling lattice.
func sampleStaggered(g *Grid3, dx float64, x r3.Vec, offX, offY, offZ float64) float64 {
	nx, ny, nz := g.Dims()

	ux := clampCoord((x.X-offX)/dx, nx)
	uy := clampCoord((x.Y-offY)/dx, ny)
	uz := clampCoord((x.Z-offZ)/dx, nz)

	i0 := int(math.Floor(ux))
	j0 := int(math.Floor(uy))
	k0 := int(math.Floor(uz))
	i1, j1, k1 := i0+1, j0+1, k0+1
	if i1 > nx-1 {
		i1 = nx - 1
	}
	if j1 > ny-1 {
		j1 = ny - 1
	}
	if k1 > nz-1 {
		k1 = nz - 1
	}

	tx := ux - float64(i0)
	ty := uy - float64(j0)
	tz := uz - float64(k0)

	c000 := g.At(i0, j0, k0)
	c100 := g.At(i1, j0, k0)
	c010 := g.At(i0, j1, k0)
	c110 := g.At(i1, j1, k0)
	c001 := g.At(i0, j0, k1)
	c101 := g.At(i1, j0, k1)
	c011 := g.At(i0, j1, k1)
	c111 := g.At(i1, j1, k1)

	c00 := c000*(1-tx) + c100*tx
	c10 := c010*(1-tx) + c110*tx
	c01 := c001*(1-tx) + c101*tx
	c11 := c011*(1-tx) + c111*tx

	c0 := c00*(1-ty) + c10*ty
	c1 := c01*(1-ty) + c11*ty

	return c0*(1-tz) + c1*tz
}

func clampCoord(u float64, n int) float64 {
	if u < 0 {
		return 0
	}
	if u > float64(n-1) {
		return float64(n - 1)
	}
	return u
}

// gridToParticles blends PIC and FLIP velocity updates for every particle,
// per spec.md §4.7.
func gridToParticles(grid *MACGrid, particles []Particle, picWeight float64) {
	dx := grid.Dx
	parallelRange(0, len(particles), func(idx int) {
		p := &particles[idx]
		vPIC := interpVel(grid.U, grid.V, grid.W, dx, p.Pos)

		// v_FLIP = v_p + interp(u - uSaved, ...)
		du := deltaSample(grid.U, grid.USaved, dx, p.Pos, 0, dx/2, dx/2)
		dv := deltaSample(grid.V, grid.VSaved, dx, p.Pos, dx/2, 0, dx/2)
		dw := deltaSample(grid.W, grid.WSaved, dx, p.Pos, dx/2, dx/2, 0)
		vFLIP := r3.Add(p.Vel, r3.Vec{X: du, Y: dv, Z: dw})

		blended := r3.Add(r3.Scale(1-picWeight, vFLIP), r3.Scale(picWeight, vPIC))
		p.Vel = blended
	})
}

// deltaSample samples (current-saved) at x for one staggered component,
// avoiding the allocation of a full delta grid.
func deltaSample(cur, saved *Grid3, dx float64, x r3.Vec, offX, offY, offZ float64) float64 {
	return sampleStaggered(cur, dx, x, offX, offY, offZ) - sampleStaggered(saved, dx, x, offX, offY, offZ)
}
