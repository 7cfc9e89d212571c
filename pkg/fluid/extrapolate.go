package fluid

// extrapolateGridFluidData fills Unknown faces of one staggered velocity
// grid by iterative 6-connected neighbor-averaging, per spec.md §4.4:
// layer 0 is every already-known face; for d=1..depth, each Unknown face
// adjacent to at least one layer-(d-1) face becomes the mean of its
// known neighbors and joins layer d. This guarantees every face reachable
// from fluid within `depth` steps carries a defined value.
func extrapolateGridFluidData(g *Grid3, known *BoolGrid3, depth int) {
	nx, ny, nz := g.Dims()

	// layer[i,j,k] is the round at which (i,j,k) became known; -1 means
	// still unknown. Known-at-entry faces are layer 0.
	layer := make([]int8, nx*ny*nz)
	idx := func(i, j, k int) int { return (i*ny+j)*nz + k }
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if known.At(i, j, k) {
					layer[idx(i, j, k)] = 0
				} else {
					layer[idx(i, j, k)] = -1
				}
			}
		}
	}

	type coord struct{ i, j, k int }
	neighborsOf := func(i, j, k int) []coord {
		cands := []coord{
			{i - 1, j, k}, {i + 1, j, k},
			{i, j - 1, k}, {i, j + 1, k},
			{i, j, k - 1}, {i, j, k + 1},
		}
		out := cands[:0]
		for _, c := range cands {
			if c.i >= 0 && c.i < nx && c.j >= 0 && c.j < ny && c.k >= 0 && c.k < nz {
				out = append(out, c)
			}
		}
		return out
	}

	for d := 1; d <= depth; d++ {
		type fill struct {
			i, j, k int
			v       float64
		}
		var toFill []fill
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					if layer[idx(i, j, k)] != -1 {
						continue
					}
					sum := 0.0
					count := 0
					touchesPrevLayer := false
					for _, n := range neighborsOf(i, j, k) {
						nl := layer[idx(n.i, n.j, n.k)]
						if nl == -1 {
							continue
						}
						sum += g.At(n.i, n.j, n.k)
						count++
						if nl == int8(d-1) {
							touchesPrevLayer = true
						}
					}
					if touchesPrevLayer && count > 0 {
						toFill = append(toFill, fill{i, j, k, sum / float64(count)})
					}
				}
			}
		}
		if len(toFill) == 0 {
			break
		}
		for _, f := range toFill {
			g.Set(f.i, f.j, f.k, f.v)
			known.Set(f.i, f.j, f.k, true)
			layer[idx(f.i, f.j, f.k)] = int8(d)
		}
	}
}

// extrapolationDepth picks the default depth spec.md §4.4/§9 describe:
// the tighter CFL-driven bound (ADVECT_MAX cells per step + 1) unless the
// configuration asks for the looser max-grid-dimension behavior.
func extrapolationDepth(nx, ny, nz int, useMaxDim bool) int {
	if useMaxDim {
		d := nx
		if ny > d {
			d = ny
		}
		if nz > d {
			d = nz
		}
		return d
	}
	return AdvectMaxCellsPerSubstep + 1
}
