package fluid

import "gonum.org/v1/gonum/spatial/r3"

// cleanupResult reports how particle repair went this step, surfaced
// through Diagnostics().
type cleanupResult struct {
	Repaired int
	Trapped  int
}

// cleanupParticles finds particles that ended up inside a Solid cell after
// advection and projects them to the nearest non-Solid cell's interior,
// per spec.md §4.9. A particle with no non-Solid cell within searchRadius
// cells is left in place and counted as trapped rather than repaired —
// the original solver's "strange particle" case.
func cleanupParticles(grid *MACGrid, particles []Particle, searchRadius int) cleanupResult {
	var res cleanupResult
	dx := grid.Dx
	for idx := range particles {
		p := &particles[idx]
		i, j, k := cellOf(p.Pos, dx)
		if !grid.IsSolid(i, j, k) {
			continue
		}

		ti, tj, tk, found := nearestNonSolidCell(grid, i, j, k, searchRadius)
		if !found {
			res.Trapped++
			continue
		}

		center := r3.Vec{
			X: (float64(ti) + 0.5) * dx,
			Y: (float64(tj) + 0.5) * dx,
			Z: (float64(tk) + 0.5) * dx,
		}
		p.Pos = center
		res.Repaired++
	}
	return res
}

// nearestNonSolidCell searches an expanding cube of cells centered on
// (i,j,k) for the closest non-Solid cell, up to radius cells out.
func nearestNonSolidCell(grid *MACGrid, i, j, k, radius int) (int, int, int, bool) {
	bestDist := -1
	var bi, bj, bk int
	found := false
	for r := 1; r <= radius; r++ {
		for di := -r; di <= r; di++ {
			for dj := -r; dj <= r; dj++ {
				for dk := -r; dk <= r; dk++ {
					if maxAbs3(di, dj, dk) != r {
						continue // only the shell at exactly this radius
					}
					ci, cj, ck := i+di, j+dj, k+dk
					if !grid.Label.InBounds(ci, cj, ck) || grid.IsSolid(ci, cj, ck) {
						continue
					}
					d := di*di + dj*dj + dk*dk
					if !found || d < bestDist {
						bestDist = d
						bi, bj, bk = ci, cj, ck
						found = true
					}
				}
			}
		}
		if found {
			return bi, bj, bk, true
		}
	}
	return 0, 0, 0, false
}

func maxAbs3(a, b, c int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if c < 0 {
		c = -c
	}
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
