package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCleanupParticlesRelocatesOutOfSolidCells(t *testing.T) {
	grid := NewMACGrid(3, 3, 3, 1)
	grid.Label.Set(1, 1, 1, Solid)
	particles := []Particle{{Pos: r3.Vec{X: 1.5, Y: 1.5, Z: 1.5}}}

	res := cleanupParticles(grid, particles, 3)

	assert.Equal(t, 1, res.Repaired)
	assert.Equal(t, 0, res.Trapped)
	i, j, k := cellOf(particles[0].Pos, grid.Dx)
	assert.False(t, grid.IsSolid(i, j, k))
}

func TestCleanupParticlesLeavesFluidParticlesAlone(t *testing.T) {
	grid := NewMACGrid(3, 3, 3, 1)
	start := r3.Vec{X: 1.5, Y: 1.5, Z: 1.5}
	particles := []Particle{{Pos: start}}

	res := cleanupParticles(grid, particles, 3)

	assert.Equal(t, 0, res.Repaired)
	assert.Equal(t, start, particles[0].Pos)
}

func TestCleanupParticlesCountsTrappedWhenFullyEnclosed(t *testing.T) {
	grid := NewMACGrid(3, 3, 3, 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				grid.Label.Set(i, j, k, Solid)
			}
		}
	}
	particles := []Particle{{Pos: r3.Vec{X: 1.5, Y: 1.5, Z: 1.5}}}

	res := cleanupParticles(grid, particles, 2)

	assert.Equal(t, 0, res.Repaired)
	assert.Equal(t, 1, res.Trapped)
}

func TestNearestNonSolidCellSearchesExpandingShells(t *testing.T) {
	grid := NewMACGrid(5, 5, 5, 1)
	grid.Label.Set(2, 2, 2, Solid)
	grid.Label.Set(3, 2, 2, Solid)
	// Nearest non-solid cell from (2,2,2) outward along +x is now two away.
	ti, tj, tk, found := nearestNonSolidCell(grid, 2, 2, 2, 3)
	assert.True(t, found)
	assert.False(t, grid.IsSolid(ti, tj, tk))
}
