package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLabelGridFromOccupancy(t *testing.T) {
	grid := NewMACGrid(3, 3, 3, 1)
	grid.Label.Set(0, 0, 0, Solid)
	grid.Label.Set(1, 1, 1, Fluid) // stale label from a previous step

	particles := []Particle{{Pos: r3.Vec{X: 2.5, Y: 2.5, Z: 2.5}}}
	labelGrid(grid, particles)

	assert.Equal(t, Solid, grid.Label.At(0, 0, 0), "solid cells are never reclassified")
	assert.Equal(t, Air, grid.Label.At(1, 1, 1), "stale fluid label is cleared without an occupying particle")
	assert.Equal(t, Fluid, grid.Label.At(2, 2, 2), "occupied cell becomes fluid")
}

func TestLabelGridIgnoresOutOfBoundsParticles(t *testing.T) {
	grid := NewMACGrid(2, 2, 2, 1)
	particles := []Particle{{Pos: r3.Vec{X: -5, Y: 0, Z: 0}}}
	assert.NotPanics(t, func() { labelGrid(grid, particles) })
}

func TestCellOf(t *testing.T) {
	i, j, k := cellOf(r3.Vec{X: 1.9, Y: -0.1, Z: 2.0}, 1.0)
	assert.Equal(t, 1, i)
	assert.Equal(t, -1, j)
	assert.Equal(t, 2, k)
}
