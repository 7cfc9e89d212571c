package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestApplyBodyForcesAddsGravityAlongOrientation(t *testing.T) {
	grid := NewMACGrid(3, 3, 3, 1)
	dt := 0.01
	applyBodyForces(grid, r3.Vec{X: 0, Y: -1, Z: 0}, dt)

	assert.InDelta(t, -GravityMagnitude*dt, grid.V.At(1, 1, 1), 1e-9)
	assert.Equal(t, 0.0, grid.U.At(1, 1, 1), "orientation has no x component")
	assert.Equal(t, 0.0, grid.W.At(1, 1, 1), "orientation has no z component")
}

func TestApplyBodyForcesReZerosSolidFaces(t *testing.T) {
	grid := NewMACGrid(3, 3, 3, 1)
	grid.Label.Set(1, 0, 1, Solid)
	applyBodyForces(grid, r3.Vec{X: 0, Y: -1, Z: 0}, 0.01)

	assert.Equal(t, 0.0, grid.V.At(1, 0, 1), "face against a solid cell stays zero after gravity")
	assert.Equal(t, 0.0, grid.V.At(1, 1, 1), "face between the solid cell and its air neighbor stays zero")
}

func TestApplyBodyForcesSkipsZeroComponents(t *testing.T) {
	grid := NewMACGrid(2, 2, 2, 1)
	grid.U.Fill(7)
	applyBodyForces(grid, r3.Vec{X: 0, Y: 0, Z: 1}, 0.01)
	assert.Equal(t, 7.0, grid.U.At(1, 0, 0), "x untouched when orientation.X is zero")
}
