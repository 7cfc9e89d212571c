package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRK3StepUniformFieldMovesAtConstantVelocity(t *testing.T) {
	grid := NewMACGrid(5, 5, 5, 1)
	grid.U.Fill(2)

	x := r3.Vec{X: 2, Y: 2, Z: 2}
	got := rk3Step(grid, x, 0.1)

	assert.InDelta(t, 2.2, got.X, 1e-9, "uniform field integrates exactly regardless of method order")
	assert.InDelta(t, 2.0, got.Y, 1e-9)
	assert.InDelta(t, 2.0, got.Z, 1e-9)
}

func TestAdvectParticlesSubstepsUnderCFL(t *testing.T) {
	grid := NewMACGrid(10, 2, 2, 1)
	grid.U.Fill(100) // fast enough that one substep would overshoot many cells
	particles := []Particle{{Pos: r3.Vec{X: 1, Y: 1, Z: 1}, Vel: r3.Vec{X: 100, Y: 0, Z: 0}}}

	advectParticles(grid, particles, 0.05)

	assert.LessOrEqual(t, particles[0].Pos.X, float64(grid.NX)*grid.Dx)
	assert.GreaterOrEqual(t, particles[0].Pos.X, 0.0)
}

func TestClampToDomainKeepsPositionInside(t *testing.T) {
	grid := NewMACGrid(4, 4, 4, 1)
	clamped := clampToDomain(grid, r3.Vec{X: -5, Y: 100, Z: 2})
	assert.Equal(t, 0.0, clamped.X)
	assert.Less(t, clamped.Y, 4.0)
	assert.Equal(t, 2.0, clamped.Z)
}

func TestClampHelper(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-1, 0, 5))
	assert.Equal(t, 5.0, clamp(10, 0, 5))
	assert.Equal(t, 3.0, clamp(3, 0, 5))
}
