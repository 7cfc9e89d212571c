package fluid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSeedParticlesCountAndBounds(t *testing.T) {
	label := NewLabelGrid(3, 3, 3)
	label.Set(1, 1, 1, Fluid)
	label.Set(1, 1, 2, Fluid)

	dx := 0.5
	rng := rand.New(rand.NewSource(1))
	particles := seedParticles(label, dx, rng)

	assert.Len(t, particles, 2*ParticlesPerCell)

	for _, p := range particles {
		i, j, k := cellOf(p.Pos, dx)
		assert.True(t, label.InBounds(i, j, k))
		assert.Equal(t, Fluid, label.At(i, j, k))
		assert.Equal(t, r3.Vec{}, p.Vel)
	}
}

func TestSeedParticlesSkipsNonFluidCells(t *testing.T) {
	label := NewLabelGrid(2, 2, 2)
	rng := rand.New(rand.NewSource(1))
	particles := seedParticles(label, 1, rng)
	assert.Empty(t, particles)
}
