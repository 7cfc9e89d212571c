package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid3SetAt(t *testing.T) {
	g := NewGrid3(2, 3, 4)
	g.Set(1, 2, 3, 7.5)
	assert.Equal(t, 7.5, g.At(1, 2, 3))
	assert.Equal(t, 0.0, g.At(0, 0, 0))
}

func TestGrid3AtPanicsOutOfRange(t *testing.T) {
	g := NewGrid3(2, 2, 2)
	assert.Panics(t, func() { g.At(2, 0, 0) })
	assert.Panics(t, func() { g.Set(-1, 0, 0, 1) })
}

func TestGrid3FillAndCopyFrom(t *testing.T) {
	g := NewGrid3(2, 2, 2)
	g.Fill(3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				assert.Equal(t, 3.0, g.At(i, j, k))
			}
		}
	}

	dst := NewGrid3(2, 2, 2)
	dst.CopyFrom(g)
	assert.Equal(t, 3.0, dst.At(1, 1, 1))
}

func TestBoolGrid3(t *testing.T) {
	g := NewBoolGrid3(2, 2, 2)
	assert.False(t, g.At(0, 0, 0))
	g.Set(0, 0, 0, true)
	assert.True(t, g.At(0, 0, 0))
	g.Fill(true)
	assert.True(t, g.At(1, 1, 1))
}

func TestLabelGridDefaultsToAir(t *testing.T) {
	g := NewLabelGrid(3, 3, 3)
	assert.Equal(t, Air, g.At(1, 1, 1))
	g.Set(1, 1, 1, Fluid)
	assert.Equal(t, Fluid, g.At(1, 1, 1))
	assert.True(t, g.InBounds(2, 2, 2))
	assert.False(t, g.InBounds(3, 0, 0))
}

func TestLabelString(t *testing.T) {
	assert.Equal(t, "SOLID", Solid.String())
	assert.Equal(t, "FLUID", Fluid.String())
	assert.Equal(t, "AIR", Air.String())
}
