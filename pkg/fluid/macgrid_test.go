package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMACGridShapes(t *testing.T) {
	g := NewMACGrid(4, 5, 6, 0.5)

	nx, ny, nz := g.U.Dims()
	assert.Equal(t, [3]int{5, 5, 6}, [3]int{nx, ny, nz})

	nx, ny, nz = g.V.Dims()
	assert.Equal(t, [3]int{4, 6, 6}, [3]int{nx, ny, nz})

	nx, ny, nz = g.W.Dims()
	assert.Equal(t, [3]int{4, 5, 7}, [3]int{nx, ny, nz})
}

func TestMACGridIsSolidTreatsOutOfBoundsAsSolid(t *testing.T) {
	g := NewMACGrid(3, 3, 3, 1)
	assert.True(t, g.IsSolid(-1, 0, 0))
	assert.True(t, g.IsSolid(3, 0, 0))
	assert.False(t, g.IsSolid(1, 1, 1)) // defaults to Air, not Solid
}

func TestSaveVelocityGrids(t *testing.T) {
	g := NewMACGrid(2, 2, 2, 1)
	g.U.Set(0, 0, 0, 4.0)
	g.saveVelocityGrids()
	assert.Equal(t, 4.0, g.USaved.At(0, 0, 0))

	g.U.Set(0, 0, 0, 9.0)
	assert.Equal(t, 4.0, g.USaved.At(0, 0, 0), "saved copy is independent of live grid")
}

func TestZeroSolidFaceVelocities(t *testing.T) {
	g := NewMACGrid(3, 3, 3, 1)
	g.Label.Set(0, 1, 1, Solid)
	g.U.Fill(5)
	g.zeroSolidFaceVelocities()

	assert.Equal(t, 0.0, g.U.At(0, 1, 1), "face against domain boundary is zeroed")
	assert.Equal(t, 0.0, g.U.At(1, 1, 1), "face between solid and its air neighbor is zeroed")
	assert.NotEqual(t, 0.0, g.U.At(2, 1, 1), "faces away from the solid cell are untouched")
}
