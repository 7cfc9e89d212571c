package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func singleInsideCellField() *Grid3 {
	field := NewGrid3(3, 3, 3)
	field.Fill(1)
	field.Set(1, 1, 1, -1)
	return field
}

func TestMarchingCubesProducesClosedTriangleSoup(t *testing.T) {
	mesh := marchingCubes(singleInsideCellField(), 1, SurfaceThreshold)

	assert.NotEmpty(t, mesh.Vertices)
	assert.Equal(t, 0, len(mesh.Indices)%3, "indices form whole triangles")
	assert.Equal(t, len(mesh.Vertices), len(mesh.Normals))

	for _, idx := range mesh.Indices {
		assert.Less(t, int(idx), len(mesh.Vertices))
	}
	for _, n := range mesh.Normals {
		assert.InDelta(t, 1.0, r3.Norm(n), 1e-6)
	}
}

func TestMarchingCubesEmptyFieldProducesNoTriangles(t *testing.T) {
	field := NewGrid3(3, 3, 3)
	field.Fill(1) // entirely outside the surface everywhere
	mesh := marchingCubes(field, 1, SurfaceThreshold)
	assert.Empty(t, mesh.Indices)
}

func TestMarchingCubesDedupesSharedEdgeVertices(t *testing.T) {
	mesh := marchingCubes(singleInsideCellField(), 1, SurfaceThreshold)
	// A single inside sample is a corner of 8 cubes, each crossing 3 of
	// its 6 incident lattice edges (24 visits), so deduplication leaves
	// exactly 6 vertices: an octahedron around the inside sample.
	assert.Equal(t, 6, len(mesh.Vertices))
}
