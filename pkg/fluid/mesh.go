package fluid

import "gonum.org/v1/gonum/spatial/r3"

// Mesh3D is the triangulated isosurface spec.md §4.11's meshData()
// returns: one flat vertex/normal list plus an index buffer.
type Mesh3D struct {
	Vertices []r3.Vec
	Normals  []r3.Vec
	Indices  []uint32
}

// mcCornerOffset lists the 8 marching-cubes corner offsets in the
// standard Lorensen & Cline order the tables in mc_tables.go assume.
var mcCornerOffset = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// mcEdgeCorners lists, for each of the 12 cube edges, the pair of corner
// indices (into mcCornerOffset) it connects.
var mcEdgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// marchingCubes extracts the triangulated isosurface of field=threshold
// from a scalar field sampled at cell centers, per spec.md §4.11. Vertices
// on a shared cube edge are deduplicated across cubes so per-vertex
// normals — averaged from every incident triangle's face normal — come
// out smooth rather than faceted per cube.
func marchingCubes(field *Grid3, dx float64, threshold float64) Mesh3D {
	nx, ny, nz := field.Dims()
	mesh := Mesh3D{}
	vertexCache := make(map[[6]int32]uint32)
	var normalSum []r3.Vec

	cellValue := func(i, j, k int) float64 {
		if i < 0 || i >= nx || j < 0 || j >= ny || k < 0 || k >= nz {
			return threshold + 1 // treat outside as "outside" the surface
		}
		return field.At(i, j, k)
	}

	cellCorner := func(i, j, k int, c int) (pos r3.Vec, val float64) {
		off := mcCornerOffset[c]
		ci, cj, ck := i+off[0], j+off[1], k+off[2]
		pos = r3.Vec{X: (float64(ci) + 0.5) * dx, Y: (float64(cj) + 0.5) * dx, Z: (float64(ck) + 0.5) * dx}
		val = cellValue(ci, cj, ck)
		return
	}

	// edgeVertex interpolates the crossing point along edge e of cube
	// (i,j,k) and returns its index into mesh.Vertices, reusing a cached
	// index if another cube already emitted the same edge.
	edgeVertex := func(i, j, k, e int) uint32 {
		c0, c1 := mcEdgeCorners[e][0], mcEdgeCorners[e][1]
		o0, o1 := mcCornerOffset[c0], mcCornerOffset[c1]
		a0 := [3]int{i + o0[0], j + o0[1], k + o0[2]}
		a1 := [3]int{i + o1[0], j + o1[1], k + o1[2]}
		// order the key so the same physical edge hashes the same way
		// regardless of which neighboring cube visits it first.
		key := [6]int32{int32(a0[0]), int32(a0[1]), int32(a0[2]), int32(a1[0]), int32(a1[1]), int32(a1[2])}
		if a1[0] < a0[0] || (a1[0] == a0[0] && (a1[1] < a0[1] || (a1[1] == a0[1] && a1[2] < a0[2]))) {
			key = [6]int32{int32(a1[0]), int32(a1[1]), int32(a1[2]), int32(a0[0]), int32(a0[1]), int32(a0[2])}
		}
		if idx, ok := vertexCache[key]; ok {
			return idx
		}

		p0, v0 := cellCorner(i, j, k, c0)
		p1, v1 := cellCorner(i, j, k, c1)
		t := 0.5
		if denom := v1 - v0; denom != 0 {
			t = (threshold - v0) / denom
		}
		pos := r3.Add(p0, r3.Scale(t, r3.Sub(p1, p0)))

		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, pos)
		normalSum = append(normalSum, r3.Vec{})
		vertexCache[key] = idx
		return idx
	}

	for i := 0; i < nx-1; i++ {
		for j := 0; j < ny-1; j++ {
			for k := 0; k < nz-1; k++ {
				caseIdx := 0
				for c := 0; c < 8; c++ {
					_, v := cellCorner(i, j, k, c)
					if v < threshold {
						caseIdx |= 1 << c
					}
				}
				if mcEdgeTable[caseIdx] == 0 {
					continue
				}
				tris := mcTriTable[caseIdx]
				for t := 0; t+2 < len(tris) && tris[t] != -1; t += 3 {
					a := edgeVertex(i, j, k, tris[t])
					b := edgeVertex(i, j, k, tris[t+1])
					c := edgeVertex(i, j, k, tris[t+2])
					mesh.Indices = append(mesh.Indices, a, b, c)

					face := r3.Cross(
						r3.Sub(mesh.Vertices[b], mesh.Vertices[a]),
						r3.Sub(mesh.Vertices[c], mesh.Vertices[a]),
					)
					normalSum[a] = r3.Add(normalSum[a], face)
					normalSum[b] = r3.Add(normalSum[b], face)
					normalSum[c] = r3.Add(normalSum[c], face)
				}
			}
		}
	}

	mesh.Normals = make([]r3.Vec, len(normalSum))
	for i, n := range normalSum {
		if r3.Norm(n) < 1e-12 {
			mesh.Normals[i] = r3.Vec{X: 0, Y: 0, Z: 1}
			continue
		}
		mesh.Normals[i] = r3.Unit(n)
	}

	return mesh
}
