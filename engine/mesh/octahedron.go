// Package mesh holds the geometry drawn by the render loop.
package mesh

import "github.com/Carmen-Shannon/graphplay/common"

var (
	red   = [4]float32{1, 0, 0, 1}
	green = [4]float32{0, 1, 0, 1}
	blue  = [4]float32{0, 0, 1, 1}
)

// Octahedron returns a unit octahedron centered at the origin.
// Vertices on the X axis are red, on the Z axis blue and on the Y axis green.
// Faces are wound counter-clockwise when seen from outside.
//
// Returns:
//   - []common.Vertex: the six axis vertices
//   - []uint32: 24 indices describing eight triangles
func Octahedron() ([]common.Vertex, []uint32) {
	vertices := []common.Vertex{
		{Position: [3]float32{1, 0, 0}, Color: red},    // 0: +X
		{Position: [3]float32{-1, 0, 0}, Color: red},   // 1: -X
		{Position: [3]float32{0, 0, 1}, Color: blue},   // 2: +Z
		{Position: [3]float32{0, 0, -1}, Color: blue},  // 3: -Z
		{Position: [3]float32{0, -1, 0}, Color: green}, // 4: -Y
		{Position: [3]float32{0, 1, 0}, Color: green},  // 5: +Y
	}

	indices := []uint32{
		// upper half, around +Y
		0, 5, 2,
		2, 5, 1,
		1, 5, 3,
		3, 5, 0,
		// lower half, around -Y
		0, 2, 4,
		2, 1, 4,
		1, 3, 4,
		3, 0, 4,
	}

	return vertices, indices
}
