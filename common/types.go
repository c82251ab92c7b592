// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "unsafe"

// Vertex is the interleaved per-vertex layout consumed by the unlit pipeline.
// Matches the WGSL VertexInput struct: position at location 0, color at location 1.
// Size: 28 bytes.
type Vertex struct {
	// Position is the object-space vertex position.
	Position [3]float32
	// Color is the linear RGBA vertex color.
	Color [4]float32
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// Color is a linear RGBA color used for render target clears.
type Color struct {
	R, G, B, A float64
}

// Black is the opaque black clear color.
var Black = Color{R: 0, G: 0, B: 0, A: 1}

// MeshHandle identifies a mesh uploaded to the graphics collaborator.
// The core never holds GPU buffers, only this value.
type MeshHandle struct {
	// ID is the collaborator-assigned identifier for the uploaded buffers.
	ID int
	// IndexCount is the number of indices to draw.
	IndexCount int
}
