package transform

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUViewProjectionUniform is the GPU-aligned representation of the view-projection uniform buffer.
// Matches the WGSL ViewProjection struct layout exactly (see the unlit vertex shader).
// Size: 192 bytes.
type GPUViewProjectionUniform struct {
	View        [16]float32 // offset   0: view matrix (mat4x4<f32>)
	ViewInverse [16]float32 // offset  64: inverse view matrix (mat4x4<f32>)
	Projection  [16]float32 // offset 128: projection matrix (mat4x4<f32>)
}

// NewGPUViewProjectionUniform copies a ViewProjectionBlock into its GPU layout.
//
// Parameters:
//   - block: the view-projection snapshot
//
// Returns:
//   - GPUViewProjectionUniform: the GPU-aligned uniform
func NewGPUViewProjectionUniform(block ViewProjectionBlock) GPUViewProjectionUniform {
	return GPUViewProjectionUniform{
		View:        block.View,
		ViewInverse: block.ViewInverse,
		Projection:  block.Projection,
	}
}

// Size returns the size of the GPUViewProjectionUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (g *GPUViewProjectionUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUViewProjectionUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUViewProjectionUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putMat4(buf[0:], g.View)
	putMat4(buf[64:], g.ViewInverse)
	putMat4(buf[128:], g.Projection)
	return buf
}

// GPUModelUniform is the GPU-aligned representation of the model uniform buffer.
// Size: 64 bytes.
type GPUModelUniform struct {
	Model [16]float32 // offset 0: model matrix (mat4x4<f32>)
}

// NewGPUModelUniform copies a model matrix into its GPU layout.
//
// Parameters:
//   - model: the model matrix
//
// Returns:
//   - GPUModelUniform: the GPU-aligned uniform
func NewGPUModelUniform(model mgl32.Mat4) GPUModelUniform {
	return GPUModelUniform{Model: model}
}

// Size returns the size of the GPUModelUniform struct in bytes.
func (g *GPUModelUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUModelUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putMat4(buf, g.Model)
	return buf
}

func putMat4(buf []byte, m [16]float32) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(m[i]))
	}
}
