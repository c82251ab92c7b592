package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine/log"
	"github.com/Carmen-Shannon/graphplay/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/graphplay/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/graphplay/engine/transform"
	"github.com/Carmen-Shannon/graphplay/engine/viewport"
	"github.com/Carmen-Shannon/graphplay/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.New("renderer")

const (
	// ViewProjectionBinding is the group 0 binding that receives the ViewProjectionBlock.
	ViewProjectionBinding = 0

	// ModelBinding is the group 0 binding that receives the model matrix of each draw.
	ModelBinding = 1
)

var (
	// ErrShaderCompilation is returned when WGSL source is rejected by reflection or by the device.
	ErrShaderCompilation = errors.New("shader compilation failed")

	// ErrNoPipeline is returned when drawing with a pipeline key that was never registered.
	ErrNoPipeline = errors.New("render pipeline not registered")

	// ErrNoMesh is returned when drawing a mesh handle that was never uploaded.
	ErrNoMesh = errors.New("mesh not uploaded")

	// ErrInvalidMesh is returned when uploading empty or truncated mesh data.
	ErrInvalidMesh = errors.New("invalid mesh data")

	// ErrNoFrame is returned when drawing outside BeginFrame and Present.
	ErrNoFrame = errors.New("no frame in progress")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline
	// uniforms holds the group 0 uniform provider of each registered pipeline, keyed like pipelineCache
	uniforms map[string]bind_group_provider.BindGroupProvider
	// meshes holds the buffers of every uploaded mesh, keyed by MeshHandle.ID
	meshes     map[int]bind_group_provider.BindGroupProvider
	nextMeshID int

	backendType RendererBackendType
	backend     RendererBackend

	// frame state between BeginFrame and Present
	frameOpen bool
	passOpen  bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer is the graphics collaborator of the render loop.
//
// It owns the presentation surface and GPU device, compiles and caches pipelines, uploads meshes
// and records one render pass per frame: BeginFrame, Clear, UpdateUniform, Draw, Present.
// Meshes are referenced by common.MeshHandle so callers never hold GPU buffers.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the keys of every registered pipeline.
	//
	// Returns:
	//   - []string: the registered pipeline keys
	Pipelines() []string

	// RegisterPipelines creates the GPU pipeline objects and the group 0 uniform buffers of one or more
	// pipelines, then caches them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error wrapping ErrShaderCompilation if a stage is rejected, or the creation error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// UploadMesh creates GPU vertex and index buffers from raw byte data.
	//
	// Parameters:
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw uint32 index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - common.MeshHandle: the handle to pass to Draw
	//   - error: ErrInvalidMesh for empty or truncated data, or the buffer creation error
	UploadMesh(vertexData, indexData []byte, indexCount int) (common.MeshHandle, error)

	// Resize reconfigures the surface for a new size.
	// Zero or negative sizes, as reported for minimized windows, are rejected and the surface is kept.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error wrapping viewport.ErrInvalidDimensions, or the configuration error
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and opens the command encoder.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Clear opens the render pass with the given color and depth clear values.
	//
	// Parameters:
	//   - color: the color clear value
	//   - depth: the depth clear value
	Clear(color common.Color, depth float32)

	// UpdateUniform writes the view/projection block to every registered pipeline.
	//
	// Parameters:
	//   - block: the camera matrices for this frame
	UpdateUniform(block transform.ViewProjectionBlock)

	// Draw writes the model matrix and records an indexed draw of the mesh.
	//
	// Parameters:
	//   - mesh: a handle returned by UploadMesh
	//   - pipelineKey: the key of a registered pipeline
	//   - model: the model matrix
	//
	// Returns:
	//   - error: ErrNoFrame, ErrNoPipeline or ErrNoMesh
	Draw(mesh common.MeshHandle, pipelineKey string, model mgl32.Mat4) error

	// Present ends the render pass, submits the command buffer and presents the surface.
	// A frame that was begun without Clear is cleared to black first.
	Present()

	// Release releases every mesh, pipeline and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
// The surface is configured to the window's current size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the platform surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: error if the adapter, device or surface cannot be created
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}
	if !msaa.Valid() {
		return nil, fmt.Errorf("unsupported MSAA sample count %d", msaa)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, err
	}

	if err := r.configure(window.Width(), window.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	logger.Infof("renderer ready: %dx%d, %dx MSAA", window.Width(), window.Height(), msaa)
	return r, nil
}

// newRenderer applies options to an empty renderer; the backend is attached by the caller.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		uniforms:      make(map[string]bind_group_provider.BindGroupProvider),
		meshes:        make(map[int]bind_group_provider.BindGroupProvider),
		backendType:   backendType,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// configure applies the pending present mode and configures the surface.
func (r *renderer) configure(width, height int) error {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	return r.Resize(width, height)
}

func (r *renderer) Resize(width, height int) error {
	if _, err := viewport.Aspect(width, height); err != nil {
		return err
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface at %dx%d: %w", width, height, err)
	}
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.pipelineCache))
	for key := range r.pipelineCache {
		keys = append(keys, key)
	}
	return keys
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			p.Release()
			return fmt.Errorf("pipeline %s: %w", key, err)
		}

		provider := bind_group_provider.NewBindGroupProvider(key + " Uniforms")
		if desc, ok := p.BindGroupLayoutDescriptors()[0]; ok {
			if err := r.backend.InitBindGroup(provider, p.BindGroupLayout(0), desc); err != nil {
				provider.Release()
				p.Release()
				return fmt.Errorf("pipeline %s: failed to create uniforms: %w", key, err)
			}
		}

		r.pipelineCache[key] = p
		r.uniforms[key] = provider
		logger.Debugf("registered pipeline %s with %d uniform bindings", key, provider.Bindings())
	}
	return nil
}

func (r *renderer) UploadMesh(vertexData, indexData []byte, indexCount int) (common.MeshHandle, error) {
	if len(vertexData) == 0 || indexCount <= 0 || len(indexData) < indexCount*4 {
		return common.MeshHandle{}, fmt.Errorf("%w: %d vertex bytes, %d index bytes for %d indices",
			ErrInvalidMesh, len(vertexData), len(indexData), indexCount)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextMeshID
	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Mesh %d", id))
	if err := r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount); err != nil {
		provider.Release()
		return common.MeshHandle{}, fmt.Errorf("failed to upload mesh: %w", err)
	}
	r.nextMeshID++
	r.meshes[id] = provider

	return common.MeshHandle{ID: id, IndexCount: indexCount}, nil
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.frameOpen = true
	r.passOpen = false
	return nil
}

func (r *renderer) Clear(color common.Color, depth float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frameOpen || r.passOpen {
		return
	}
	r.backend.BeginPass(color, depth)
	r.passOpen = true
}

func (r *renderer) UpdateUniform(block transform.ViewProjectionBlock) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gpu := transform.NewGPUViewProjectionUniform(block)
	data := gpu.Marshal()

	writes := make([]bind_group_provider.BufferWrite, 0, len(r.uniforms))
	for _, provider := range r.uniforms {
		w := bind_group_provider.BufferWrite{Provider: provider, Binding: ViewProjectionBinding, Data: data}
		if err := w.Check(); err != nil {
			logger.Debugf("skipping view projection write: %v", err)
			continue
		}
		writes = append(writes, w)
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) Draw(mesh common.MeshHandle, pipelineKey string, model mgl32.Mat4) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frameOpen {
		return ErrNoFrame
	}
	p, exists := r.pipelineCache[pipelineKey]
	if !exists {
		return fmt.Errorf("%w: %q", ErrNoPipeline, pipelineKey)
	}
	meshProvider, exists := r.meshes[mesh.ID]
	if !exists {
		return fmt.Errorf("%w: handle %d", ErrNoMesh, mesh.ID)
	}

	if !r.passOpen {
		r.backend.BeginPass(common.Black, 1.0)
		r.passOpen = true
	}

	uniforms := r.uniforms[pipelineKey]
	gpu := transform.NewGPUModelUniform(model)
	w := bind_group_provider.BufferWrite{Provider: uniforms, Binding: ModelBinding, Data: gpu.Marshal()}
	if err := w.Check(); err == nil {
		r.backend.WriteBuffers([]bind_group_provider.BufferWrite{w})
	}

	var bindGroups []bind_group_provider.BindGroupProvider
	if uniforms.BindGroup() != nil {
		bindGroups = append(bindGroups, uniforms)
	}
	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frameOpen {
		return
	}
	if !r.passOpen {
		r.backend.BeginPass(common.Black, 1.0)
	}

	if err := r.backend.EndFrame(); err != nil {
		logger.Errorf("failed to submit frame: %v", err)
	}
	r.backend.Present()
	r.frameOpen = false
	r.passOpen = false
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, mesh := range r.meshes {
		mesh.Release()
		delete(r.meshes, id)
	}
	for key, p := range r.pipelineCache {
		if u := r.uniforms[key]; u != nil {
			u.Release()
		}
		p.Release()
		delete(r.pipelineCache, key)
		delete(r.uniforms, key)
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
