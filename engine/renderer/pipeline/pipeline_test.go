package pipeline

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/graphplay/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func unlitShaders(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	vs, err := shader.NewShader("unlit_vertex", shader.ShaderTypeVertex, shader.UnlitVertexSource)
	if err != nil {
		t.Fatalf("unexpected vertex shader error: %v", err)
	}
	fs, err := shader.NewShader("unlit_fragment", shader.ShaderTypeFragment, shader.UnlitFragmentSource)
	if err != nil {
		t.Fatalf("unexpected fragment shader error: %v", err)
	}
	return vs, fs
}

func TestNewPipelineDefaults(t *testing.T) {
	vs, fs := unlitShaders(t)
	p, err := NewPipeline("unlit", WithVertexShader(vs), WithFragmentShader(fs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.PipelineKey() != "unlit" {
		t.Fatalf("expected key unlit; got %q", p.PipelineKey())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Fatal("expected depth test and write to default on")
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Fatal("expected no culling and a triangle list")
	}
	if p.FrontFace() != wgpu.FrontFaceCCW || p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Fatal("expected counter-clockwise front faces and all color channels")
	}
	if p.Shader(shader.ShaderTypeVertex) != vs || p.Shader(shader.ShaderTypeFragment) != fs {
		t.Fatal("expected stages to be returned by type")
	}
	if p.RenderPipeline() != nil || p.BindGroupLayout(0) != nil {
		t.Fatal("expected no GPU objects before registration")
	}
	if len(p.VertexLayouts()) != 1 || p.VertexLayouts()[0].ArrayStride != 28 {
		t.Fatal("expected the vertex stage layout to be exposed")
	}

	groups := p.BindGroupLayoutDescriptors()
	if len(groups) != 1 || len(groups[0].Entries) != 2 {
		t.Fatalf("expected the two group 0 uniforms; got %+v", groups)
	}
}

func TestPipelineOptions(t *testing.T) {
	vs, fs := unlitShaders(t)
	p, err := NewPipeline("wire",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Fatal("expected depth to be disabled")
	}
	if p.CullMode() != wgpu.CullModeBack || p.Topology() != wgpu.PrimitiveTopologyLineList {
		t.Fatal("expected back face culling and a line list")
	}
	if p.FrontFace() != wgpu.FrontFaceCW || p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Fatal("expected clockwise front faces and a red write mask")
	}
}

func TestNewPipelineRequiresBothStages(t *testing.T) {
	vs, fs := unlitShaders(t)

	type spec struct {
		opts []PipelineBuilderOption
	}
	specs := []spec{
		{nil},
		{[]PipelineBuilderOption{WithVertexShader(vs)}},
		{[]PipelineBuilderOption{WithFragmentShader(fs)}},
		{[]PipelineBuilderOption{WithVertexShader(fs), WithFragmentShader(vs)}},
	}

	for index, s := range specs {
		if _, err := NewPipeline("broken", s.opts...); !errors.Is(err, ErrMissingShader) {
			t.Fatalf("[spec %d] expected ErrMissingShader; got %v", index, err)
		}
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageVertex},
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
		}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 2 {
		t.Fatalf("expected two groups; got %d", len(merged))
	}

	type spec struct {
		group, index int
		binding      uint32
		visibility   wgpu.ShaderStage
	}
	specs := []spec{
		{0, 0, 0, wgpu.ShaderStageVertex},
		{0, 1, 1, wgpu.ShaderStageVertex | wgpu.ShaderStageFragment},
		{1, 0, 0, wgpu.ShaderStageFragment},
	}
	for index, s := range specs {
		e := merged[s.group].Entries[s.index]
		if e.Binding != s.binding || e.Visibility != s.visibility {
			t.Fatalf("[spec %d] expected binding %d visible to %v; got %+v", index, s.binding, s.visibility, e)
		}
	}
}
