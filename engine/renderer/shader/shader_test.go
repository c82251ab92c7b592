package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestUnlitVertexReflection(t *testing.T) {
	s, err := NewShader("unlit_vertex", ShaderTypeVertex, UnlitVertexSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.EntryPoint() != "vs_main" {
		t.Fatalf("expected entry point vs_main; got %q", s.EntryPoint())
	}

	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("expected one vertex buffer layout; got %d", len(layouts))
	}
	layout := layouts[0]
	if layout.ArrayStride != 28 || layout.StepMode != wgpu.VertexStepModeVertex {
		t.Fatalf("expected a 28 byte per-vertex stride; got %d", layout.ArrayStride)
	}

	type spec struct {
		format   wgpu.VertexFormat
		offset   uint64
		location uint32
	}
	specs := []spec{
		{wgpu.VertexFormatFloat32x3, 0, 0},
		{wgpu.VertexFormatFloat32x4, 12, 1},
	}
	if len(layout.Attributes) != len(specs) {
		t.Fatalf("expected %d attributes; got %d", len(specs), len(layout.Attributes))
	}
	for index, s := range specs {
		a := layout.Attributes[index]
		if a.Format != s.format || a.Offset != s.offset || a.ShaderLocation != s.location {
			t.Fatalf("[spec %d] expected %+v; got %+v", index, s, a)
		}
	}

	groups := s.BindGroupLayoutDescriptors()
	entries := groups[0].Entries
	if len(groups) != 1 || len(entries) != 2 {
		t.Fatalf("expected one group with two entries; got %d groups", len(groups))
	}
	for index, exp := range []uint64{192, 64} {
		e := entries[index]
		if e.Binding != uint32(index) || e.Buffer.Type != wgpu.BufferBindingTypeUniform || e.Buffer.MinBindingSize != exp {
			t.Fatalf("[binding %d] expected a %d byte uniform; got %+v", index, exp, e)
		}
		if e.Visibility != wgpu.ShaderStageVertex {
			t.Fatalf("[binding %d] expected vertex visibility", index)
		}
	}

	if s.BindGroupVarName(0, 0) != "view_projection" || s.BindGroupVarName(0, 1) != "model" {
		t.Fatalf("unexpected variable names %q, %q", s.BindGroupVarName(0, 0), s.BindGroupVarName(0, 1))
	}
	if s.BindGroupVarName(3, 0) != "" {
		t.Fatal("expected no variable at an undeclared group")
	}
	if s.Module() == nil || s.Module().WGSLDescriptor.Code != UnlitVertexSource {
		t.Fatal("expected the module descriptor to carry the source")
	}
}

func TestUnlitFragmentReflection(t *testing.T) {
	s, err := NewShader("unlit_fragment", ShaderTypeFragment, UnlitFragmentSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EntryPoint() != "fs_main" {
		t.Fatalf("expected entry point fs_main; got %q", s.EntryPoint())
	}
	if len(s.VertexLayouts()) != 0 || len(s.BindGroupLayoutDescriptors()) != 0 {
		t.Fatal("expected no vertex layouts or bindings for the fragment stage")
	}
}

func TestNewShaderErrors(t *testing.T) {
	type spec struct {
		shaderType ShaderType
		source     string
		exp        error
	}
	specs := []spec{
		{ShaderTypeVertex, "", ErrEmptySource},
		{ShaderTypeVertex, "  // only a comment\n /* and a block */ ", ErrEmptySource},
		{ShaderTypeVertex, UnlitFragmentSource, ErrMissingEntryPoint},
		{ShaderTypeFragment, UnlitVertexSource, ErrMissingEntryPoint},
		{ShaderTypeFragment, "@group(0) @binding(0) var t: texture_2d<f32>;\n@fragment fn main() {}", ErrUnsupportedBinding},
		{ShaderTypeFragment, "@group(0) @binding(0) var<uniform> u: Missing;\n@fragment fn main() {}", ErrUnresolvedType},
	}

	for index, s := range specs {
		if _, err := NewShader("test", s.shaderType, s.source); !errors.Is(err, s.exp) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, err)
		}
	}
}

func TestStructLayoutRules(t *testing.T) {
	structs := parseStructBlocks(`
struct Inner { a: vec3<f32>, b: f32, };
struct Outer { inner: Inner, m: mat4x4<f32>, c: vec2<f32>, };
`)
	sizes := computeStructSizes(structs)

	if got := sizes["Inner"]; got.size != 16 || got.align != 16 {
		t.Fatalf("expected Inner to pack b after the vec3 into 16 bytes; got %+v", got)
	}
	// inner 0..16, m 16..80, c 80..88, rounded up to 16
	if got := sizes["Outer"]; got.size != 96 {
		t.Fatalf("expected Outer to be 96 bytes; got %+v", got)
	}
}

func TestStripComments(t *testing.T) {
	got := stripComments("a /* x /* nested */ y */ b // tail\nc")
	if strings.Contains(got, "x") || strings.Contains(got, "y") || strings.Contains(got, "tail") {
		t.Fatalf("expected comments to be removed; got %q", got)
	}
	if !strings.Contains(got, "a") || !strings.Contains(got, "b") || !strings.Contains(got, "\nc") {
		t.Fatalf("expected code to survive; got %q", got)
	}
}

func TestShaderTypeString(t *testing.T) {
	if ShaderTypeVertex.String() != "vertex" || ShaderTypeFragment.String() != "fragment" {
		t.Fatal("unexpected shader type names")
	}
}
