package shader

import _ "embed"

// UnlitVertexSource is the WGSL vertex stage of the unlit color pipeline.
// It reads the camera block at @group(0) @binding(0) and the model matrix at @group(0) @binding(1).
//
//go:embed assets/unlit_vertex.wgsl
var UnlitVertexSource string

// UnlitFragmentSource is the WGSL fragment stage of the unlit color pipeline.
//
//go:embed assets/unlit_fragment.wgsl
var UnlitFragmentSource string
