// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms meshes and emits clip distances.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades lit and flat fragments.
//
//go:embed mesh.frag
var MeshFragmentShader string
