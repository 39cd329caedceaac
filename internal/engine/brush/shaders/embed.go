// Package shaders provides the embedded GLSL sources of the brush material.
package shaders

import _ "embed"

// BrushVertexShader projects points and picks their atlas tile and rotation.
//
//go:embed brush.vert
var BrushVertexShader string

// BrushFragmentShader composites the brush tile, stencil and dither pattern
// and applies directional lighting. Expects NUM_DIR_LIGHTS to be defined.
//
//go:embed brush.frag
var BrushFragmentShader string
