// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Phong is the combined vertex/fragment source for lit spheres.
//
//go:embed phong.glsl
var Phong string
