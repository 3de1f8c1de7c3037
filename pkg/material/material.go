package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/texture"
)

// Material holds the Phong lighting response of a surface.
type Material struct {
	Ambient    mgl32.Vec3
	Diffuse    mgl32.Vec3
	Specular   mgl32.Vec3
	Reflective mgl32.Vec3
	Shininess  float32
	Texture    *TextureRef
}

// TextureRef attaches a loaded texture to a material. Blend weighs the
// sampled texel against the material's own diffuse color: 0 ignores the
// texture entirely, 1 replaces the diffuse color with it.
type TextureRef struct {
	Image   *texture.Texture
	RepeatU float32
	RepeatV float32
	Blend   float32
}

// Sample returns the texture color under the given UV coordinate.
func (r *TextureRef) Sample(u, v float32) mgl32.Vec3 {
	return r.Image.Sample(u, v, r.RepeatU, r.RepeatV)
}

// Default returns the material used when a scenefile leaves all fields unset:
// plain white diffuse with no ambient, specular or reflective response.
func Default() Material {
	return Material{Diffuse: mgl32.Vec3{1, 1, 1}}
}

// IsReflective reports whether any reflective channel is nonzero.
func (m *Material) IsReflective() bool {
	return m.Reflective != (mgl32.Vec3{})
}
