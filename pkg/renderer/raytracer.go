package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/geometry"
	"github.com/df07/go-scene-raytracer/pkg/lights"
	"github.com/df07/go-scene-raytracer/pkg/scene"
)

// surfaceOffset nudges secondary ray origins along the surface normal so
// shadow and bounce rays do not immediately re-hit the surface they left.
const surfaceOffset = 1e-3

// Raytracer shades rays against a scene with recursive Phong illumination.
// It is read-only after construction and safe for concurrent use.
type Raytracer struct {
	scene  *scene.Scene
	config Config
	stats  *RayStats
}

// NewRaytracer creates a raytracer for a scene.
func NewRaytracer(s *scene.Scene, config Config, stats *RayStats) *Raytracer {
	return &Raytracer{scene: s, config: config, stats: stats}
}

// TraceRay returns the color seen along a ray. Rays that miss every shape
// return the background color. depth counts reflection bounces taken so far.
func (rt *Raytracer) TraceRay(ray geometry.Ray, depth int) mgl32.Vec3 {
	hit, ok := rt.nearestHit(ray)
	if !ok {
		return rt.config.Background
	}

	color := rt.shade(ray, hit)

	if rt.config.EnableReflections && hit.Material.IsReflective() && depth < rt.config.MaxRecursionDepth {
		bounce := geometry.Ray{
			Origin:    hit.Point.Add(hit.Normal.Mul(surfaceOffset)),
			Direction: geometry.Reflect(ray.Direction, hit.Normal).Normalize(),
		}
		rt.stats.Reflection.Add(1)
		reflected := rt.TraceRay(bounce, depth+1)
		color = color.Add(mulVec3(hit.Material.Reflective, reflected.Mul(rt.scene.Coefficients.Specular)))
	}

	return color
}

// nearestHit returns the closest intersection along the ray. Ties keep the
// shape that appears first in scene order.
func (rt *Raytracer) nearestHit(ray geometry.Ray) (geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	found := false
	for _, shape := range rt.scene.Shapes {
		hit, ok := shape.Intersect(ray)
		if !ok {
			continue
		}
		if !found || hit.T < closest.T {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// shade evaluates the Phong lighting model at a hit point. Lights hidden
// behind other shapes contribute nothing when shadows are enabled.
func (rt *Raytracer) shade(ray geometry.Ray, hit geometry.HitRecord) mgl32.Vec3 {
	mat := hit.Material
	coeffs := rt.scene.Coefficients

	color := mat.Ambient.Mul(coeffs.Ambient)
	toCamera := ray.Direction.Mul(-1)

	for _, light := range rt.scene.Lights {
		if rt.config.EnableShadows && rt.occluded(light, hit) {
			continue
		}

		lightToPoint := light.DirectionTo(hit.Point)
		toLight := lightToPoint.Mul(-1)

		diffuseAngle := math32.Max(hit.Normal.Dot(toLight), 0)
		contribution := rt.diffuseColor(hit).Mul(diffuseAngle)

		mirror := geometry.Reflect(lightToPoint, hit.Normal).Normalize()
		if specularAngle := mirror.Dot(toCamera); specularAngle >= 0 {
			intensity := math32.Pow(specularAngle, mat.Shininess)
			contribution = contribution.Add(mat.Specular.Mul(coeffs.Specular * intensity))
		}

		color = color.Add(mulVec3(light.IntensityAt(hit.Point), contribution))
	}

	return color
}

// diffuseColor returns the diffuse reflectance at the hit, blending the
// material color with its texture when texturing is enabled.
func (rt *Raytracer) diffuseColor(hit geometry.HitRecord) mgl32.Vec3 {
	mat := hit.Material
	kd := rt.scene.Coefficients.Diffuse

	if rt.config.EnableTexture && mat.Texture != nil {
		blend := mat.Texture.Blend
		texel := mat.Texture.Sample(hit.UV.X(), hit.UV.Y())
		return mat.Diffuse.Mul((1 - blend) * kd).Add(texel.Mul(blend))
	}
	return mat.Diffuse.Mul(kd)
}

// occluded reports whether any shape blocks the segment between the hit
// point and the light.
func (rt *Raytracer) occluded(light lights.Light, hit geometry.HitRecord) bool {
	origin := hit.Point.Add(hit.Normal.Mul(surfaceOffset))
	distance := light.DistanceTo(origin)
	shadowRay := geometry.Ray{
		Origin:    origin,
		Direction: light.DirectionTo(origin).Mul(-1),
	}

	rt.stats.Shadow.Add(1)
	for _, shape := range rt.scene.Shapes {
		if blocker, ok := shape.Intersect(shadowRay); ok && blocker.T < distance {
			return true
		}
	}
	return false
}

// mulVec3 multiplies two vectors componentwise.
func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
