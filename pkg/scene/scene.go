// Package scene turns a parsed scene document into the flat shape list the
// renderer consumes: transform blocks collapse into per-shape cumulative
// matrices, light declarations become light objects, and referenced assets
// (textures, meshes) are loaded and cached.
package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/geometry"
	"github.com/df07/go-scene-raytracer/pkg/lights"
	"github.com/df07/go-scene-raytracer/pkg/loaders"
	"github.com/df07/go-scene-raytracer/pkg/material"
	"github.com/df07/go-scene-raytracer/pkg/scenefile"
	"github.com/df07/go-scene-raytracer/pkg/texture"
)

// Coefficients are the scene-wide multipliers applied to each material's
// ambient, diffuse and specular response.
type Coefficients struct {
	Ambient  float32
	Diffuse  float32
	Specular float32
}

// Scene contains everything needed for rendering.
type Scene struct {
	Camera       Camera
	Coefficients Coefficients
	Lights       []lights.Light
	Shapes       []*geometry.Shape
	Textures     *texture.Store
	Warnings     []string // carried over from parsing, e.g. ignored camera settings
}

// NewFromFile parses a scene file and builds the scene from it. Texture and
// mesh paths in the file resolve relative to assetDir.
func NewFromFile(path, assetDir string) (*Scene, error) {
	doc, err := scenefile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	scene, err := FromDocument(doc, assetDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// FromDocument builds a renderable scene from a parsed document.
func FromDocument(doc *scenefile.Document, assetDir string) (*Scene, error) {
	camera := Camera{
		Position:    doc.Camera.Position,
		Look:        doc.Camera.Look,
		Up:          doc.Camera.Up,
		HeightAngle: doc.Camera.HeightAngle,
	}
	if err := camera.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		assetDir: assetDir,
		textures: texture.NewStore(),
		meshes:   make(map[string]geometry.Primitive),
	}

	if err := b.textures.Preload(collectTexturePaths(doc.Root, assetDir)); err != nil {
		return nil, err
	}

	sceneLights := make([]lights.Light, 0, len(doc.Lights))
	for i, data := range doc.Lights {
		light, err := buildLight(data)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		sceneLights = append(sceneLights, light)
	}

	if err := b.flatten(doc.Root, mgl32.Ident4()); err != nil {
		return nil, err
	}

	return &Scene{
		Camera: camera,
		Coefficients: Coefficients{
			Ambient:  doc.Global.AmbientCoeff,
			Diffuse:  doc.Global.DiffuseCoeff,
			Specular: doc.Global.SpecularCoeff,
		},
		Lights:   sceneLights,
		Shapes:   b.shapes,
		Textures: b.textures,
		Warnings: doc.Warnings,
	}, nil
}

// builder accumulates shapes and asset caches while walking the scene graph.
type builder struct {
	assetDir string
	textures *texture.Store
	meshes   map[string]geometry.Primitive
	shapes   []*geometry.Shape
}

// flatten walks a node, composing its transforms onto the parent matrix and
// instancing its primitives. Shared master nodes are visited once per
// reference, which is what gives each instance its own transform.
func (b *builder) flatten(node *scenefile.Node, parent mgl32.Mat4) error {
	ctm := parent
	for _, tr := range node.Transforms {
		ctm = ctm.Mul4(tr.Matrix())
	}

	for _, prim := range node.Primitives {
		shape, err := b.buildShape(prim, ctm)
		if err != nil {
			return err
		}
		b.shapes = append(b.shapes, shape)
	}

	for _, child := range node.Children {
		if err := b.flatten(child, ctm); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildShape(data scenefile.PrimitiveData, ctm mgl32.Mat4) (*geometry.Shape, error) {
	prim, err := b.primitive(data)
	if err != nil {
		return nil, err
	}
	mat, err := b.buildMaterial(data.Material)
	if err != nil {
		return nil, err
	}
	return geometry.NewShape(prim, mat, ctm)
}

func (b *builder) primitive(data scenefile.PrimitiveData) (geometry.Primitive, error) {
	switch data.Kind {
	case scenefile.PrimitiveSphere:
		return geometry.Sphere{}, nil
	case scenefile.PrimitiveCube:
		return geometry.Cube{}, nil
	case scenefile.PrimitiveCylinder:
		return geometry.Cylinder{}, nil
	case scenefile.PrimitiveCone:
		return geometry.Cone{}, nil
	case scenefile.PrimitiveMesh:
		return b.mesh(data.MeshFile)
	}
	return nil, fmt.Errorf("unknown primitive kind %v", data.Kind)
}

// mesh loads a glTF mesh, or reuses it if another primitive already did.
func (b *builder) mesh(file string) (geometry.Primitive, error) {
	path := filepath.Join(b.assetDir, file)
	if cached, ok := b.meshes[path]; ok {
		return cached, nil
	}

	data, err := loaders.LoadGLTF(path)
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.NewMesh(data.Vertices, data.Indices, data.Normals, data.UVs)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", file, err)
	}
	b.meshes[path] = mesh
	return mesh, nil
}

func (b *builder) buildMaterial(data scenefile.MaterialData) (material.Material, error) {
	mat := material.Material{
		Ambient:    data.Ambient,
		Diffuse:    data.Diffuse,
		Specular:   data.Specular,
		Reflective: data.Reflective,
		Shininess:  data.Shininess,
	}

	if data.Texture != nil {
		img, err := b.textures.Load(filepath.Join(b.assetDir, data.Texture.File))
		if err != nil {
			return mat, err
		}
		mat.Texture = &material.TextureRef{
			Image:   img,
			RepeatU: data.Texture.RepeatU,
			RepeatV: data.Texture.RepeatV,
			Blend:   data.Blend,
		}
	}
	return mat, nil
}

func buildLight(data scenefile.LightData) (lights.Light, error) {
	attenuation := lights.Attenuation{
		Constant:  data.Attenuation.X(),
		Linear:    data.Attenuation.Y(),
		Quadratic: data.Attenuation.Z(),
	}

	switch data.Kind {
	case scenefile.LightPoint:
		return lights.NewPointLight(data.Color, data.Position, attenuation), nil
	case scenefile.LightDirectional:
		return lights.NewDirectionalLight(data.Color, data.Direction)
	case scenefile.LightSpot:
		return lights.NewSpotLight(data.Color, data.Position, data.Direction, attenuation, data.Angle, data.Penumbra)
	}
	return nil, fmt.Errorf("unknown light kind %v", data.Kind)
}

// collectTexturePaths gathers the distinct texture files referenced anywhere
// in the scene graph so the store can load them up front.
func collectTexturePaths(root *scenefile.Node, assetDir string) []string {
	seen := make(map[string]bool)
	var paths []string

	var walk func(node *scenefile.Node)
	walk = func(node *scenefile.Node) {
		for _, prim := range node.Primitives {
			if tex := prim.Material.Texture; tex != nil {
				path := filepath.Join(assetDir, tex.File)
				if !seen[path] {
					seen[path] = true
					paths = append(paths, path)
				}
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)
	return paths
}
