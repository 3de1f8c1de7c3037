// Package scenefile parses the XML scene description format into a document
// tree of transform blocks, primitives, lights and camera settings. The
// document is a faithful record of the file; flattening transforms into world
// matrices happens in the scene package.
package scenefile

import "github.com/go-gl/mathgl/mgl32"

// Document is a fully parsed scene file.
type Document struct {
	Global   GlobalData
	Camera   CameraData
	Lights   []LightData
	Root     *Node
	Warnings []string // accepted-but-ignored settings, e.g. camera aperture
}

// GlobalData holds the scene-wide illumination coefficients.
type GlobalData struct {
	AmbientCoeff  float32
	DiffuseCoeff  float32
	SpecularCoeff float32
}

// CameraData holds the camera placement and field of view.
type CameraData struct {
	Position    mgl32.Vec3
	Up          mgl32.Vec3
	Look        mgl32.Vec3
	HeightAngle float32 // radians
}

// LightKind discriminates the light types a scene file can declare.
type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightSpot
)

func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	case LightSpot:
		return "spot"
	}
	return "unknown"
}

// LightData is one parsed lightdata element. Fields that a light kind does
// not use keep their defaults.
type LightData struct {
	Kind        LightKind
	Color       mgl32.Vec3
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Attenuation mgl32.Vec3 // constant, linear, quadratic
	Angle       float32    // radians, spot lights only
	Penumbra    float32    // radians, spot lights only
}

// Node is one transform block of the scene graph: a transform list applied to
// the primitives it holds and to every child below it. Master references are
// resolved during parsing, so a node may be shared by several parents.
type Node struct {
	Transforms []Transform
	Primitives []PrimitiveData
	Children   []*Node
}

// TransformKind discriminates the transform types of a transblock.
type TransformKind int

const (
	TransformTranslate TransformKind = iota
	TransformRotate
	TransformScale
)

// Transform is a single parsed transformation step.
type Transform struct {
	Kind   TransformKind
	Vector mgl32.Vec3 // offset, rotation axis, or scale factors
	Angle  float32    // radians, rotations only
}

// Matrix returns the 4x4 matrix for this transform step. The parser
// guarantees rotation axes are non-zero.
func (t Transform) Matrix() mgl32.Mat4 {
	switch t.Kind {
	case TransformTranslate:
		return mgl32.Translate3D(t.Vector.X(), t.Vector.Y(), t.Vector.Z())
	case TransformRotate:
		return mgl32.HomogRotate3D(t.Angle, t.Vector.Normalize())
	case TransformScale:
		return mgl32.Scale3D(t.Vector.X(), t.Vector.Y(), t.Vector.Z())
	}
	return mgl32.Ident4()
}

// PrimitiveKind discriminates the shapes a primitive object can name.
type PrimitiveKind int

const (
	PrimitiveSphere PrimitiveKind = iota
	PrimitiveCube
	PrimitiveCylinder
	PrimitiveCone
	PrimitiveMesh
)

// PrimitiveData is one primitive object together with its surface material.
type PrimitiveData struct {
	Kind     PrimitiveKind
	MeshFile string // mesh primitives only
	Material MaterialData
}

// MaterialData holds the Phong material properties of a primitive.
type MaterialData struct {
	Diffuse    mgl32.Vec3
	Ambient    mgl32.Vec3
	Specular   mgl32.Vec3
	Reflective mgl32.Vec3
	Shininess  float32
	Blend      float32
	Texture    *TextureData
}

// TextureData references a texture image and its UV repeat counts.
type TextureData struct {
	File    string
	RepeatU float32
	RepeatV float32
}
