package scenefile

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// element is one node of the raw XML tree, attributes and child elements only.
type element struct {
	name     string
	attrs    map[string]string
	children []*element
}

// parser accumulates document state while walking the XML tree.
type parser struct {
	doc       *Document
	masters   map[string]*Node
	hasGlobal bool
	hasCamera bool
}

// ParseFile reads and parses a scene file from disk.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses scene XML from a reader.
func Parse(r io.Reader) (*Document, error) {
	root, err := buildTree(r)
	if err != nil {
		return nil, err
	}
	if root.name != "scenefile" {
		return nil, fmt.Errorf("expected root element \"scenefile\", got %q", root.name)
	}

	p := &parser{
		doc: &Document{
			Global: GlobalData{AmbientCoeff: 0.5, DiffuseCoeff: 0.5, SpecularCoeff: 0.5},
			Camera: CameraData{
				Position:    mgl32.Vec3{5, 5, 5},
				Up:          mgl32.Vec3{0, 1, 0},
				Look:        mgl32.Vec3{-1, -1, -1},
				HeightAngle: mgl32.DegToRad(45),
			},
		},
		masters: make(map[string]*Node),
	}

	for _, child := range root.children {
		var err error
		switch child.name {
		case "globaldata":
			err = p.parseGlobalData(child)
		case "cameradata":
			err = p.parseCameraData(child)
		case "lightdata":
			err = p.parseLightData(child)
		case "object":
			err = p.parseTopObject(child)
		default:
			err = fmt.Errorf("unknown element %q in scenefile", child.name)
		}
		if err != nil {
			return nil, err
		}
	}

	if !p.hasGlobal {
		return nil, fmt.Errorf("scene file is missing globaldata")
	}
	if !p.hasCamera {
		return nil, fmt.Errorf("scene file is missing cameradata")
	}
	if p.doc.Root == nil {
		return nil, fmt.Errorf("scene file must contain a tree object named \"root\"")
	}
	return p.doc, nil
}

// buildTree decodes the XML stream into an element tree, dropping character
// data and comments.
func buildTree(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)
	var stack []*element
	var root *element

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				e.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = e
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("empty scene file")
	}
	return root, nil
}

func (p *parser) parseGlobalData(e *element) error {
	p.hasGlobal = true
	for _, child := range e.children {
		v, err := floatAttr(child, "v")
		if err != nil {
			return err
		}
		switch child.name {
		case "ambientcoeff":
			p.doc.Global.AmbientCoeff = v
		case "diffusecoeff":
			p.doc.Global.DiffuseCoeff = v
		case "specularcoeff":
			p.doc.Global.SpecularCoeff = v
		default:
			return fmt.Errorf("unknown element %q in globaldata", child.name)
		}
	}
	return nil
}

func (p *parser) parseCameraData(e *element) error {
	p.hasCamera = true
	cam := &p.doc.Camera
	var focus *mgl32.Vec3
	hasLook := false

	for _, child := range e.children {
		switch child.name {
		case "pos":
			v, err := vec3Attr(child)
			if err != nil {
				return err
			}
			cam.Position = v
		case "up":
			v, err := vec3Attr(child)
			if err != nil {
				return err
			}
			cam.Up = v
		case "look":
			v, err := vec3Attr(child)
			if err != nil {
				return err
			}
			cam.Look = v
			hasLook = true
		case "focus":
			v, err := vec3Attr(child)
			if err != nil {
				return err
			}
			focus = &v
		case "heightangle":
			v, err := floatAttr(child, "v")
			if err != nil {
				return err
			}
			cam.HeightAngle = mgl32.DegToRad(v)
		case "aperture", "focallength":
			p.doc.Warnings = append(p.doc.Warnings,
				fmt.Sprintf("camera %s is not simulated and was ignored", child.name))
		default:
			return fmt.Errorf("unknown element %q in cameradata", child.name)
		}
	}

	if hasLook && focus != nil {
		return fmt.Errorf("cameradata cannot have both look and focus")
	}
	if focus != nil {
		cam.Look = focus.Sub(cam.Position)
	}
	return nil
}

func (p *parser) parseLightData(e *element) error {
	light := LightData{
		Color:       mgl32.Vec3{1, 1, 1},
		Position:    mgl32.Vec3{3, 3, 3},
		Attenuation: mgl32.Vec3{1, 0, 0},
	}
	kind := "point"
	var hasPosition, hasDirection, hasAngle, hasPenumbra bool

	for _, child := range e.children {
		switch child.name {
		case "id":
			// numbering in the file is decorative
		case "type":
			v, ok := attr(child, "v")
			if !ok {
				return fmt.Errorf("light type element is missing attribute \"v\"")
			}
			kind = v
		case "color":
			c, err := colorAttr(child)
			if err != nil {
				return err
			}
			light.Color = c
		case "function":
			a, err := attenuationAttr(child)
			if err != nil {
				return err
			}
			light.Attenuation = a
		case "position":
			v, err := vec3Attr(child)
			if err != nil {
				return err
			}
			light.Position = v
			hasPosition = true
		case "direction":
			v, err := vec3Attr(child)
			if err != nil {
				return err
			}
			light.Direction = v
			hasDirection = true
		case "angle":
			v, err := floatAttr(child, "v")
			if err != nil {
				return err
			}
			light.Angle = mgl32.DegToRad(v)
			hasAngle = true
		case "penumbra":
			v, err := floatAttr(child, "v")
			if err != nil {
				return err
			}
			light.Penumbra = mgl32.DegToRad(v)
			hasPenumbra = true
		default:
			return fmt.Errorf("unknown element %q in lightdata", child.name)
		}
	}

	switch kind {
	case "point":
		if hasDirection {
			return fmt.Errorf("point light cannot have a direction")
		}
		if hasAngle || hasPenumbra {
			return fmt.Errorf("point light cannot have an angle or penumbra")
		}
		light.Kind = LightPoint
	case "directional":
		if hasPosition {
			return fmt.Errorf("directional light cannot have a position")
		}
		if hasAngle || hasPenumbra {
			return fmt.Errorf("directional light cannot have an angle or penumbra")
		}
		light.Kind = LightDirectional
	case "spot":
		light.Kind = LightSpot
	default:
		return fmt.Errorf("unknown light type %q", kind)
	}

	p.doc.Lights = append(p.doc.Lights, light)
	return nil
}

func (p *parser) parseTopObject(e *element) error {
	name, ok := attr(e, "name")
	if !ok {
		return fmt.Errorf("object is missing a name attribute")
	}
	if typ, _ := attr(e, "type"); typ != "tree" {
		return fmt.Errorf("top-level object %q must have type \"tree\"", name)
	}
	if _, exists := p.masters[name]; exists {
		return fmt.Errorf("duplicate object name %q", name)
	}

	node, err := p.parseTreeBody(e)
	if err != nil {
		return fmt.Errorf("object %q: %w", name, err)
	}

	// Register after the body completes so a self-reference fails as unknown
	// instead of building a cycle
	p.masters[name] = node
	if name == "root" {
		p.doc.Root = node
	}
	return nil
}

// parseTreeBody parses the transblock children of a tree object.
func (p *parser) parseTreeBody(e *element) (*Node, error) {
	node := &Node{}
	for _, child := range e.children {
		if child.name != "transblock" {
			return nil, fmt.Errorf("unknown element %q in tree object", child.name)
		}
		block, err := p.parseTransblock(child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, block)
	}
	return node, nil
}

func (p *parser) parseTransblock(e *element) (*Node, error) {
	node := &Node{}
	for _, child := range e.children {
		switch child.name {
		case "translate":
			v, err := vec3Attr(child)
			if err != nil {
				return nil, err
			}
			node.Transforms = append(node.Transforms, Transform{Kind: TransformTranslate, Vector: v})
		case "rotate":
			axis, err := vec3Attr(child)
			if err != nil {
				return nil, err
			}
			if axis.LenSqr() < 1e-12 {
				return nil, fmt.Errorf("rotation axis must be non-zero")
			}
			angle, err := floatAttr(child, "angle")
			if err != nil {
				return nil, err
			}
			node.Transforms = append(node.Transforms,
				Transform{Kind: TransformRotate, Vector: axis, Angle: mgl32.DegToRad(angle)})
		case "scale":
			v, err := vec3Attr(child)
			if err != nil {
				return nil, err
			}
			node.Transforms = append(node.Transforms, Transform{Kind: TransformScale, Vector: v})
		case "object":
			if err := p.parseBlockObject(child, node); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown element %q in transblock", child.name)
		}
	}
	return node, nil
}

// parseBlockObject parses an object nested inside a transblock and attaches
// it to the parent node.
func (p *parser) parseBlockObject(e *element, parent *Node) error {
	typ, _ := attr(e, "type")
	switch typ {
	case "primitive":
		prim, err := parsePrimitive(e)
		if err != nil {
			return err
		}
		parent.Primitives = append(parent.Primitives, prim)
	case "tree":
		child, err := p.parseTreeBody(e)
		if err != nil {
			return err
		}
		parent.Children = append(parent.Children, child)
	case "master":
		name, ok := attr(e, "name")
		if !ok {
			return fmt.Errorf("master object reference is missing a name attribute")
		}
		master, exists := p.masters[name]
		if !exists {
			return fmt.Errorf("unknown master object %q", name)
		}
		parent.Children = append(parent.Children, master)
	default:
		return fmt.Errorf("unknown object type %q", typ)
	}
	return nil
}

func parsePrimitive(e *element) (PrimitiveData, error) {
	prim := PrimitiveData{Material: MaterialData{Diffuse: mgl32.Vec3{1, 1, 1}}}

	name, _ := attr(e, "name")
	switch name {
	case "sphere":
		prim.Kind = PrimitiveSphere
	case "cube":
		prim.Kind = PrimitiveCube
	case "cylinder":
		prim.Kind = PrimitiveCylinder
	case "cone":
		prim.Kind = PrimitiveCone
	case "mesh":
		prim.Kind = PrimitiveMesh
		file, ok := attr(e, "file")
		if !ok {
			return prim, fmt.Errorf("mesh primitive requires a file attribute")
		}
		prim.MeshFile = file
	default:
		return prim, fmt.Errorf("unknown primitive %q", name)
	}

	for _, child := range e.children {
		var err error
		switch child.name {
		case "diffuse":
			prim.Material.Diffuse, err = colorAttr(child)
		case "ambient":
			prim.Material.Ambient, err = colorAttr(child)
		case "specular":
			prim.Material.Specular, err = colorAttr(child)
		case "reflective":
			prim.Material.Reflective, err = colorAttr(child)
		case "shininess":
			prim.Material.Shininess, err = floatAttr(child, "v")
		case "blend":
			prim.Material.Blend, err = floatAttr(child, "v")
		case "texture":
			tex, terr := parseTexture(child)
			if terr != nil {
				return prim, terr
			}
			prim.Material.Texture = &tex
		default:
			err = fmt.Errorf("unknown element %q in primitive", child.name)
		}
		if err != nil {
			return prim, err
		}
	}
	return prim, nil
}

func parseTexture(e *element) (TextureData, error) {
	tex := TextureData{RepeatU: 1, RepeatV: 1}

	file, ok := attr(e, "file")
	if !ok {
		return tex, fmt.Errorf("texture is missing a file attribute")
	}
	tex.File = file

	if _, ok := attr(e, "u"); ok {
		v, err := floatAttr(e, "u")
		if err != nil {
			return tex, err
		}
		tex.RepeatU = v
	}
	if _, ok := attr(e, "v"); ok {
		v, err := floatAttr(e, "v")
		if err != nil {
			return tex, err
		}
		tex.RepeatV = v
	}
	return tex, nil
}

func attr(e *element, name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func floatAttr(e *element, name string) (float32, error) {
	raw, ok := e.attrs[name]
	if !ok {
		return 0, fmt.Errorf("element %q is missing attribute %q", e.name, name)
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("element %q attribute %q: invalid number %q", e.name, name, raw)
	}
	return float32(v), nil
}

func vec3Attr(e *element) (mgl32.Vec3, error) {
	return tripleAttr(e, "x", "y", "z")
}

func tripleAttr(e *element, a, b, c string) (mgl32.Vec3, error) {
	x, err := floatAttr(e, a)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	y, err := floatAttr(e, b)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	z, err := floatAttr(e, c)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{x, y, z}, nil
}

func hasTriple(e *element, a, b, c string) bool {
	_, okA := e.attrs[a]
	_, okB := e.attrs[b]
	_, okC := e.attrs[c]
	return okA && okB && okC
}

// colorAttr reads a color from either (x,y,z) or (r,g,b) attributes.
func colorAttr(e *element) (mgl32.Vec3, error) {
	if hasTriple(e, "x", "y", "z") {
		return tripleAttr(e, "x", "y", "z")
	}
	if hasTriple(e, "r", "g", "b") {
		return tripleAttr(e, "r", "g", "b")
	}
	return mgl32.Vec3{}, fmt.Errorf("element %q needs color attributes (x,y,z) or (r,g,b)", e.name)
}

// attenuationAttr reads attenuation coefficients, accepting the three
// attribute spellings that appear in scene files.
func attenuationAttr(e *element) (mgl32.Vec3, error) {
	for _, names := range [][3]string{{"a", "b", "c"}, {"x", "y", "z"}, {"v1", "v2", "v3"}} {
		if hasTriple(e, names[0], names[1], names[2]) {
			return tripleAttr(e, names[0], names[1], names[2])
		}
	}
	return mgl32.Vec3{}, fmt.Errorf("element %q needs attenuation attributes (a,b,c), (x,y,z) or (v1,v2,v3)", e.name)
}
