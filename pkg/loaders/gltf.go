package loaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// MeshData holds triangle geometry extracted from a glTF document. Normals
// and UVs align with Vertices when the file carries them and are empty
// otherwise.
type MeshData struct {
	Vertices []mgl32.Vec3
	Indices  []int
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
}

// LoadGLTF loads a .gltf or .glb file and flattens every triangle primitive
// in it into a single mesh.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf file: %w", err)
	}

	mesh := &MeshData{}
	for _, m := range doc.Meshes {
		if err := appendMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("gltf mesh %q: %w", m.Name, err)
		}
	}

	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("gltf file %s contains no triangle geometry", path)
	}

	// Files without shading attributes leave all-zero placeholders; drop
	// those so the mesh falls back to face normals and barycentric UVs.
	if !anyNonZeroVec3(mesh.Normals) {
		mesh.Normals = nil
	}
	if !anyNonZeroVec2(mesh.UVs) {
		mesh.UVs = nil
	}
	return mesh, nil
}

// appendMesh adds one glTF mesh's triangle primitives to the output.
func appendMesh(doc *gltf.Document, m *gltf.Mesh, out *MeshData) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip lines, points and strips
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, positions...)

		normals := make([]mgl32.Vec3, len(positions))
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			read, err := readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
			if len(read) != len(positions) {
				return fmt.Errorf("primitive has %d normals for %d vertices", len(read), len(positions))
			}
			normals = read
		}
		out.Normals = append(out.Normals, normals...)

		uvs := make([]mgl32.Vec2, len(positions))
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			read, err := readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read texture coordinates: %w", err)
			}
			if len(read) != len(positions) {
				return fmt.Errorf("primitive has %d texture coordinates for %d vertices", len(read), len(positions))
			}
			// glTF puts v = 0 at the top of the image; flip to the
			// bottom-left origin texture sampling expects
			for i, uv := range read {
				uvs[i] = mgl32.Vec2{uv.X(), 1 - uv.Y()}
			}
		}
		out.UVs = append(out.UVs, uvs...)

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				out.Indices = append(out.Indices, base+idx)
			}
		} else {
			// No index buffer, vertices form sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				out.Indices = append(out.Indices, base+i, base+i+1, base+i+2)
			}
		}
	}
	return nil
}

func anyNonZeroVec3(vs []mgl32.Vec3) bool {
	for _, v := range vs {
		if v != (mgl32.Vec3{}) {
			return true
		}
	}
	return false
}

func anyNonZeroVec2(vs []mgl32.Vec2) bool {
	for _, v := range vs {
		if v != (mgl32.Vec2{}) {
			return true
		}
	}
	return false
}

// readVec3Accessor reads VEC3 float data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]mgl32.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}

	data, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 12
	}

	result := make([]mgl32.Vec3, accessor.Count)
	for i := range result {
		offset := i * stride
		for j := 0; j < 3; j++ {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			result[i][j] = math.Float32frombits(bits)
		}
	}
	return result, nil
}

// readVec2Accessor reads VEC2 float data from a glTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]mgl32.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2 accessor, got %v", accessor.Type)
	}

	data, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 8
	}

	result := make([]mgl32.Vec2, accessor.Count)
	for i := range result {
		offset := i * stride
		for j := 0; j < 2; j++ {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			result[i][j] = math.Float32frombits(bits)
		}
	}
	return result, nil
}

// readIndices reads scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	data, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		if stride == 0 {
			stride = 1
		}
		for i := range result {
			result[i] = int(data[i*stride])
		}
	case gltf.ComponentUshort:
		if stride == 0 {
			stride = 2
		}
		for i := range result {
			result[i] = int(binary.LittleEndian.Uint16(data[i*stride:]))
		}
	case gltf.ComponentUint:
		if stride == 0 {
			stride = 4
		}
		for i := range result {
			result[i] = int(binary.LittleEndian.Uint32(data[i*stride:]))
		}
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}
	return result, nil
}

// accessorBytes locates an accessor's raw bytes and byte stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]

	if buffer.URI != "" && buffer.Data == nil {
		return nil, 0, fmt.Errorf("external buffer %q is not loaded", buffer.URI)
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	start := view.ByteOffset + accessor.ByteOffset
	return buffer.Data[start:], view.ByteStride, nil
}
