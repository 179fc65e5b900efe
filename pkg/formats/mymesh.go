// Package formats provides encoders and parsers for mesh interchange formats.
// MY_MESH format encoder and decoder for GPU-ready triangle meshes.
//
// Layout (little-endian, no padding, no magic, no version):
//
//	index_count  uint32                 number of uint32 indices (3 per triangle)
//	vertex_count uint32
//	indices      [index_count]uint32    consecutive triples form triangles
//	vertices     [vertex_count]struct   position.xyz float32, uv.xy float32
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	gomath "math"

	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// MY_MESH format errors.
var (
	ErrEncodingPrecondition = errors.New("my_mesh encoding precondition failed")
	ErrTruncatedMyMeshData  = errors.New("truncated my_mesh data")
	ErrInvalidIndexCount    = errors.New("my_mesh index count is not a multiple of 3")
	ErrTrailingMyMeshData   = errors.New("trailing bytes after my_mesh vertex block")
)

const (
	// MyMeshExt is the file extension of encoded meshes.
	MyMeshExt = ".my_mesh"

	MyMeshHeaderSize = 8  // index_count + vertex_count
	MyMeshIndexSize  = 4  // one uint32
	MyMeshVertexSize = 20 // 5 float32
)

// MyMeshVertex is one interleaved vertex record.
type MyMeshVertex struct {
	Position [3]float32
	UV       [2]float32
}

// MyMesh is a flat triangle list ready for GPU upload.
// Indices holds 3 entries per triangle.
type MyMesh struct {
	Indices  []uint32
	Vertices []MyMeshVertex
}

// TriangleCount returns the number of index triples.
func (m *MyMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// EncodedSize returns the byte length of the encoded mesh.
func (m *MyMesh) EncodedSize() int {
	return MyMeshHeaderSize + MyMeshIndexSize*len(m.Indices) + MyMeshVertexSize*len(m.Vertices)
}

// Validate checks the invariants the encoder relies on.
func (m *MyMesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form whole triangles", ErrEncodingPrecondition, len(m.Indices))
	}
	if uint64(len(m.Indices)) > gomath.MaxUint32 || uint64(len(m.Vertices)) > gomath.MaxUint32 {
		return fmt.Errorf("%w: counts exceed uint32 (indices=%d, vertices=%d)",
			ErrEncodingPrecondition, len(m.Indices), len(m.Vertices))
	}
	vertexCount := uint64(len(m.Vertices))
	for i, idx := range m.Indices {
		if uint64(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d at position %d out of range (vertex count %d)",
				ErrEncodingPrecondition, idx, i, vertexCount)
		}
	}
	return nil
}

// EncodeMyMesh serializes the mesh into a freshly allocated buffer.
// Nothing is returned if a precondition fails.
func EncodeMyMesh(m *MyMesh) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, m.EncodedSize()))

	header := [2]uint32{uint32(len(m.Indices)), uint32(len(m.Vertices))}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if len(m.Indices) > 0 {
		if err := binary.Write(buf, binary.LittleEndian, m.Indices); err != nil {
			return nil, err
		}
	}
	if len(m.Vertices) > 0 {
		if err := binary.Write(buf, binary.LittleEndian, m.Vertices); err != nil {
			return nil, err
		}
	}

	if buf.Len() != m.EncodedSize() {
		return nil, fmt.Errorf("%w: encoded %d bytes, expected %d", ErrEncodingPrecondition, buf.Len(), m.EncodedSize())
	}
	return buf.Bytes(), nil
}

// WriteMyMesh encodes the mesh fully in memory, then hands it to w in a
// single Write call. w is not touched when encoding fails.
func WriteMyMesh(w io.Writer, m *MyMesh) (int, error) {
	data, err := EncodeMyMesh(m)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	return n, err
}

// ParseMyMesh parses MY_MESH data from a byte slice.
func ParseMyMesh(data []byte) (*MyMesh, error) {
	if len(data) < MyMeshHeaderSize {
		return nil, ErrTruncatedMyMeshData
	}

	r := bytes.NewReader(data)

	var indexCount, vertexCount uint32
	binary.Read(r, binary.LittleEndian, &indexCount)
	binary.Read(r, binary.LittleEndian, &vertexCount)

	if indexCount%3 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndexCount, indexCount)
	}

	want := uint64(MyMeshHeaderSize) + uint64(indexCount)*MyMeshIndexSize + uint64(vertexCount)*MyMeshVertexSize
	if uint64(len(data)) < want {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedMyMeshData, want, len(data))
	}
	if uint64(len(data)) > want {
		return nil, fmt.Errorf("%w: %d extra bytes", ErrTrailingMyMeshData, uint64(len(data))-want)
	}

	m := &MyMesh{
		Indices:  make([]uint32, indexCount),
		Vertices: make([]MyMeshVertex, vertexCount),
	}
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedMyMeshData)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedMyMeshData)
	}

	return m, nil
}

// Bounds returns the axis-aligned bounds of all vertex positions.
// ok is false for a mesh without vertices.
func (m *MyMesh) Bounds() (lo, hi gmath.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo = vertexPosition(m.Vertices[0])
	hi = lo
	for _, v := range m.Vertices[1:] {
		p := vertexPosition(v)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, true
}

func vertexPosition(v MyMeshVertex) gmath.Vec3 {
	return gmath.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
}
