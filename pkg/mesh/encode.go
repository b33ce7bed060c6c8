package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/Faultbox/swmesh/pkg/math"
)

// Encode serializes m with the given profile. Vertices are written in
// index order and faces keep their winding.
//
// m.Submeshes is not written: the extended profile always emits a single
// submesh with shader 0 covering the whole index buffer.
func Encode(m *Mesh, profile Profile) ([]byte, error) {
	if len(m.Vertices) > MaxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, len(m.Vertices))
	}
	if err := checkIndexCount(m.IndexCount()); err != nil {
		return nil, err
	}
	for i, f := range m.Faces {
		for _, idx := range f {
			if int(idx) >= len(m.Vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidIndex, i, idx, len(m.Vertices))
			}
		}
	}

	buf := new(bytes.Buffer)
	buf.Grow(headerSize + len(m.Vertices)*vertexRecordSize + m.IndexCount()*2 + 64)

	buf.Write(magic)
	binary.Write(buf, binary.LittleEndian, uint16(len(m.Vertices)))
	buf.Write(reservedMarker)

	var bounds math.Bounds
	for _, v := range m.Vertices {
		writeVec3(buf, v.Position)
		buf.Write([]byte{v.Color.R, v.Color.G, v.Color.B, v.Color.A})
		writeVec3(buf, v.Normal)
		bounds.Extend(v.Position)
	}
	bounds = bounds.Widened()

	binary.Write(buf, binary.LittleEndian, uint32(m.IndexCount()))
	for _, f := range m.Faces {
		binary.Write(buf, binary.LittleEndian, f)
	}

	switch profile {
	case ProfileMinimal:
		binary.Write(buf, binary.LittleEndian, uint32(0))
	case ProfileExtended:
		binary.Write(buf, binary.LittleEndian, uint32(1))
		writeSubmesh(buf, Submesh{Start: 0, End: uint32(m.IndexCount()), Shader: 0, Bounds: bounds})
	default:
		return nil, fmt.Errorf("unknown mesh profile %d", profile)
	}

	buf.Write(fileTrailer)
	return buf.Bytes(), nil
}

// EncodeFile encodes m and writes it to path.
func EncodeFile(path string, m *Mesh, profile Profile) error {
	data, err := Encode(m, profile)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing mesh file: %w", err)
	}
	return nil
}

// EncodePolygons triangulates src and encodes the result.
func EncodePolygons(src *PolygonMesh, profile Profile) ([]byte, error) {
	m, err := src.Triangulate()
	if err != nil {
		return nil, err
	}
	return Encode(m, profile)
}

func checkIndexCount(n int) error {
	if uint64(n) > MaxIndices {
		return fmt.Errorf("%w: %d", ErrTooManyIndices, n)
	}
	return nil
}

func writeVec3(buf *bytes.Buffer, v math.Vec3) {
	binary.Write(buf, binary.LittleEndian, [3]float32{v.X, v.Y, v.Z})
}

func writeSubmesh(buf *bytes.Buffer, s Submesh) {
	binary.Write(buf, binary.LittleEndian, s.Start)
	binary.Write(buf, binary.LittleEndian, s.End)
	binary.Write(buf, binary.LittleEndian, s.Shader)
	writeVec3(buf, s.Bounds.Min)
	writeVec3(buf, s.Bounds.Max)
	buf.Write(submeshTrailer)
}
