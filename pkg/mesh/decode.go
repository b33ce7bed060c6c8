package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	gomath "math"
	"os"

	"github.com/Faultbox/swmesh/pkg/math"
)

// Decode parses a .mesh file from raw bytes.
//
// Files written with either profile are accepted. Bytes between the last
// submesh record and the trailer are ignored. Faces referencing a vertex
// past the vertex count are rejected with ErrInvalidIndex.
func Decode(data []byte) (*Mesh, error) {
	if len(data) < len(magic)+len(fileTrailer) || !bytes.HasPrefix(data, magic) {
		return nil, fmt.Errorf("%w: bad magic or version", ErrMalformedHeader)
	}
	if !bytes.HasSuffix(data, fileTrailer) {
		return nil, fmt.Errorf("%w: missing trailer", ErrMalformedHeader)
	}

	r := &reader{data: data[len(magic) : len(data)-len(fileTrailer)]}

	vertexCount, err := r.u16("vertex count")
	if err != nil {
		return nil, err
	}
	if err := r.skip(len(reservedMarker), "reserved field"); err != nil {
		return nil, err
	}
	if err := r.need(int(vertexCount)*vertexRecordSize, "vertices"); err != nil {
		return nil, err
	}

	m := &Mesh{Vertices: make([]Vertex, vertexCount)}
	for i := range m.Vertices {
		m.Vertices[i] = r.vertex()
	}

	indexCount, err := r.u32("index count")
	if err != nil {
		return nil, err
	}
	if indexCount%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMalformedHeader, indexCount)
	}
	if err := r.need(int(indexCount)*2, "indices"); err != nil {
		return nil, err
	}

	m.Faces = make([]Face, indexCount/3)
	for i := range m.Faces {
		m.Faces[i] = Face{r.mustU16(), r.mustU16(), r.mustU16()}
		for _, idx := range m.Faces[i] {
			if idx >= vertexCount {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidIndex, i, idx, vertexCount)
			}
		}
	}

	// Files may end right after the indices.
	if r.remaining() == 0 {
		return m, nil
	}

	submeshCount, err := r.u32("submesh count")
	if err != nil {
		return nil, err
	}
	if err := r.need(int(submeshCount)*(submeshRecordSize+len(submeshTrailer)), "submeshes"); err != nil {
		return nil, err
	}

	if submeshCount > 0 {
		m.Submeshes = make([]Submesh, submeshCount)
		for i := range m.Submeshes {
			m.Submeshes[i] = r.submesh()
		}
	}

	return m, nil
}

// DecodeFile parses a .mesh file from disk.
func DecodeFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// reader is a cursor over the mesh body. Callers check need before using
// the unchecked accessors.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) need(n int, what string) error {
	if n < 0 || n > r.remaining() {
		return fmt.Errorf("%w: reading %s: need %d bytes, have %d", ErrTruncatedInput, what, n, r.remaining())
	}
	return nil
}

func (r *reader) skip(n int, what string) error {
	if err := r.need(n, what); err != nil {
		return err
	}
	r.off += n
	return nil
}

func (r *reader) u16(what string) (uint16, error) {
	if err := r.need(2, what); err != nil {
		return 0, err
	}
	return r.mustU16(), nil
}

func (r *reader) u32(what string) (uint32, error) {
	if err := r.need(4, what); err != nil {
		return 0, err
	}
	return r.mustU32(), nil
}

func (r *reader) mustU16() uint16 {
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) mustU32() uint32 {
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) mustF32() float32 {
	return gomath.Float32frombits(r.mustU32())
}

func (r *reader) vec3() math.Vec3 {
	return math.Vec3{X: r.mustF32(), Y: r.mustF32(), Z: r.mustF32()}
}

func (r *reader) vertex() Vertex {
	var v Vertex
	v.Position = r.vec3()
	c := r.data[r.off : r.off+4]
	v.Color = RGBA{c[0], c[1], c[2], c[3]}
	r.off += 4
	v.Normal = r.vec3()
	return v
}

func (r *reader) submesh() Submesh {
	var s Submesh
	s.Start = r.mustU32()
	s.End = r.mustU32()
	s.Shader = r.mustU16()
	s.Bounds.Min = r.vec3()
	s.Bounds.Max = r.vec3()
	r.off += len(submeshTrailer)
	return s
}
