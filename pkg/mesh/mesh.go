// Package mesh reads and writes the binary .mesh format.
//
// Layout (little-endian):
//
//	magic    "mesh" 07 00 01 00
//	uint16   vertex count N, then 4 reserved bytes (13 00 00 00)
//	N x      position float32x3, color uint8x4, normal float32x3
//	uint32   index count M, then M uint16 indices (triangles)
//	uint32   submesh count S, then S submesh records (extended profile)
//	00 00    trailer
//
// A submesh record is: uint32 index start, uint32 index end, uint16 shader
// id, bounds min float32x3, bounds max float32x3, followed by a fixed block
// of bytes the game engine expects verbatim.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/swmesh/pkg/math"
)

// Mesh format errors.
var (
	ErrMalformedHeader = errors.New("malformed mesh header")
	ErrTruncatedInput  = errors.New("truncated mesh data")
	ErrTooManyVertices = errors.New("too many vertices for 16-bit indices")
	ErrTooManyIndices  = errors.New("too many indices")
	ErrInvalidIndex    = errors.New("invalid vertex index")
)

const (
	// MaxVertices is the largest vertex count a 16-bit index can address.
	MaxVertices = 0xFFFF
	// MaxIndices is the largest index count the 32-bit count field holds.
	MaxIndices = 0xFFFFFFFF
)

var (
	magic          = []byte{'m', 'e', 's', 'h', 0x07, 0x00, 0x01, 0x00}
	reservedMarker = []byte{0x13, 0x00, 0x00, 0x00}
	fileTrailer    = []byte{0x00, 0x00}

	// submeshTrailer closes every submesh record. Its meaning is unknown;
	// the engine rejects records without it.
	submeshTrailer = []byte{
		0x00, 0x00, 0x03, 0x00, 'I', 'D', '0',
		0x00, 0x00, 0x80, 0x3F,
		0x00, 0x00, 0x80, 0x3F,
		0x00, 0x00, 0x80, 0x3F,
	}
)

const (
	headerSize        = 8 + 2 + 4
	vertexRecordSize  = 12 + 4 + 12
	submeshRecordSize = 4 + 4 + 2 + 12 + 12
)

// RGBA is an 8-bit per channel vertex color.
type RGBA struct {
	R, G, B, A uint8
}

// White is opaque white, the color of vertices without a color source.
var White = RGBA{255, 255, 255, 255}

// ColorFromFloat converts [0,1] channels to bytes. Values are scaled by 255
// and truncated, never rounded; out-of-range input is clamped.
func ColorFromFloat(c [4]float32) RGBA {
	return RGBA{floorChannel(c[0]), floorChannel(c[1]), floorChannel(c[2]), floorChannel(c[3])}
}

// Float returns the color with every channel, alpha included, in [0,1].
func (c RGBA) Float() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func floorChannel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}

// Vertex is a single point of a mesh.
type Vertex struct {
	Position math.Vec3
	Color    RGBA
	Normal   math.Vec3
}

// Face is a triangle as three indices into the vertex buffer.
type Face [3]uint16

// Submesh is a contiguous range of the index buffer drawn with one shader.
type Submesh struct {
	Start  uint32 // first index
	End    uint32 // one past the last index
	Shader uint16
	Bounds math.Bounds
}

// Mesh is a decoded vertex and index buffer.
type Mesh struct {
	Vertices  []Vertex
	Faces     []Face
	Submeshes []Submesh
}

// IndexCount returns the number of indices, three per face.
func (m *Mesh) IndexCount() int {
	return len(m.Faces) * 3
}

// Bounds returns the origin-seeded, widened bounding box of all positions.
func (m *Mesh) Bounds() math.Bounds {
	points := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		points[i] = v.Position
	}
	return math.BoundsOf(points...)
}

// IndexBounds returns the origin-seeded, widened bounding box of the
// vertices referenced by the index range [start, end). The range is clamped
// to the index buffer.
func (m *Mesh) IndexBounds(start, end uint32) math.Bounds {
	var b math.Bounds
	if n := uint32(m.IndexCount()); end > n {
		end = n
	}
	for k := start; k < end; k++ {
		b.Extend(m.Vertices[m.Faces[k/3][k%3]].Position)
	}
	return b.Widened()
}

// Profile selects the encoder output variant. The two are not
// binary-compatible with each other's consumers.
type Profile int

const (
	// ProfileMinimal writes an empty submesh table and no bounds.
	ProfileMinimal Profile = iota
	// ProfileExtended writes one submesh covering every index, with bounds.
	ProfileExtended
)

// String returns the profile name used in configuration.
func (p Profile) String() string {
	switch p {
	case ProfileMinimal:
		return "minimal"
	case ProfileExtended:
		return "extended"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseProfile parses a profile name.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "minimal":
		return ProfileMinimal, nil
	case "extended":
		return ProfileExtended, nil
	default:
		return 0, fmt.Errorf("unknown mesh profile %q", name)
	}
}
