package scene

import (
	"fmt"
	"os"

	"github.com/Faultbox/swmesh/pkg/math"
)

// maxExtraMeshes is the number of mesh_<n>_name attributes a block carries.
const maxExtraMeshes = 2

// Block is a grid-aligned object made of a base mesh, up to two extra
// meshes and procedural surfaces.
type Block struct {
	PrimaryMesh string // empty when the block has no base mesh
	ExtraMeshes []string
	Surfaces    []Surface
}

// Surface is one procedural cell of a block.
type Surface struct {
	Orientation int
	Rotation    int // quarter turns about X applied before Orientation
	Shape       int
	TransType   int
	Position    [3]int // grid coordinates
}

// Offset returns the grid position as a vector.
func (s Surface) Offset() math.Vec3 {
	return math.Vec3{X: float32(s.Position[0]), Y: float32(s.Position[1]), Z: float32(s.Position[2])}
}

// ParseBlock parses a block definition from raw XML.
//
// mesh_data_name is required but may be empty. A block without a
// <surfaces> element has no surfaces.
func ParseBlock(data []byte) (*Block, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	primary, err := root.requireAttr("mesh_data_name")
	if err != nil {
		return nil, err
	}

	block := &Block{}
	if primary != "" {
		block.PrimaryMesh = meshReference(primary)
	}

	for i := 0; i < maxExtraMeshes; i++ {
		name, ok := root.attr(fmt.Sprintf("mesh_%d_name", i))
		if !ok || name == "" {
			break
		}
		block.ExtraMeshes = append(block.ExtraMeshes, meshReference(name))
	}

	surfaces := root.child("surfaces")
	if surfaces == nil {
		return block, nil
	}

	block.Surfaces = make([]Surface, 0, len(surfaces.Children))
	for i := range surfaces.Children {
		s, err := parseSurface(&surfaces.Children[i])
		if err != nil {
			return nil, fmt.Errorf("block surface %d: %w", i, err)
		}
		block.Surfaces = append(block.Surfaces, s)
	}

	return block, nil
}

// ParseBlockFile parses a block definition from disk.
func ParseBlockFile(path string) (*Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading block file: %w", err)
	}
	return ParseBlock(data)
}

// parseSurface requires orientation and shape. rotation, trans_type and
// the position coordinates default to zero, which is how the game omits
// them.
func parseSurface(e *element) (Surface, error) {
	var s Surface
	var err error

	if s.Orientation, err = e.requireInt("orientation"); err != nil {
		return Surface{}, err
	}
	if s.Shape, err = e.requireInt("shape"); err != nil {
		return Surface{}, err
	}
	if s.Rotation, err = e.intOr("rotation", 0); err != nil {
		return Surface{}, err
	}
	if s.TransType, err = e.intOr("trans_type", 0); err != nil {
		return Surface{}, err
	}

	pos := e.child("position")
	if pos == nil {
		return s, nil
	}
	for i, axis := range []string{"x", "y", "z"} {
		if s.Position[i], err = pos.intOr(axis, 0); err != nil {
			return Surface{}, err
		}
	}

	return s, nil
}
