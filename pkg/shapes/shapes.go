// Package shapes provides the shape and orientation tables used to build
// procedural block surfaces.
package shapes

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/swmesh/pkg/math"
)

// Shape table errors.
var (
	ErrUnknownShape       = errors.New("unknown surface shape")
	ErrUnknownOrientation = errors.New("unknown surface orientation")
	ErrInvalidTable       = errors.New("invalid shape table")
)

// Corner is one vertex of a shape triangle in shape-local space.
type Corner struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Triangle is three corners in winding order.
type Triangle [3]Corner

// Library resolves shape and orientation ids.
type Library interface {
	// Shape returns the triangles of a shape. An empty slice means the
	// shape produces no geometry.
	Shape(id int) ([]Triangle, error)
	// Orientation returns the rotations that turn a shape to face its cell.
	Orientation(id int) ([]math.Rotation, error)
}

// Table is a Library backed by in-memory maps.
type Table struct {
	Shapes       map[int][]Triangle
	Orientations map[int][]math.Rotation
}

// Shape implements Library.
func (t *Table) Shape(id int) ([]Triangle, error) {
	tris, ok := t.Shapes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, id)
	}
	return tris, nil
}

// Orientation implements Library.
func (t *Table) Orientation(id int) ([]math.Rotation, error) {
	rots, ok := t.Orientations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrientation, id)
	}
	return rots, nil
}

// ShapeIDs returns the known shape ids in ascending order.
func (t *Table) ShapeIDs() []int {
	ids := make([]int, 0, len(t.Shapes))
	for id := range t.Shapes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

//go:embed default.yaml
var defaultTable []byte

// Default returns the built-in table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("shapes: built-in table: %v", err))
	}
	return t
}

// yamlTable is the on-disk layout of a shape table.
type yamlTable struct {
	Shapes       map[int][][]yamlCorner `yaml:"shapes"`
	Orientations map[int][]yamlRotation `yaml:"orientations"`
}

type yamlCorner struct {
	P [3]float32 `yaml:"p"`
	N [3]float32 `yaml:"n"`
}

type yamlRotation struct {
	Axis         [3]float32 `yaml:"axis"`
	Angle        float64    `yaml:"angle"`         // radians
	QuarterTurns *int       `yaml:"quarter_turns"` // alternative to angle
}

// Parse reads a shape table from YAML.
func Parse(data []byte) (*Table, error) {
	var raw yamlTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	t := &Table{
		Shapes:       make(map[int][]Triangle, len(raw.Shapes)),
		Orientations: make(map[int][]math.Rotation, len(raw.Orientations)),
	}

	for id, tris := range raw.Shapes {
		shape := make([]Triangle, len(tris))
		for i, corners := range tris {
			if len(corners) != 3 {
				return nil, fmt.Errorf("%w: shape %d triangle %d has %d corners", ErrInvalidTable, id, i, len(corners))
			}
			for c, corner := range corners {
				shape[i][c] = Corner{Position: math.FromArray(corner.P), Normal: math.FromArray(corner.N)}
			}
		}
		t.Shapes[id] = shape
	}

	for id, rots := range raw.Orientations {
		orientation := make([]math.Rotation, len(rots))
		for i, r := range rots {
			axis := math.FromArray(r.Axis)
			if r.QuarterTurns != nil {
				orientation[i] = math.QuarterTurns(axis, *r.QuarterTurns)
			} else {
				orientation[i] = math.Rotation{Axis: axis, Angle: r.Angle}
			}
		}
		t.Orientations[id] = orientation
	}

	return t, nil
}

// Load reads a shape table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shape table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
