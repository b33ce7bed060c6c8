package scene

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/swmesh/pkg/math"
)

// Mesh is one placed instance of a mesh file within a tile.
type Mesh struct {
	ID             string
	Filename       string // relative to the mesh root
	SeasonalFlags  string
	Transformation math.Transformation
}

// Tile is an ordered list of placed meshes.
type Tile struct {
	Meshes []Mesh
}

// ParseTile parses a tile definition from raw XML.
func ParseTile(data []byte) (*Tile, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	meshes, err := root.requireChild("meshes")
	if err != nil {
		return nil, err
	}

	tile := &Tile{Meshes: make([]Mesh, 0, len(meshes.Children))}
	for i := range meshes.Children {
		m, err := parseMesh(&meshes.Children[i])
		if err != nil {
			return nil, fmt.Errorf("tile mesh %d: %w", i, err)
		}
		tile.Meshes = append(tile.Meshes, m)
	}

	return tile, nil
}

// ParseTileFile parses a tile definition from disk.
func ParseTileFile(path string) (*Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile file: %w", err)
	}
	return ParseTile(data)
}

func parseMesh(e *element) (Mesh, error) {
	var m Mesh
	var err error

	if m.ID, err = e.requireAttr("id"); err != nil {
		return Mesh{}, err
	}
	filename, err := e.requireAttr("file_name")
	if err != nil {
		return Mesh{}, err
	}
	m.Filename = meshReference(filename)
	if m.SeasonalFlags, err = e.requireAttr("seasonal_flags"); err != nil {
		return Mesh{}, err
	}

	transform, err := e.requireChild("transform")
	if err != nil {
		return Mesh{}, err
	}
	if m.Transformation, err = parseTransformation(transform); err != nil {
		return Mesh{}, err
	}

	return m, nil
}

// parseTransformation reads matrix cells from attributes named
// <letter><row><col>. Cells that are not present stay zero; other
// attributes are ignored.
func parseTransformation(e *element) (math.Transformation, error) {
	var t math.Transformation
	for _, a := range e.Attrs {
		row, col, ok := cellKey(a.Name.Local)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(a.Value, 64)
		if err != nil {
			return math.Transformation{}, fmt.Errorf("%w: %s=%q on <%s>", ErrInvalidAttribute, a.Name.Local, a.Value, e.name())
		}
		t.Set(row, col, v)
	}
	return t, nil
}

func cellKey(key string) (row, col int, ok bool) {
	if len(key) != 3 {
		return 0, 0, false
	}
	r, c := key[1], key[2]
	if r < '0' || r > '3' || c < '0' || c > '3' {
		return 0, 0, false
	}
	return int(r - '0'), int(c - '0'), true
}
