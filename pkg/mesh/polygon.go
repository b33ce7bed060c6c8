package mesh

import (
	"fmt"

	"github.com/Faultbox/swmesh/pkg/math"
)

// Polygon is a face with three or more corners.
type Polygon struct {
	Indices []int
	// Colors optionally holds a [0,1] RGBA color per corner.
	Colors [][4]float32
}

// PolygonMesh is editor-side geometry that may contain n-gons.
type PolygonMesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3 // optional, one per position
	Polygons  []Polygon
}

// Triangulate converts p to a triangle mesh. Polygons are split as fans
// around their first corner. A vertex takes the color of the last corner
// that references it; vertices without any corner color stay opaque white.
func (p *PolygonMesh) Triangulate() (*Mesh, error) {
	if len(p.Positions) > MaxVertices {
		return nil, fmt.Errorf("%w: %d", ErrTooManyVertices, len(p.Positions))
	}
	if len(p.Normals) != 0 && len(p.Normals) != len(p.Positions) {
		return nil, fmt.Errorf("%d normals for %d positions", len(p.Normals), len(p.Positions))
	}

	m := &Mesh{Vertices: make([]Vertex, len(p.Positions))}
	for i, pos := range p.Positions {
		m.Vertices[i] = Vertex{Position: pos, Color: White}
		if len(p.Normals) != 0 {
			m.Vertices[i].Normal = p.Normals[i]
		}
	}

	for pi, poly := range p.Polygons {
		if len(poly.Indices) < 3 {
			return nil, fmt.Errorf("%w: polygon %d has %d corners", ErrInvalidIndex, pi, len(poly.Indices))
		}
		if len(poly.Colors) != 0 && len(poly.Colors) != len(poly.Indices) {
			return nil, fmt.Errorf("polygon %d has %d colors for %d corners", pi, len(poly.Colors), len(poly.Indices))
		}
		for _, idx := range poly.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				return nil, fmt.Errorf("%w: polygon %d references vertex %d of %d", ErrInvalidIndex, pi, idx, len(m.Vertices))
			}
		}

		for k := 1; k+1 < len(poly.Indices); k++ {
			corners := [3]int{0, k, k + 1}
			var f Face
			for c, corner := range corners {
				idx := poly.Indices[corner]
				f[c] = uint16(idx)
				if len(poly.Colors) != 0 {
					m.Vertices[idx].Color = ColorFromFloat(poly.Colors[corner])
				}
			}
			m.Faces = append(m.Faces, f)
		}
	}

	if err := checkIndexCount(m.IndexCount()); err != nil {
		return nil, err
	}
	return m, nil
}
