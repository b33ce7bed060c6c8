// Package objfile reads and writes the subset of Wavefront OBJ needed to
// move meshes between swmesh and other tools.
//
// Supported statements: o, v (optionally followed by r g b [a]), vn and f
// with v, v/vt, v//vn or v/vt/vn corners. Everything else is ignored.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/swmesh/pkg/math"
	"github.com/Faultbox/swmesh/pkg/mesh"
)

// ErrSyntax is returned for statements that cannot be parsed.
var ErrSyntax = errors.New("obj syntax error")

// Read parses an OBJ stream into polygon geometry.
//
// OBJ normals are per corner; each position takes the normal of the last
// corner that references it. When any vertex carries a color, every corner
// gets one and uncolored vertices are white.
func Read(r io.Reader) (*mesh.PolygonMesh, error) {
	var (
		pm        = &mesh.PolygonMesh{}
		normals   []math.Vec3
		colors    [][4]float32
		hasColors bool
		cornerN   [][]int
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		ident, val := fields[0], fields[1:]

		switch ident {
		case "v":
			if len(val) != 3 && len(val) != 6 && len(val) != 7 {
				return nil, fmt.Errorf("%w: line %d: vertex has %d values", ErrSyntax, lineNo, len(val))
			}
			f, err := parseFloats(val)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNo, err)
			}
			pm.Positions = append(pm.Positions, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
			c := [4]float32{1, 1, 1, 1}
			if len(f) > 3 {
				hasColors = true
				copy(c[:], f[3:])
			}
			colors = append(colors, c)
		case "vn":
			if len(val) != 3 {
				return nil, fmt.Errorf("%w: line %d: normal has %d values", ErrSyntax, lineNo, len(val))
			}
			f, err := parseFloats(val)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNo, err)
			}
			normals = append(normals, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
		case "f":
			var poly mesh.Polygon
			var ns []int
			for _, corner := range val {
				idx := strings.Split(corner, "/")
				pos, err := resolveIndex(idx[0], len(pm.Positions))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNo, err)
				}
				n := -1
				if len(idx) == 3 && idx[2] != "" {
					if n, err = resolveIndex(idx[2], len(normals)); err != nil {
						return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNo, err)
					}
				}
				poly.Indices = append(poly.Indices, pos)
				ns = append(ns, n)
			}
			pm.Polygons = append(pm.Polygons, poly)
			cornerN = append(cornerN, ns)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(normals) > 0 {
		pm.Normals = make([]math.Vec3, len(pm.Positions))
		for pi, poly := range pm.Polygons {
			for c, pos := range poly.Indices {
				n := cornerN[pi][c]
				if n < 0 || n >= len(normals) || pos < 0 || pos >= len(pm.Positions) {
					continue
				}
				pm.Normals[pos] = normals[n]
			}
		}
	}

	if hasColors {
		for pi := range pm.Polygons {
			poly := &pm.Polygons[pi]
			poly.Colors = make([][4]float32, len(poly.Indices))
			for c, pos := range poly.Indices {
				if pos >= 0 && pos < len(colors) {
					poly.Colors[c] = colors[pos]
				}
			}
		}
	}

	return pm, nil
}

// resolveIndex converts a one-based or negative relative OBJ index to a
// zero-based one. Range checking against the final vertex count is left
// to triangulation.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		return count + i, nil
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
}

func parseFloats(val []string) ([]float32, error) {
	out := make([]float32, len(val))
	for i, s := range val {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", s)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// Write serializes m as a single named OBJ object. Vertex colors are
// written as r g b after the position; alpha is dropped.
func Write(w io.Writer, name string, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", name)
	for _, v := range m.Vertices {
		c := v.Color.Float()
		fmt.Fprintf(bw, "v %s %s %s %s %s %s\n",
			formatFloat(v.Position.X), formatFloat(v.Position.Y), formatFloat(v.Position.Z),
			formatFloat(c[0]), formatFloat(c[1]), formatFloat(c[2]))
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(v.Normal.X), formatFloat(v.Normal.Y), formatFloat(v.Normal.Z))
	}
	for _, f := range m.Faces {
		a, b, c := int(f[0])+1, int(f[1])+1, int(f[2])+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
