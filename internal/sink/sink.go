// Package sink provides destinations for assembled meshes.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/swmesh/internal/objfile"
	"github.com/Faultbox/swmesh/pkg/mesh"
)

// Collector keeps emitted meshes in memory, in emission order.
type Collector struct {
	Names  []string
	Meshes []*mesh.Mesh
}

// AddMesh records the mesh.
func (c *Collector) AddMesh(name string, m *mesh.Mesh) error {
	c.Names = append(c.Names, name)
	c.Meshes = append(c.Meshes, m)
	return nil
}

// Get returns the last mesh emitted under name.
func (c *Collector) Get(name string) (*mesh.Mesh, bool) {
	for i := len(c.Names) - 1; i >= 0; i-- {
		if c.Names[i] == name {
			return c.Meshes[i], true
		}
	}
	return nil, false
}

// Dir writes each emitted mesh to a file in a directory. Later meshes with
// the same name overwrite earlier ones.
type Dir struct {
	Path    string
	Format  string // "mesh" or "obj"
	Profile mesh.Profile

	// Written lists the files created, in emission order.
	Written []string
}

// AddMesh writes m to <Path>/<name>.<Format>.
func (d *Dir) AddMesh(name string, m *mesh.Mesh) error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return err
	}

	path := filepath.Join(d.Path, FileName(name, d.Format))
	switch d.Format {
	case "mesh":
		if err := mesh.EncodeFile(path, m, d.Profile); err != nil {
			return err
		}
	case "obj":
		if err := writeOBJ(path, name, m); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", d.Format)
	}

	d.Written = append(d.Written, path)
	return nil
}

func writeOBJ(path, name string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := objfile.Write(f, name, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FileName derives a file name from a mesh name. Any existing .mesh
// extension is dropped and path separators and spaces become underscores.
func FileName(name, format string) string {
	base := strings.TrimSuffix(name, ".mesh")
	base = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(base)
	if base == "" {
		base = "unnamed"
	}
	return base + "." + format
}
