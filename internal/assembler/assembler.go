// Package assembler turns tile and block definitions into named meshes and
// hands them to a Sink.
package assembler

import (
	"errors"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/swmesh/pkg/math"
	"github.com/Faultbox/swmesh/pkg/mesh"
	"github.com/Faultbox/swmesh/pkg/scene"
	"github.com/Faultbox/swmesh/pkg/shapes"
)

// ErrUnresolvedMeshReference is returned when a referenced mesh file does
// not exist under the mesh root.
var ErrUnresolvedMeshReference = errors.New("unresolved mesh reference")

// ImportedMeshName is the object name given to a standalone mesh import.
const ImportedMeshName = "Imported Mesh"

// surfacesSuffix is appended to the primary mesh name to name the
// synthesized surface mesh of a block.
const surfacesSuffix = "_surfaces"

// Sink receives assembled meshes.
type Sink interface {
	AddMesh(name string, m *mesh.Mesh) error
}

// Resolver maps mesh references to files under a root folder.
type Resolver struct {
	Root string
}

// Resolve returns the path of a mesh reference.
func (r Resolver) Resolve(name string) (string, error) {
	path := filepath.Join(r.Root, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s (root %s)", ErrUnresolvedMeshReference, name, r.Root)
	}
	return path, nil
}

// Load resolves and decodes a mesh reference.
func (r Resolver) Load(name string) (*mesh.Mesh, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	m, err := mesh.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", name, err)
	}
	return m, nil
}

// Object is a named mesh ready to be emitted.
type Object struct {
	Name string
	Mesh *mesh.Mesh
}

// Assembler builds meshes from scene definitions.
type Assembler struct {
	resolver Resolver
	shapes   shapes.Library
	sink     Sink
	log      *zap.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		a.log = l
	}
}

// New creates an assembler that resolves meshes under root.
func New(root string, lib shapes.Library, sink Sink, opts ...Option) *Assembler {
	a := &Assembler{
		resolver: Resolver{Root: root},
		shapes:   lib,
		sink:     sink,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ImportMesh decodes a single mesh file and emits it as ImportedMeshName.
func (a *Assembler) ImportMesh(path string) error {
	m, err := mesh.DecodeFile(path)
	if err != nil {
		return err
	}
	a.log.Debug("mesh decoded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)))
	return a.emit([]Object{{Name: ImportedMeshName, Mesh: m}})
}

// ImportTile parses a tile file and emits every placed mesh.
func (a *Assembler) ImportTile(path string) error {
	tile, err := scene.ParseTileFile(path)
	if err != nil {
		return err
	}
	return a.AssembleTile(tile)
}

// ImportBlock parses a block file and emits its meshes and surfaces.
func (a *Assembler) ImportBlock(path string) error {
	block, err := scene.ParseBlockFile(path)
	if err != nil {
		return err
	}
	return a.AssembleBlock(block)
}

// AssembleTile places every mesh of the tile and emits each under its
// entity id. Nothing is emitted if any mesh fails.
func (a *Assembler) AssembleTile(tile *scene.Tile) error {
	objects := make([]Object, 0, len(tile.Meshes))
	for _, entity := range tile.Meshes {
		m, err := a.resolver.Load(entity.Filename)
		if err != nil {
			return fmt.Errorf("tile mesh %q: %w", entity.ID, err)
		}
		PlaceTileMesh(m, entity.Transformation)
		a.log.Debug("tile mesh placed",
			zap.String("id", entity.ID),
			zap.String("file", entity.Filename),
			zap.Int("vertices", len(m.Vertices)))
		objects = append(objects, Object{Name: entity.ID, Mesh: m})
	}
	return a.emit(objects)
}

// AssembleBlock emits the block's primary and extra meshes untransformed,
// followed by one mesh holding all procedural surfaces. Nothing is emitted
// if any part fails.
func (a *Assembler) AssembleBlock(block *scene.Block) error {
	var objects []Object

	if block.PrimaryMesh != "" {
		m, err := a.resolver.Load(block.PrimaryMesh)
		if err != nil {
			return fmt.Errorf("block mesh: %w", err)
		}
		objects = append(objects, Object{Name: block.PrimaryMesh, Mesh: m})
	}

	for _, name := range block.ExtraMeshes {
		m, err := a.resolver.Load(name)
		if err != nil {
			return fmt.Errorf("block extra mesh: %w", err)
		}
		objects = append(objects, Object{Name: name, Mesh: m})
	}

	surfaces, skipped, err := buildSurfaces(block.Surfaces, a.shapes)
	if err != nil {
		return err
	}
	if skipped > 0 {
		a.log.Debug("empty surface shapes skipped", zap.Int("count", skipped))
	}
	a.log.Debug("surfaces synthesized",
		zap.Int("surfaces", len(block.Surfaces)),
		zap.Int("faces", len(surfaces.Faces)))
	objects = append(objects, Object{Name: block.PrimaryMesh + surfacesSuffix, Mesh: surfaces})

	return a.emit(objects)
}

func (a *Assembler) emit(objects []Object) error {
	for _, obj := range objects {
		if err := a.sink.AddMesh(obj.Name, obj.Mesh); err != nil {
			return fmt.Errorf("emitting %q: %w", obj.Name, err)
		}
		a.log.Info("mesh emitted",
			zap.String("name", obj.Name),
			zap.Int("vertices", len(obj.Mesh.Vertices)),
			zap.Int("faces", len(obj.Mesh.Faces)))
	}
	return nil
}

// PlaceTileMesh applies a tile placement matrix to every vertex and then
// mirrors X into the output coordinate system. Submesh bounds are
// recomputed in the placed space.
func PlaceTileMesh(m *mesh.Mesh, t math.Transformation) {
	for i := range m.Vertices {
		m.Vertices[i].Place(t)
		m.Vertices[i].MirrorX()
	}
	for i, s := range m.Submeshes {
		m.Submeshes[i].Bounds = m.IndexBounds(s.Start, s.End)
	}
}

// SurfaceMesh synthesizes the triangles of all surfaces into one mesh.
// Every triangle gets three vertices of its own, in surface order. Shapes
// without triangles contribute nothing.
func SurfaceMesh(surfaces []scene.Surface, lib shapes.Library) (*mesh.Mesh, error) {
	m, _, err := buildSurfaces(surfaces, lib)
	return m, err
}

// buildSurfaces is SurfaceMesh that also counts the surfaces whose shape
// has no triangles.
func buildSurfaces(surfaces []scene.Surface, lib shapes.Library) (*mesh.Mesh, int, error) {
	out := &mesh.Mesh{}
	skipped := 0

	for i, s := range surfaces {
		tris, err := lib.Shape(s.Shape)
		if err != nil {
			return nil, 0, fmt.Errorf("surface %d: %w", i, err)
		}
		if len(tris) == 0 {
			skipped++
			continue
		}
		orientation, err := lib.Orientation(s.Orientation)
		if err != nil {
			return nil, 0, fmt.Errorf("surface %d: %w", i, err)
		}

		var pre []math.Rotation
		if s.Rotation != 0 {
			pre = []math.Rotation{{Axis: math.AxisX, Angle: float64(s.Rotation) / 2 * gomath.Pi}}
		}
		offset := s.Offset()

		for _, tri := range tris {
			if len(out.Vertices)+3 > mesh.MaxVertices {
				return nil, 0, fmt.Errorf("%w: surfaces exceed %d vertices", mesh.ErrTooManyVertices, mesh.MaxVertices)
			}
			base := uint16(len(out.Vertices))
			for _, corner := range tri {
				v := mesh.Vertex{Position: corner.Position, Color: mesh.White, Normal: corner.Normal}
				if pre != nil {
					v.Transform(pre, math.Vec3{})
				}
				v.Transform(orientation, offset)
				out.Vertices = append(out.Vertices, v)
			}
			out.Faces = append(out.Faces, mesh.Face{base, base + 1, base + 2})
		}
	}

	return out, skipped, nil
}
