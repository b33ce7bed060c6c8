// swmesh converts Stormworks meshes, tiles and blocks.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/swmesh/internal/assembler"
	"github.com/Faultbox/swmesh/internal/config"
	"github.com/Faultbox/swmesh/internal/logger"
	"github.com/Faultbox/swmesh/internal/objfile"
	"github.com/Faultbox/swmesh/internal/sink"
	"github.com/Faultbox/swmesh/pkg/mesh"
	"github.com/Faultbox/swmesh/pkg/shapes"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("mesh root %s, profile %s, output %s (%s)",
		cfg.Mesh.Root, cfg.Mesh.Profile, cfg.Output.Dir, cfg.Output.Format)

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		err = cmdInfo(args)
	case "import-mesh":
		err = cmdImport(cfg, args, (*assembler.Assembler).ImportMesh)
	case "tile":
		err = cmdImport(cfg, args, (*assembler.Assembler).ImportTile)
	case "block":
		err = cmdImport(cfg, args, (*assembler.Assembler).ImportBlock)
	case "encode":
		err = cmdEncode(cfg, args)
	case "reencode":
		err = cmdReencode(cfg, args)
	case "shapes":
		err = cmdShapes(cfg)
	case "save-config":
		err = cmdSaveConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`swmesh - Stormworks mesh, tile and block converter

Usage:
  swmesh [flags] <command> [arguments]

Commands:
  info <file.mesh>                 Show mesh counts and bounds
  import-mesh <file.mesh>          Write a single mesh as "Imported Mesh"
  tile <tile.xml>                  Place every mesh of a tile
  block <block.xml>                Write block meshes and synthesized surfaces
  encode <in.obj> <out.mesh>       Encode an OBJ file
  reencode <in.mesh> <out.mesh>    Decode and encode with the configured profile
  shapes                           List the shape and orientation ids of the table
  save-config [path]               Write the effective configuration

Flags:
  -config <file>    Config file (default ./swmesh.yaml, then user config dir)
  -root <dir>       Mesh root folder that scene files resolve against
  -profile <name>   Encoder profile: minimal or extended
  -shapes <file>    Shape table YAML (default built-in)
  -out <dir>        Output directory
  -format <name>    Output format: mesh or obj
  -debug            Enable debug logging

Examples:
  swmesh info rom/meshes/component_seat.mesh
  swmesh -root rom/meshes -format obj tile rom/data/tiles/island_12.xml
  swmesh -root rom/meshes block rom/data/definitions/pipe_fluid.xml
  swmesh -profile minimal encode hull.obj hull.mesh`)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: swmesh info <file.mesh>")
	}

	m, err := mesh.DecodeFile(args[0])
	if err != nil {
		return err
	}

	b := m.Bounds()
	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Triangles: %d\n", len(m.Faces))
	fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("Submeshes: %d\n", len(m.Submeshes))
	for i, s := range m.Submeshes {
		fmt.Printf("  %d: indices %d-%d shader %d\n", i, s.Start, s.End, s.Shader)
	}
	return nil
}

func cmdImport(cfg *config.Config, args []string, run func(*assembler.Assembler, string) error) error {
	if len(args) < 1 {
		return fmt.Errorf("missing input file")
	}

	lib, err := shapeTable(cfg)
	if err != nil {
		return err
	}
	profile, err := cfg.MeshProfile()
	if err != nil {
		return err
	}

	out := &sink.Dir{Path: cfg.Output.Dir, Format: cfg.Output.Format, Profile: profile}
	a := assembler.New(cfg.Mesh.Root, lib, out, assembler.WithLogger(logger.Named("assembler")))

	if err := run(a, args[0]); err != nil {
		return err
	}
	if len(out.Written) == 0 {
		logger.Warn("no meshes written", zap.String("input", args[0]))
	}

	for _, path := range out.Written {
		fmt.Println(path)
	}
	return nil
}

func cmdEncode(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: swmesh encode <in.obj> <out.mesh>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := objfile.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	profile, err := cfg.MeshProfile()
	if err != nil {
		return err
	}
	data, err := mesh.EncodePolygons(src, profile)
	if err != nil {
		return err
	}

	logger.Info("mesh encoded",
		zap.String("path", args[1]),
		zap.Stringer("profile", profile),
		zap.Int("bytes", len(data)))
	return os.WriteFile(args[1], data, 0644)
}

func cmdReencode(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: swmesh reencode <in.mesh> <out.mesh>")
	}

	m, err := mesh.DecodeFile(args[0])
	if err != nil {
		return err
	}
	profile, err := cfg.MeshProfile()
	if err != nil {
		return err
	}

	logger.Info("mesh reencoded",
		zap.String("from", args[0]),
		zap.String("to", args[1]),
		zap.Stringer("profile", profile))
	return mesh.EncodeFile(args[1], m, profile)
}

func cmdSaveConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return cfg.SaveTo(args[0])
	}
	return cfg.Save()
}

func cmdShapes(cfg *config.Config) error {
	table, err := shapeTable(cfg)
	if err != nil {
		return err
	}

	source := cfg.Shapes.Table
	if source == "" {
		source = "(built-in)"
	}
	fmt.Printf("Table:        %s\n", source)
	fmt.Printf("Shapes:       %d\n", len(table.Shapes))
	fmt.Printf("Orientations: %d\n", len(table.Orientations))
	fmt.Println()

	for _, id := range table.ShapeIDs() {
		tris, _ := table.Shape(id)
		fmt.Printf("  shape %-4d %d triangles\n", id, len(tris))
	}
	return nil
}

func shapeTable(cfg *config.Config) (*shapes.Table, error) {
	if cfg.Shapes.Table == "" {
		logger.Debug("using built-in shape table")
		return shapes.Default(), nil
	}
	return shapes.Load(cfg.Shapes.Table)
}
