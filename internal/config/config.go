// Package config handles swmesh configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/swmesh/pkg/mesh"
)

// Config holds all tool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Shapes  ShapesConfig  `yaml:"shapes"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds mesh lookup and encoding settings.
type MeshConfig struct {
	Root    string `yaml:"root"`    // folder scene files resolve mesh names against
	Profile string `yaml:"profile"` // "minimal" or "extended"
}

// ShapesConfig holds the surface shape table location.
type ShapesConfig struct {
	Table string `yaml:"table"` // empty uses the built-in table
}

// OutputConfig holds where assembled meshes are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "mesh" or "obj"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Output formats.
const (
	FormatMesh = "mesh"
	FormatOBJ  = "obj"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Root:    ".",
			Profile: mesh.ProfileExtended.String(),
		},
		Output: OutputConfig{
			Dir:    "out",
			Format: FormatMesh,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// MeshProfile returns the configured encoder profile.
func (c *Config) MeshProfile() (mesh.Profile, error) {
	return mesh.ParseProfile(c.Mesh.Profile)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.MeshProfile(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatMesh, FormatOBJ:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}
