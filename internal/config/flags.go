package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagRoot    = flag.String("root", "", "Mesh root folder")
	flagProfile = flag.String("profile", "", "Mesh encoder profile (minimal, extended)")
	flagShapes  = flag.String("shapes", "", "Shape table YAML file")
	flagOut     = flag.String("out", "", "Output directory")
	flagFormat  = flag.String("format", "", "Output format (mesh, obj)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRoot != "" {
		cfg.Mesh.Root = *flagRoot
	}
	if *flagProfile != "" {
		cfg.Mesh.Profile = *flagProfile
	}
	if *flagShapes != "" {
		cfg.Shapes.Table = *flagShapes
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
