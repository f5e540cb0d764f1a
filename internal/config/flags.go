package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagObjFile = flag.String("objfile", "", "Path to the input OBJ file (required)")
	flagMtlFile = flag.String("mtlfile", "", "Path to the input MTL file (required)")
	flagScale   = flag.Float64("scale", 0, "Explicit scale factor (0 = automatic)")
	flagCenter  = flag.String("center", "", "Explicit center as X/Y/Z (empty = automatic)")
	flagNoScale = flag.Bool("noScale", false, "Keep the original size (scale factor 1)")
	flagNoMove  = flag.Bool("noMove", false, "Keep the original position (center 0/0/0)")
	flagOutDir  = flag.String("outdir", "", "Output directory (default: next to each input)")
	flagVerbose = flag.Bool("verbose", false, "Enable info logging")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ObjFile returns the OBJ input path from the --objfile flag.
func ObjFile() string {
	return *flagObjFile
}

// MtlFile returns the MTL input path from the --mtlfile flag.
func MtlFile() string {
	return *flagMtlFile
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagVerbose {
		cfg.Logging.Level = "info"
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScale != 0 {
		cfg.Convert.Scale = *flagScale
	}
	if *flagCenter != "" {
		cfg.Convert.Center = *flagCenter
	}
	if *flagNoScale {
		cfg.Convert.NoScale = true
	}
	if *flagNoMove {
		cfg.Convert.NoMove = true
	}
	if *flagOutDir != "" {
		cfg.Output.Dir = *flagOutDir
	}
}
