// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds the transform settings handed to the pipeline.
type ConvertConfig struct {
	Scale   float64 `yaml:"scale"`    // Explicit scale factor; 0 = automatic
	Center  string  `yaml:"center"`   // Explicit center as "x/y/z"; empty = automatic
	NoScale bool    `yaml:"no_scale"` // Force scale factor 1 (keep original size)
	NoMove  bool    `yaml:"no_move"`  // Force center 0/0/0 (keep original position)
}

// OutputConfig holds output placement settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory; empty writes next to each input
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Scale:   0,
			Center:  "",
			NoScale: false,
			NoMove:  false,
		},
		Output: OutputConfig{
			Dir: "",
		},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}
