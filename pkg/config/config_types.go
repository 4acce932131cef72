package config

// Config is the paperchain configuration file.
type Config struct {
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Perception PerceptionConfig `yaml:"perception"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
	Batch      BatchConfig      `yaml:"batch"`
}

// AnalysisConfig holds ring search and pucker parameters
type AnalysisConfig struct {
	MaxRingSize   int    `yaml:"max_ring_size"`
	MaxPathLength int    `yaml:"max_path_length"`
	Method        string `yaml:"method"` // "hill-reilly" or "cremer-pople"
}

// PerceptionConfig controls distance based bond perception for inputs
// without explicit connectivity
type PerceptionConfig struct {
	Enabled               bool    `yaml:"enabled"`
	Tolerance             float64 `yaml:"tolerance"`
	MinDistance           float64 `yaml:"min_distance"`
	MaxHydrogenBondLength float64 `yaml:"max_hydrogen_bond_length"`
	SkipHydrogens         bool    `yaml:"skip_hydrogens"`
}

// LoggingConfig selects the log level and line format
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig controls where reports go
type OutputConfig struct {
	Path     string `yaml:"path"` // "-" writes to stdout, empty writes no report
	Compress bool   `yaml:"compress"`
	Indent   bool   `yaml:"indent"`
}

// BatchConfig sizes the worker pool used for multiple input files
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxRingSize:   10,
			MaxPathLength: 5,
			Method:        "hill-reilly",
		},
		Perception: PerceptionConfig{
			Enabled:               true,
			Tolerance:             0.4,
			MinDistance:           0.4,
			MaxHydrogenBondLength: 1.15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Indent: true,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
	}
}
