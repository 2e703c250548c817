package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BuildPath string // .hcl file or directory of .hcl files
	OutDir    string // root for relative artifact paths

	VarsFile    string // optional YAML file seeding the shared namespace
	Stamp       bool   // seed git provenance into the shared namespace
	SummaryPath string // optional YAML run report

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills the defaults the CLI layer leaves
// open.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BuildPath == "" {
		return nil, errors.New("BuildPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "build"
	}
	return &cfg, nil
}
