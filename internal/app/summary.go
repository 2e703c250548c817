package app

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// imageSummary is one image's row in the run report.
type imageSummary struct {
	Name       string   `yaml:"name"`
	Targets    []string `yaml:"image_targets,omitempty"`
	SharedVars int      `yaml:"shared_vars"`
}

// runSummary is the YAML run report: every image with registry entries
// (sorted by name) and the artifacts in write order.
type runSummary struct {
	Images    []imageSummary `yaml:"images"`
	Artifacts []string       `yaml:"artifacts,omitempty"`
}

// writeSummary renders the post-run registry state to path. Determinism
// matters more than completeness here: the report is meant to be diffed
// between runs.
func (a *App) writeSummary(path string) error {
	summary := runSummary{Artifacts: a.gen.Artifacts()}
	for _, name := range a.store.Images() {
		targets, vars := a.store.Snapshot(name)
		summary.Images = append(summary.Images, imageSummary{
			Name:       name,
			Targets:    targets,
			SharedVars: len(vars),
		})
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
