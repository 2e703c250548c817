// Package loader discovers build description files and translates them into
// the format-agnostic model consumed by the planner and executor.
package loader

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/fsutil"
	"github.com/specialistvlad/stagehandgo/internal/model"
	"github.com/specialistvlad/stagehandgo/internal/propstore"
	"github.com/specialistvlad/stagehandgo/internal/schema"
)

// Loader parses HCL build descriptions.
type Loader struct{}

// NewLoader creates a new build description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire loading process for the given paths. A path
// may be a single .hcl file or a directory walked recursively. Image names
// must be unique across all loaded files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Build, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build description loader started.", "path_count", len(paths))

	files, err := fsutil.CollectByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no build description files (*.hcl) found in %v", paths)
	}
	logger.Debug("Discovered build description files.", "count", len(files))

	build := &model.Build{}
	declaredIn := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse build file %s: %w", file, diags)
		}

		var root schema.FileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode build file %s: %w", file, diags)
		}

		for _, img := range root.Images {
			if img.Name == propstore.SharedNamespace {
				return nil, fmt.Errorf("%s: image name %q is reserved for imported variables", file, img.Name)
			}
			if first, dup := declaredIn[img.Name]; dup {
				return nil, fmt.Errorf("duplicate image %q in %s (first declared in %s)", img.Name, file, first)
			}
			declaredIn[img.Name] = file

			translated, diags := translateImage(img)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid image %q in %s: %w", img.Name, file, diags)
			}
			build.Images = append(build.Images, translated)
		}

		for _, gen := range root.Generates {
			call, diags := translateTopGenerate(gen)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid generate block in %s: %w", file, diags)
			}
			build.Generates = append(build.Generates, call)
		}
	}

	logger.Debug("Build description loading complete.",
		"images", len(build.Images),
		"standalone_generates", len(build.Generates),
	)
	return build, nil
}
