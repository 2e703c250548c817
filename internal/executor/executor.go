// Package executor walks a build description in dependency order and
// applies its calls to the property registry. It is the configure half of a
// run; writing the deferred artifacts afterwards belongs to the
// orchestrator.
package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/stagehandgo/internal/argcheck"
	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/dag"
	"github.com/specialistvlad/stagehandgo/internal/handoff"
	"github.com/specialistvlad/stagehandgo/internal/model"
	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

// Executor drives the configure phase for one build description. It is
// single-threaded on purpose: the ordering guarantee between calls is the
// load-bearing part of the design, and images configure strictly one after
// another.
type Executor struct {
	build  *model.Build
	store  *propstore.Store
	gen    *handoff.Generator
	outDir string
}

// New creates an Executor over the given build description. Registry and
// generator are owned by the caller, which reads both after Run returns.
// Relative artifact paths resolve under outDir.
func New(build *model.Build, store *propstore.Store, gen *handoff.Generator, outDir string) *Executor {
	return &Executor{
		build:  build,
		store:  store,
		gen:    gen,
		outDir: outDir,
	}
}

// Run configures every image in dependency order, then processes the
// standalone generate blocks. The first failing call aborts the run with
// its image and source position wrapped in.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	graph, err := dag.FromBuild(e.build)
	if err != nil {
		return err
	}
	order, err := graph.TopoOrder()
	if err != nil {
		return err
	}

	logger.Info("🚀 Starting configure phase.", "images", len(order))

	for _, name := range order {
		if err := e.configureImage(ctx, e.build.Image(name)); err != nil {
			return err
		}
	}

	for _, call := range e.build.Generates {
		evalCtx := newEvalContext()
		if err := e.runGenerate(ctx, "", call, evalCtx); err != nil {
			return fmt.Errorf("%s: %w", call.DeclRange, err)
		}
	}

	logger.Info("✅ Configure phase complete.",
		"images", len(order),
		"pending_artifacts", e.gen.Pending(),
	)
	return nil
}

// newEvalContext returns the root evaluation scope for one image block.
// Variables bound by get calls land here as configuration proceeds.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Variables: make(map[string]cty.Value)}
}

// evalArgs evaluates every attribute of a call against the image's scope.
// Names are evaluated in sorted order so a call with several broken
// expressions always reports the same one.
func evalArgs(call *model.Call, evalCtx *hcl.EvalContext) (argcheck.Args, error) {
	names := make([]string, 0, len(call.Arguments))
	for name := range call.Arguments {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make(argcheck.Args, len(names))
	for _, name := range names {
		val, diags := call.Arguments[name].Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating argument %q: %w", name, diags)
		}
		args[name] = val
	}
	return args, nil
}

// stringArg converts a bound argument to its string form. Callers check
// presence beforehand via the validator.
func stringArg(callName string, args argcheck.Args, name string) (string, error) {
	converted, err := convert.Convert(args.Get(name), cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: argument %q must be a string: %w", callName, name, err)
	}
	return converted.AsString(), nil
}

// resolvePath anchors relative artifact paths in the output directory.
func (e *Executor) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.outDir, path)
}
