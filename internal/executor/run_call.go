package executor

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/stagehandgo/internal/argcheck"
	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/handoff"
	"github.com/specialistvlad/stagehandgo/internal/model"
)

// runShare publishes a property or bulk-imports a handoff file. The modes
// are mutually exclusive: `file` cannot be combined with the property
// arguments, and at least one of `name` and `file` must be given.
func (e *Executor) runShare(ctx context.Context, image string, call *model.Call, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx).With("image", image)

	args, err := evalArgs(call, evalCtx)
	if err != nil {
		return err
	}
	if err := argcheck.RequireAny("share", args, "name", "file"); err != nil {
		return err
	}
	if err := argcheck.Exclusive("share", args, "file", "name", "value", "append", "image"); err != nil {
		return err
	}

	if args.Has("file") {
		path, err := stringArg("share", args, "file")
		if err != nil {
			return err
		}
		resolved := e.resolvePath(path)
		stats, err := handoff.Import(e.store, image, resolved)
		if err != nil {
			return err
		}
		logger.Debug("Imported handoff file.",
			"path", resolved,
			"targets", stats.Targets,
			"vars", stats.Vars,
		)
		return nil
	}

	if err := argcheck.RequireAll("share", args, "name", "value"); err != nil {
		return err
	}
	name, err := stringArg("share", args, "name")
	if err != nil {
		return err
	}
	value := args.Get("value")
	appendMode := args.Truthy("append")

	if args.Has("image") {
		target, err := stringArg("share", args, "image")
		if err != nil {
			return err
		}
		if err := e.store.Set(target, name, value, appendMode); err != nil {
			return err
		}
		logger.Debug("Shared property.", "target_image", target, "name", name, "append", appendMode)
		return nil
	}

	// Without an explicit image the property is destined for this image's
	// own artifact, which stores flat name=value lines. That shape only
	// fits scalars.
	scalar, convErr := convert.Convert(value, cty.String)
	if convErr != nil {
		return fmt.Errorf("share: argument %q must be a string when no image is given (lists need an explicit image): %w", "value", convErr)
	}
	if err := e.store.AppendSharedVar(image, name+"="+scalar.AsString()); err != nil {
		return err
	}
	if err := e.store.Set(image, name, scalar, appendMode); err != nil {
		return err
	}
	logger.Debug("Recorded shared variable.", "name", name)
	return nil
}

// runGet looks a property up and binds it into the image's scope under the
// call's label. An unknown image or property is not an error: the variable
// simply stays unbound, and only a later expression that references it will
// complain.
func (e *Executor) runGet(ctx context.Context, image string, call *model.Call, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx).With("image", image)

	args, err := evalArgs(call, evalCtx)
	if err != nil {
		return err
	}
	if err := argcheck.RequireAll("get", args, "image", "property"); err != nil {
		return err
	}
	source, err := stringArg("get", args, "image")
	if err != nil {
		return err
	}
	property, err := stringArg("get", args, "property")
	if err != nil {
		return err
	}

	value, ok := e.store.Get(source, property)
	if !ok {
		logger.Debug("Property not found; variable stays unbound.",
			"source_image", source,
			"property", property,
			"variable", call.Label,
		)
		return nil
	}

	evalCtx.Variables[call.Label] = value
	logger.Debug("Bound variable.", "variable", call.Label, "source_image", source, "property", property)
	return nil
}

// runGenerate defers one artifact write. Inside an image block the image
// argument defaults to the enclosing image; the standalone form must name
// one explicitly.
func (e *Executor) runGenerate(ctx context.Context, image string, call *model.Call, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx)

	args, err := evalArgs(call, evalCtx)
	if err != nil {
		return err
	}
	if image != "" && !args.Has("image") {
		args["image"] = cty.StringVal(image)
	}
	if err := argcheck.RequireAll("generate", args, "image", "file"); err != nil {
		return err
	}
	target, err := stringArg("generate", args, "image")
	if err != nil {
		return err
	}
	file, err := stringArg("generate", args, "file")
	if err != nil {
		return err
	}

	resolved := e.resolvePath(file)
	e.gen.Defer(target, resolved)
	logger.Debug("Deferred handoff artifact.", "image", target, "path", resolved)
	return nil
}
