package executor

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/model"
)

// configureImage runs one image block: dependency names join its reachable
// sub-images, then every call executes in source order against the image's
// own evaluation scope.
func (e *Executor) configureImage(ctx context.Context, img *model.Image) error {
	logger := ctxlog.FromContext(ctx).With("image", img.Name)
	logger.Info("▶️ Configuring image")

	for _, dep := range img.DependsOn {
		if err := e.store.AddImageTarget(img.Name, dep); err != nil {
			return fmt.Errorf("image %q: recording dependency %q: %w", img.Name, dep, err)
		}
	}

	evalCtx := newEvalContext()
	for _, call := range img.Calls {
		if err := e.runCall(ctx, img.Name, call, evalCtx); err != nil {
			return fmt.Errorf("image %q: %s: %w", img.Name, call.DeclRange, err)
		}
	}

	logger.Info("✅ Image configured", "calls", len(img.Calls))
	return nil
}

// runCall dispatches a single call to its handler.
func (e *Executor) runCall(ctx context.Context, image string, call *model.Call, evalCtx *hcl.EvalContext) error {
	switch call.Kind {
	case model.CallShare:
		return e.runShare(ctx, image, call, evalCtx)
	case model.CallGet:
		return e.runGet(ctx, image, call, evalCtx)
	case model.CallGenerate:
		return e.runGenerate(ctx, image, call, evalCtx)
	}
	return fmt.Errorf("unknown call kind %q", call.Kind)
}
