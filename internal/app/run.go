package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/executor"
	"github.com/specialistvlad/stagehandgo/internal/provenance"
)

// Run executes one full configuration run: seed the shared namespace,
// configure every image, write the deferred artifacts, then the optional
// run summary.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.VarsFile != "" {
		count, err := a.seedVarsFile(a.config.VarsFile)
		if err != nil {
			return fmt.Errorf("seeding variables from %s: %w", a.config.VarsFile, err)
		}
		a.logger.Info("Seeded shared variables from file.", "path", a.config.VarsFile, "count", count)
	}

	if a.config.Stamp {
		stamp, err := provenance.Collect(a.stampDir())
		if err != nil {
			return fmt.Errorf("collecting provenance: %w", err)
		}
		if err := stamp.Seed(a.store); err != nil {
			return err
		}
		a.logger.Info("Stamped build provenance.",
			"revision", stamp.Revision,
			"branch", stamp.Branch,
			"dirty", stamp.Dirty,
		)
	}

	exec := executor.New(a.build, a.store, a.gen, a.config.OutDir)
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("configure phase failed: %w", err)
	}

	if err := a.gen.Flush(ctx, a.store); err != nil {
		return fmt.Errorf("generation phase failed: %w", err)
	}
	a.logger.Info("🏁 Generation finished.", "artifacts", len(a.gen.Artifacts()))

	if a.config.SummaryPath != "" {
		if err := a.writeSummary(a.config.SummaryPath); err != nil {
			return fmt.Errorf("writing run summary: %w", err)
		}
		a.logger.Info("Wrote run summary.", "path", a.config.SummaryPath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// stampDir picks the directory provenance detection starts from: the build
// path itself, or its parent when the build path is a single file.
func (a *App) stampDir() string {
	info, err := os.Stat(a.config.BuildPath)
	if err == nil && info.IsDir() {
		return a.config.BuildPath
	}
	return filepath.Dir(a.config.BuildPath)
}
