package handoff

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/stagehandgo/internal/ctxlog"
	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

type request struct {
	image string
	path  string
}

// Generator collects artifact requests during the configure phase and writes
// them out in one pass afterwards. Requests are flushed in registration
// order; when two requests name the same path the later one wins, which is
// logged rather than rejected.
type Generator struct {
	requests []request
	written  []string
	flushed  bool
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Defer registers that image's reserved properties should be serialized to
// path when Flush runs. Nothing is read from the registry yet.
func (g *Generator) Defer(image, path string) {
	g.requests = append(g.requests, request{image: image, path: path})
}

// Pending returns the number of artifacts queued for Flush.
func (g *Generator) Pending() int {
	return len(g.requests)
}

// Artifacts returns the paths written by Flush, in write order. A path
// flushed more than once appears once.
func (g *Generator) Artifacts() []string {
	return g.written
}

// Flush snapshots the registry and writes every deferred artifact. Parent
// directories are created as needed. The first write failure aborts the
// pass. A Generator flushes once; the configure phase must be over.
func (g *Generator) Flush(ctx context.Context, store *propstore.Store) error {
	if g.flushed {
		return fmt.Errorf("handoff generator flushed twice")
	}
	g.flushed = true

	logger := ctxlog.FromContext(ctx)
	written := make(map[string]string, len(g.requests))

	for _, req := range g.requests {
		prev, rewrite := written[req.path]
		if rewrite {
			logger.Warn("Handoff file requested more than once; the later request wins",
				"path", req.path,
				"previous_image", prev,
				"image", req.image,
			)
		}

		targets, vars := store.Snapshot(req.image)
		data := Encode(targets, vars)

		if err := os.MkdirAll(filepath.Dir(req.path), 0o755); err != nil {
			return fmt.Errorf("creating directory for handoff file %q: %w", req.path, err)
		}
		if err := os.WriteFile(req.path, data, 0o644); err != nil {
			return fmt.Errorf("writing handoff file %q: %w", req.path, err)
		}
		written[req.path] = req.image
		if !rewrite {
			g.written = append(g.written, req.path)
		}

		logger.Debug("Wrote handoff file",
			"path", req.path,
			"image", req.image,
			"targets", len(targets),
			"vars", len(vars),
			"bytes", len(data),
		)
	}
	return nil
}
