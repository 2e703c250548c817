package handoff

import (
	"fmt"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

// Stats reports what an Import pulled out of an artifact.
type Stats struct {
	Targets int
	Vars    int
}

// Import reads an artifact produced by an earlier run and folds it into the
// registry on behalf of image. Targets and variable lines join image's own
// reserved lists so they propagate into every artifact this run generates,
// and each variable is additionally indexed under the shared pseudo-image so
// the build description can query it by name. The named file must exist; an
// explicitly imported artifact going missing means the stage wiring is
// broken.
func Import(store *propstore.Store, image, path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("importing handoff file %q: %w", path, err)
	}

	targets, vars := Parse(data)
	for _, target := range targets {
		if err := store.AddImageTarget(image, target); err != nil {
			return Stats{}, fmt.Errorf("importing handoff file %q: %w", path, err)
		}
	}
	for _, line := range vars {
		if err := store.AppendSharedVar(image, line); err != nil {
			return Stats{}, fmt.Errorf("importing handoff file %q: %w", path, err)
		}
		name, value, _ := strings.Cut(line, "=")
		if name == "" {
			continue
		}
		if err := store.Set(propstore.SharedNamespace, name, cty.StringVal(value), false); err != nil {
			return Stats{}, fmt.Errorf("importing handoff file %q: %w", path, err)
		}
	}
	return Stats{Targets: len(targets), Vars: len(vars)}, nil
}
