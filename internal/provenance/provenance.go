// Package provenance resolves the source revision a run was made from, so
// build stages can share it like any other property.
package provenance

import (
	"fmt"
	"strconv"

	"github.com/go-git/go-git/v5"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

// Stamp describes the state of the repository enclosing the build.
type Stamp struct {
	Revision string
	Branch   string
	Dirty    bool
}

// Collect opens the repository enclosing dir (walking upwards like the git
// CLI does) and reads HEAD plus the worktree status. Not being inside a
// repository is an error; the caller decides whether stamping was optional.
func Collect(dir string) (*Stamp, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	stamp := &Stamp{Revision: head.Hash().String()}
	if head.Name().IsBranch() {
		stamp.Branch = head.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}
	stamp.Dirty = !status.IsClean()

	return stamp, nil
}

// Seed publishes the stamp into the shared namespace, exactly as if a prior
// stage had handed the values off.
func (s *Stamp) Seed(store *propstore.Store) error {
	vars := []struct {
		name  string
		value string
	}{
		{"BUILD_REVISION", s.Revision},
		{"BUILD_BRANCH", s.Branch},
		{"BUILD_DIRTY", strconv.FormatBool(s.Dirty)},
	}
	for _, v := range vars {
		if v.value == "" {
			continue
		}
		if err := store.Set(propstore.SharedNamespace, v.name, cty.StringVal(v.value), false); err != nil {
			return fmt.Errorf("seeding %s: %w", v.name, err)
		}
	}
	return nil
}
