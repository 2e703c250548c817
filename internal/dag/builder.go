package dag

import (
	"fmt"

	"github.com/specialistvlad/stagehandgo/internal/model"
)

// FromBuild constructs the dependency graph of a build description. Every
// image becomes a node in declaration order; every depends_on entry becomes
// an edge. Naming an undeclared image is an error here, before anything
// executes.
func FromBuild(build *model.Build) (*Graph, error) {
	g := New()
	for _, img := range build.Images {
		g.AddNode(img.Name)
	}

	for _, img := range build.Images {
		for _, dep := range img.DependsOn {
			if dep == img.Name {
				return nil, fmt.Errorf("image %q depends on itself", img.Name)
			}
			if build.Image(dep) == nil {
				return nil, fmt.Errorf("image %q depends on unknown image %q", img.Name, dep)
			}
			if err := g.AddEdge(dep, img.Name); err != nil {
				return nil, fmt.Errorf("image %q: %w", img.Name, err)
			}
		}
	}
	return g, nil
}
