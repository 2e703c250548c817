package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Image is one build stage: a named image block with its dependency edges
// and its calls in source order. Interleaving between share, get and
// generate calls is preserved because within an image the calls execute
// strictly top to bottom.
type Image struct {
	Name      string
	DependsOn []string
	Calls     []*Call
	DeclRange hcl.Range
}
