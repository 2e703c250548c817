package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Image represents an `image` block from a build description file. The body
// stays undecoded here; the loader walks it with ImageContent so that call
// blocks keep their source order.
type Image struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Generate represents a top-level `generate` block, the form used outside
// any image. Its attributes are decoded permissively like every call block.
type Generate struct {
	Body hcl.Body `hcl:",remain"`
}

// FileRoot represents the top-level structure of a build description file,
// containing all declared images and standalone generate requests.
type FileRoot struct {
	Images    []*Image    `hcl:"image,block"`
	Generates []*Generate `hcl:"generate,block"`
	Remain    hcl.Body    `hcl:",remain"`
}

// ImageContent is the strict schema for an image block's body. Anything not
// listed here is a structural error; permissiveness starts inside the call
// blocks, where the validator owns the argument contract.
var ImageContent = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "depends_on"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "share"},
		{Type: "get", LabelNames: []string{"name"}},
		{Type: "generate"},
	},
}
