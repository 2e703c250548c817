package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/specialistvlad/stagehandgo/internal/model"
	"github.com/specialistvlad/stagehandgo/internal/schema"
)

// translateImage converts a decoded image block into its model form. The
// image body is walked strictly, so an unknown attribute or block inside
// `image` is a structural diagnostic; the call blocks themselves decode
// permissively.
func translateImage(img *schema.Image) (*model.Image, hcl.Diagnostics) {
	content, diags := img.Body.Content(schema.ImageContent)
	if diags.HasErrors() {
		return nil, diags
	}

	out := &model.Image{
		Name:      img.Name,
		DeclRange: img.Body.MissingItemRange(),
	}

	if attr, ok := content.Attributes["depends_on"]; ok {
		moreDiags := gohcl.DecodeExpression(attr.Expr, nil, &out.DependsOn)
		diags = append(diags, moreDiags...)
	}

	for _, block := range content.Blocks {
		call, callDiags := translateCall(block)
		diags = append(diags, callDiags...)
		if call != nil {
			out.Calls = append(out.Calls, call)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return out, diags
}

// translateCall captures one call block: its kind, its label for get, and
// every attribute as a raw expression.
func translateCall(block *hcl.Block) (*model.Call, hcl.Diagnostics) {
	args, diags := parseCallArguments(block.Body)
	if diags.HasErrors() {
		return nil, diags
	}

	call := &model.Call{
		Kind:      model.CallKind(block.Type),
		Arguments: args,
		DeclRange: block.DefRange,
	}

	if call.Kind == model.CallGet {
		call.Label = block.Labels[0]
		if !hclsyntax.ValidIdentifier(call.Label) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid variable name",
				Detail:   fmt.Sprintf("The get label %q names the output variable and must be a valid identifier.", call.Label),
				Subject:  &block.DefRange,
			})
			return nil, diags
		}
	}

	return call, diags
}

// translateTopGenerate converts a standalone generate block into a call
// with no enclosing image.
func translateTopGenerate(gen *schema.Generate) (*model.Call, hcl.Diagnostics) {
	args, diags := parseCallArguments(gen.Body)
	if diags.HasErrors() {
		return nil, diags
	}
	return &model.Call{
		Kind:      model.CallGenerate,
		Arguments: args,
		DeclRange: gen.Body.MissingItemRange(),
	}, diags
}

// parseCallArguments parses all attributes of a call block into a map of
// names to their raw HCL expressions. Unknown names are kept; which
// arguments a call requires is the validator's business, decided when the
// call executes.
func parseCallArguments(body hcl.Body) (map[string]hcl.Expression, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	args := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		args[name] = attr.Expr
	}
	return args, diags
}
