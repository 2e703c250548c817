package model

import (
	"github.com/hashicorp/hcl/v2"
)

// CallKind names one of the operations a build description can invoke.
type CallKind string

const (
	// CallShare publishes a property or bulk-imports a handoff file.
	CallShare CallKind = "share"
	// CallGet looks a property up and binds it to a local variable.
	CallGet CallKind = "get"
	// CallGenerate defers a handoff artifact write.
	CallGenerate CallKind = "generate"
)

// Call is a single operation invocation, in the position it appeared in the
// source. Arguments are permissive: every attribute of the call block is
// captured by name, known or not, and the validator decides at execution
// time which ones matter.
type Call struct {
	Kind      CallKind
	Label     string // only get carries a label: the output variable name
	Arguments map[string]hcl.Expression
	DeclRange hcl.Range
}
