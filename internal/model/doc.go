// Package model holds the format-agnostic representation of a build
// description. The loader translates parsed files into these structures; the
// planner and executor consume them without knowing the source syntax.
//
// Call arguments stay as raw hcl.Expression values rather than evaluated Go
// types. Evaluation is deferred to the configure walk so that a call can
// reference variables bound by earlier calls in the same image block.
package model
