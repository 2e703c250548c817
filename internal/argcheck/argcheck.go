// Package argcheck validates the named arguments of a call before any state
// is mutated. It implements the three guard policies the build-description
// operations rely on: at-least-one-of, all-of (fail-fast), and
// mutual-exclusion. Unknown argument names are never rejected; the guards
// only look for the names they are given.
package argcheck

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Args is the set of named arguments bound at a call site, with their
// evaluated values. An argument whose value evaluated to null counts as
// unbound.
type Args map[string]cty.Value

// Has reports whether the named argument is bound to a non-null value.
func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && !v.IsNull()
}

// Get returns the bound value for name, or cty.NilVal when it is unbound.
func (a Args) Get(name string) cty.Value {
	return a[name]
}

// Truthy reports whether the named argument is bound to a value that is
// "set" in the conventional sense: true booleans, non-empty strings and
// collections, non-zero numbers. Unbound and null arguments are falsy.
func (a Args) Truthy(name string) bool {
	v, ok := a[name]
	if !ok || v.IsNull() {
		return false
	}
	if !v.IsKnown() {
		return true
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return v.True()
	case ty == cty.String:
		return v.AsString() != ""
	case ty == cty.Number:
		return v.AsBigFloat().Sign() != 0
	case ty.IsListType() || ty.IsSetType() || ty.IsMapType() || ty.IsTupleType() || ty.IsObjectType():
		return v.LengthInt() > 0
	}
	return true
}

// MissingArgumentError reports that a call was made without a required
// argument. Candidates holds the full alternative list for an any-of check,
// or exactly the first missing name for an all-of check.
type MissingArgumentError struct {
	Call       string
	Candidates []string
}

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	if len(e.Candidates) == 1 {
		return fmt.Sprintf("%s: required argument %q is not set", e.Call, e.Candidates[0])
	}
	return fmt.Sprintf("%s: requires at least one of %s", e.Call, quoteList(e.Candidates))
}

// ConflictError reports that a call combined arguments that exclude each
// other. Conflicting lists only the excluded names that were actually set.
type ConflictError struct {
	Call        string
	Primary     string
	Conflicting []string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: argument %q cannot be combined with %s", e.Call, e.Primary, quoteList(e.Conflicting))
}

// RequireAny succeeds if at least one of names is bound. On failure the
// returned error names the call and every candidate, so the caller can tell
// which alternatives were expected.
func RequireAny(call string, args Args, names ...string) error {
	for _, name := range names {
		if args.Has(name) {
			return nil
		}
	}
	return &MissingArgumentError{Call: call, Candidates: names}
}

// RequireAll succeeds only if every name is bound. It fails fast: the error
// names the first missing argument in declared order, not all of them.
func RequireAll(call string, args Args, names ...string) error {
	for _, name := range names {
		if !args.Has(name) {
			return &MissingArgumentError{Call: call, Candidates: []string{name}}
		}
	}
	return nil
}

// Exclusive fails when primary is bound and any of the excluded names is
// bound to a truthy value. It guards against nonsensical argument
// combinations, such as asking for two sharing modes at once.
func Exclusive(call string, args Args, primary string, excluded ...string) error {
	if !args.Has(primary) {
		return nil
	}
	var conflicting []string
	for _, name := range excluded {
		if args.Truthy(name) {
			conflicting = append(conflicting, name)
		}
	}
	if len(conflicting) > 0 {
		return &ConflictError{Call: call, Primary: primary, Conflicting: conflicting}
	}
	return nil
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}
