// Package propstore holds the per-run property registry: every value a build
// stage publishes during configure phase lives here until the generation
// phase serializes it. One Store exists per configuration run, owned by the
// orchestrator and passed by reference; it is intentionally unsynchronized
// because a run is single-threaded and phase-staged: calls mutate it in
// lexical order, and generation reads it strictly afterwards.
//
// Values are either a string scalar or an ordered list of strings. Lists
// never contain duplicates after an append. The registry is monotonic within
// a run: properties are added or overwritten, never deleted.
package propstore

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Reserved keys of the handoff mechanism.
const (
	// PropImageTargets is the reserved list property naming the sub-images
	// reachable from an image. It is serialized first in a handoff file.
	PropImageTargets = "image_targets"

	// PropSharedVars is the reserved list property holding the image's
	// re-share pool: "name=value" lines serialized after the targets block.
	PropSharedVars = "shared_vars"

	// SharedNamespace is the pseudo-image that imported handoff entries are
	// indexed under, so parents can query them per name.
	SharedNamespace = "shared"
)

// TypeMismatchError reports an append onto a property that currently holds a
// scalar. Appending across kinds is a caller bug and is rejected loudly
// rather than coerced.
type TypeMismatchError struct {
	Image    string
	Name     string
	Existing cty.Type
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %q on image %q already holds a %s scalar and cannot be appended to as a list",
		e.Name, e.Image, e.Existing.FriendlyName())
}

// Store is the process-wide property registry for one configuration run.
type Store struct {
	images map[string]map[string]cty.Value
}

// New creates an empty Store.
func New() *Store {
	return &Store{images: make(map[string]map[string]cty.Value)}
}

// Set records value under (image, name). With appendMode false the value
// replaces whatever was stored, including across kinds: replace is a full
// overwrite. With appendMode true the existing list (an empty one if the
// property is absent) has the value's items concatenated onto it and is then
// deduplicated; a scalar value contributes a single item. Appending onto an
// existing scalar fails with *TypeMismatchError.
func (s *Store) Set(image, name string, value cty.Value, appendMode bool) error {
	if image == "" {
		return fmt.Errorf("propstore: image name must not be empty")
	}
	if name == "" {
		return fmt.Errorf("propstore: property name must not be empty")
	}

	normalized, err := normalize(value)
	if err != nil {
		return fmt.Errorf("property %q on image %q: %w", name, image, err)
	}

	if !appendMode {
		s.props(image)[name] = normalized
		return nil
	}

	existing, ok := s.props(image)[name]
	var items []string
	if ok {
		if existing.Type() == cty.String {
			return &TypeMismatchError{Image: image, Name: name, Existing: existing.Type()}
		}
		items = listItems(existing)
	}
	items = dedup(append(items, listItems(normalized)...))
	s.props(image)[name] = listVal(items)
	return nil
}

// Get returns the current value of (image, name). ok is false when the image
// has no registry entries or the property was never set; absence is not an
// error here, the consumer layer decides how to treat it.
func (s *Store) Get(image, name string) (cty.Value, bool) {
	props, ok := s.images[image]
	if !ok {
		return cty.NilVal, false
	}
	v, ok := props[name]
	return v, ok
}

// AppendSharedVar records one "name=value" line into the image's re-share
// pool. Duplicate lines collapse.
func (s *Store) AppendSharedVar(image, line string) error {
	return s.Set(image, PropSharedVars, cty.StringVal(line), true)
}

// AddImageTarget records a sub-image name reachable from image. Duplicates
// collapse.
func (s *Store) AddImageTarget(image, target string) error {
	return s.Set(image, PropImageTargets, cty.StringVal(target), true)
}

// Snapshot returns the generation-time view of the two reserved lists for
// image. An image that never received properties yields empty slices; that
// is a valid, empty artifact rather than an error.
func (s *Store) Snapshot(image string) (targets, vars []string) {
	if v, ok := s.Get(image, PropImageTargets); ok {
		targets = listItems(v)
	}
	if v, ok := s.Get(image, PropSharedVars); ok {
		vars = listItems(v)
	}
	return targets, vars
}

// Images returns the names of all images with registry entries, sorted.
func (s *Store) Images() []string {
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) props(image string) map[string]cty.Value {
	props, ok := s.images[image]
	if !ok {
		props = make(map[string]cty.Value)
		s.images[image] = props
	}
	return props
}

// normalize coerces a value into the registry's two shapes: cty.String or
// cty.List(cty.String). Anything else (objects, maps, null, lists carrying
// null elements) is rejected. Conversion keeps null elements inside
// collections, so they are checked explicitly.
func normalize(value cty.Value) (cty.Value, error) {
	if value.IsNull() {
		return cty.NilVal, fmt.Errorf("null value is not storable")
	}
	if value.Type() == cty.String {
		return value, nil
	}
	if converted, err := convert.Convert(value, cty.List(cty.String)); err == nil {
		for i, item := range converted.AsValueSlice() {
			if item.IsNull() {
				return cty.NilVal, fmt.Errorf("list element %d is null; elements must be strings", i)
			}
		}
		return converted, nil
	}
	if converted, err := convert.Convert(value, cty.String); err == nil {
		return converted, nil
	}
	return cty.NilVal, fmt.Errorf("value of type %s is not a string or list of strings", value.Type().FriendlyName())
}

// listItems flattens a stored value into lines. Scalars contribute a single
// line so that reserved properties survive being overwritten with a scalar.
func listItems(v cty.Value) []string {
	if v.Type() == cty.String {
		return []string{v.AsString()}
	}
	items := make([]string, 0, v.LengthInt())
	for _, item := range v.AsValueSlice() {
		items = append(items, item.AsString())
	}
	return items
}

func listVal(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}

// dedup removes duplicates keeping the first occurrence's position.
func dedup(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
