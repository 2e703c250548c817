package app

import (
	"fmt"
	"os"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

// seedVarsFile reads a flat YAML mapping of variable names to strings or
// string lists and publishes every entry into the shared namespace, exactly
// as if a prior stage had handed the values off.
func (a *App) seedVarsFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parsing YAML: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := seedValue(raw[name])
		if err != nil {
			return 0, fmt.Errorf("variable %q: %w", name, err)
		}
		if err := a.store.Set(propstore.SharedNamespace, name, value, false); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}

// seedValue maps a decoded YAML value onto the registry's two shapes.
// Scalars become strings; sequences become string lists. Nested mappings
// have no flat-text equivalent and are rejected.
func seedValue(v any) (cty.Value, error) {
	switch val := v.(type) {
	case string:
		return cty.StringVal(val), nil
	case bool, int, int64, float64:
		return cty.StringVal(fmt.Sprintf("%v", val)), nil
	case []any:
		items := make([]cty.Value, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return cty.NilVal, fmt.Errorf("list items must be strings, got %T", item)
			}
			items = append(items, cty.StringVal(s))
		}
		if len(items) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		return cty.ListVal(items), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}
