package argcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestRequireAny(t *testing.T) {
	t.Parallel()

	t.Run("neither alternative bound fails naming both", func(t *testing.T) {
		args := Args{}

		err := RequireAny("share", args, "name", "file")

		require.Error(t, err)
		var missing *MissingArgumentError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "share", missing.Call)
		assert.Equal(t, []string{"name", "file"}, missing.Candidates)
		assert.Contains(t, err.Error(), `"name"`)
		assert.Contains(t, err.Error(), `"file"`)
	})

	t.Run("one alternative bound succeeds", func(t *testing.T) {
		args := Args{"file": cty.StringVal("handoff.txt")}
		assert.NoError(t, RequireAny("share", args, "name", "file"))
	})

	t.Run("null value counts as unbound", func(t *testing.T) {
		args := Args{"name": cty.NullVal(cty.String)}
		assert.Error(t, RequireAny("share", args, "name", "file"))
	})
}

func TestRequireAll_FailsFastInDeclaredOrder(t *testing.T) {
	t.Parallel()

	args := Args{"a": cty.StringVal("set")}

	err := RequireAll("generate", args, "a", "b", "c")

	require.Error(t, err)
	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	// The first missing name in declared order, and only that one.
	assert.Equal(t, []string{"b"}, missing.Candidates)
	assert.Contains(t, err.Error(), `required argument "b"`)
	assert.NotContains(t, err.Error(), `"c"`)
}

func TestRequireAll_AllBoundSucceeds(t *testing.T) {
	t.Parallel()

	args := Args{
		"image":    cty.StringVal("radio"),
		"property": cty.StringVal("RAM_SIZE"),
	}
	assert.NoError(t, RequireAll("get", args, "image", "property"))
}

func TestExclusive(t *testing.T) {
	t.Parallel()

	t.Run("primary alone is fine", func(t *testing.T) {
		args := Args{"file": cty.StringVal("handoff.txt")}
		assert.NoError(t, Exclusive("share", args, "file", "name", "value"))
	})

	t.Run("primary plus truthy excluded fails", func(t *testing.T) {
		args := Args{
			"file": cty.StringVal("handoff.txt"),
			"name": cty.StringVal("RAM_SIZE"),
		}

		err := Exclusive("share", args, "file", "name", "value")

		require.Error(t, err)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "file", conflict.Primary)
		assert.Equal(t, []string{"name"}, conflict.Conflicting)
	})

	t.Run("falsy excluded values do not conflict", func(t *testing.T) {
		args := Args{
			"file":   cty.StringVal("handoff.txt"),
			"name":   cty.StringVal(""),
			"append": cty.False,
		}
		assert.NoError(t, Exclusive("share", args, "file", "name", "append"))
	})

	t.Run("unbound primary never conflicts", func(t *testing.T) {
		args := Args{"name": cty.StringVal("RAM_SIZE"), "value": cty.StringVal("0x1000")}
		assert.NoError(t, Exclusive("share", args, "file", "name", "value"))
	})
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	args := Args{
		"empty_string": cty.StringVal(""),
		"string":       cty.StringVal("x"),
		"false":        cty.False,
		"true":         cty.True,
		"zero":         cty.Zero,
		"number":       cty.NumberIntVal(3),
		"empty_list":   cty.ListValEmpty(cty.String),
		"list":         cty.ListVal([]cty.Value{cty.StringVal("a")}),
		"null":         cty.NullVal(cty.String),
	}

	assert.False(t, args.Truthy("missing"))
	assert.False(t, args.Truthy("empty_string"))
	assert.True(t, args.Truthy("string"))
	assert.False(t, args.Truthy("false"))
	assert.True(t, args.Truthy("true"))
	assert.False(t, args.Truthy("zero"))
	assert.True(t, args.Truthy("number"))
	assert.False(t, args.Truthy("empty_list"))
	assert.True(t, args.Truthy("list"))
	assert.False(t, args.Truthy("null"))
}

// Guards only look for the names they are given; extra bound arguments are
// ignored rather than rejected.
func TestUnknownArgumentsAreIgnored(t *testing.T) {
	t.Parallel()

	args := Args{
		"name":        cty.StringVal("RAM_SIZE"),
		"value":       cty.StringVal("0x1000"),
		"mystery":     cty.StringVal("ignored"),
		"yet_another": cty.True,
	}

	assert.NoError(t, RequireAll("share", args, "name", "value"))
	assert.NoError(t, RequireAny("share", args, "name", "file"))
	assert.NoError(t, Exclusive("share", args, "file", "name", "value"))
}
