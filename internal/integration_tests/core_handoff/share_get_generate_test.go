package integration_tests

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stagehandgo/internal/testutil"
)

// Test for: a child stage publishes properties, a dependent stage queries
// them, and both artifacts come out bit-exact.
func TestCoreHandoff_ShareGetGenerate_WritesArtifacts(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
image "radio" {
  share {
    name  = "RADIO_FW"
    value = "radio/zephyr.hex"
  }
  share {
    name  = "RAM_SIZE"
    value = "0x10000"
  }
  generate { file = "radio.handoff" }
}

image "app" {
  depends_on = ["radio"]
  get "radio_fw" {
    image    = "radio"
    property = "RADIO_FW"
  }
  share {
    name  = "APP_USES_FW"
    value = radio_fw
  }
  generate { file = "app.handoff" }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)

	testutil.AssertImageConfigured(t, result, "radio")
	testutil.AssertImageConfigured(t, result, "app")

	testutil.AssertArtifact(t, result, "radio.handoff",
		"RADIO_FW=radio/zephyr.hex\nRAM_SIZE=0x10000\n")
	testutil.AssertArtifact(t, result, "app.handoff",
		"radio\nAPP_USES_FW=radio/zephyr.hex\n")

	require.NotNil(t, result.App)
	assert.Equal(t,
		[]string{
			filepath.Join(result.OutDir, "radio.handoff"),
			filepath.Join(result.OutDir, "app.handoff"),
		},
		result.App.Artifacts(),
		"artifacts are reported in write order, child stage first")

	fw, ok := result.App.Store().Get("radio", "RADIO_FW")
	require.True(t, ok, "a shared property stays queryable after the run")
	assert.Equal(t, "radio/zephyr.hex", fw.AsString())
}

// Test for: querying an image nobody ever declared leaves the variable
// unbound without failing the run.
func TestCoreHandoff_GetFromUnknownImage_StaysSilent(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
image "app" {
  get "ghost" {
    image    = "never-declared"
    property = "ANYTHING"
  }
  share {
    name  = "ALIVE"
    value = "yes"
  }
  generate { file = "app.handoff" }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err, "an unknown image on get is not an error")
	testutil.AssertArtifact(t, result, "app.handoff", "ALIVE=yes\n")
}

// Test for: a generate call earlier in the block still sees properties
// shared after it, because serialization happens after configure.
func TestCoreHandoff_GenerateBeforeShare_SeesLaterProperties(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
image "app" {
  generate { file = "app.handoff" }
  share {
    name  = "SET_AFTER_GENERATE"
    value = "still-included"
  }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertArtifact(t, result, "app.handoff", "SET_AFTER_GENERATE=still-included\n")
}

// Test for: an image with no properties still produces its artifact, as an
// empty file.
func TestCoreHandoff_EmptyImage_WritesZeroByteArtifact(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"main.hcl": `
image "bare" {
  generate { file = "bare.handoff" }
}
`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.NoError(t, result.Err)
	testutil.AssertArtifact(t, result, "bare.handoff", "")
}

// Test for: the standalone generate form aggregates another image's
// properties into a second artifact.
func TestCoreHandoff_StandaloneGenerate_WritesAggregate(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"main.hcl": `
image "app" {
  share {
    name  = "GIT_SHA"
    value = "abc123"
  }
  generate { file = "app.handoff" }
}

generate {
  image = "app"
  file  = "aggregate/app.handoff"
}
`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.NoError(t, result.Err)
	testutil.AssertArtifact(t, result, "app.handoff", "GIT_SHA=abc123\n")
	testutil.AssertArtifact(t, result, "aggregate/app.handoff", "GIT_SHA=abc123\n")
}
