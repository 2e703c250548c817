package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/stagehandgo/internal/app"
	"github.com/specialistvlad/stagehandgo/internal/testutil"
)

// Test for: the run summary lists every image (sorted) and the artifacts
// in write order.
func TestCliBehavior_SummaryReport_IsDeterministic(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	var summaryPath string
	files := map[string]string{
		"main.hcl": `
image "zeta" {
  share {
    name  = "Z"
    value = "1"
  }
  generate { file = "zeta.handoff" }
}

image "alpha" {
  share {
    name  = "A"
    value = "2"
  }
  generate { file = "alpha.handoff" }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTestWithConfig(t, files, func(cfg *app.Config) {
		summaryPath = filepath.Join(cfg.OutDir, "summary.yaml")
		cfg.SummaryPath = summaryPath
	})

	// --- Assert ---
	require.NoError(t, result.Err)

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)

	var report struct {
		Images []struct {
			Name       string `yaml:"name"`
			SharedVars int    `yaml:"shared_vars"`
		} `yaml:"images"`
		Artifacts []string `yaml:"artifacts"`
	}
	require.NoError(t, yaml.Unmarshal(data, &report))

	require.Len(t, report.Images, 2)
	assert.Equal(t, "alpha", report.Images[0].Name, "images must be sorted by name")
	assert.Equal(t, "zeta", report.Images[1].Name)
	assert.Equal(t, 1, report.Images[0].SharedVars)

	require.Len(t, report.Artifacts, 2)
	assert.Equal(t, filepath.Join(result.OutDir, "zeta.handoff"), report.Artifacts[0],
		"artifacts keep write order, not name order")
	assert.Equal(t, filepath.Join(result.OutDir, "alpha.handoff"), report.Artifacts[1])
}

// Test for: a YAML vars file seeds the shared namespace before configure,
// exactly like an imported artifact would.
func TestCliBehavior_VarsFileSeed_IsQueryable(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"vars.yaml": `
git_sha: abc123
inputs:
  - a.hex
  - b.hex
`,
		"main.hcl": `
image "app" {
  get "sha" {
    image    = "shared"
    property = "git_sha"
  }
  share {
    name  = "SEEDED_SHA"
    value = sha
  }
  generate { file = "app.handoff" }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTestWithConfig(t, files, func(cfg *app.Config) {
		cfg.VarsFile = filepath.Join(cfg.BuildPath, "vars.yaml")
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertArtifact(t, result, "app.handoff", "SEEDED_SHA=abc123\n")
}

// Test for: a malformed vars file fails the run before configure starts.
func TestCliBehavior_BrokenVarsFile_FailsRun(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"vars.yaml": "nested:\n  maps: unsupported\n",
		"main.hcl":  `image "app" {}`,
	}

	result := testutil.RunIntegrationTestWithConfig(t, files, func(cfg *app.Config) {
		cfg.VarsFile = filepath.Join(cfg.BuildPath, "vars.yaml")
	})

	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "seeding variables")
}
