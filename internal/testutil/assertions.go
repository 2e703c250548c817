package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertArtifact reads a handoff file under the run's out directory and
// checks its exact content. Artifact bytes are the system's contract, so
// integration tests compare them verbatim.
func AssertArtifact(t *testing.T, result *HarnessResult, relPath, want string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(result.OutDir, relPath))
	require.NoError(t, err, "expected artifact %s was not written", relPath)
	require.Equal(t, want, string(data), "artifact %s content mismatch", relPath)
}

// AssertImageConfigured checks the log output within a HarnessResult to
// confirm that a specific image completed its configure walk. It leans on
// the structured log attributes rather than message phrasing where it can.
func AssertImageConfigured(t *testing.T, result *HarnessResult, image string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("image=%s", image)
	require.True(t,
		strings.Contains(result.LogOutput, expectedLogSubstring),
		"expected log output for image %q was not found in logs", image,
	)
}
