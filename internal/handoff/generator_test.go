package handoff

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stagehandgo/internal/propstore"
)

func TestFlushWritesDeferredArtifacts(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	store := propstore.New()
	require.NoError(t, store.AddImageTarget("app", "app.runtime"))
	require.NoError(t, store.AppendSharedVar("app", "GIT_SHA=abc123"))
	require.NoError(t, store.AppendSharedVar("base", "OS_RELEASE=bookworm"))

	dir := t.TempDir()
	appPath := filepath.Join(dir, "nested", "app.handoff")
	basePath := filepath.Join(dir, "base.handoff")

	gen := NewGenerator()
	gen.Defer("app", appPath)
	gen.Defer("base", basePath)
	require.Equal(t, 2, gen.Pending())

	// --- Act ---
	err := gen.Flush(context.Background(), store)

	// --- Assert ---
	require.NoError(t, err)

	appData, readErr := os.ReadFile(appPath)
	require.NoError(t, readErr, "Flush must create missing parent directories")
	assert.Equal(t, "app.runtime\nGIT_SHA=abc123\n", string(appData))

	baseData, readErr := os.ReadFile(basePath)
	require.NoError(t, readErr)
	assert.Equal(t, "OS_RELEASE=bookworm\n", string(baseData))
}

func TestFlushSeesWritesAfterDefer(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	store := propstore.New()
	path := filepath.Join(t.TempDir(), "app.handoff")
	gen := NewGenerator()

	// The artifact is requested before the property exists; the write phase
	// must still pick it up.
	gen.Defer("app", path)
	require.NoError(t, store.AppendSharedVar("app", "LATE_VAR=set-after-defer"))

	// --- Act ---
	require.NoError(t, gen.Flush(context.Background(), store))

	// --- Assert ---
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "LATE_VAR=set-after-defer\n", string(data))
}

func TestFlushEmptyImageWritesZeroByteFile(t *testing.T) {
	t.Parallel()
	store := propstore.New()
	path := filepath.Join(t.TempDir(), "ghost.handoff")
	gen := NewGenerator()
	gen.Defer("ghost", path)

	require.NoError(t, gen.Flush(context.Background(), store))

	info, err := os.Stat(path)
	require.NoError(t, err, "an image without properties still yields an artifact")
	assert.Zero(t, info.Size())
}

func TestFlushSamePathLastRequestWins(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	store := propstore.New()
	require.NoError(t, store.AppendSharedVar("first", "ORIGIN=first"))
	require.NoError(t, store.AppendSharedVar("second", "ORIGIN=second"))

	path := filepath.Join(t.TempDir(), "shared.handoff")
	gen := NewGenerator()
	gen.Defer("first", path)
	gen.Defer("second", path)

	// --- Act ---
	require.NoError(t, gen.Flush(context.Background(), store))

	// --- Assert ---
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ORIGIN=second\n", string(data))
	assert.Equal(t, []string{path}, gen.Artifacts(),
		"a path written twice is still one artifact")
}

func TestFlushIsOneShot(t *testing.T) {
	t.Parallel()
	store := propstore.New()
	path := filepath.Join(t.TempDir(), "app.handoff")
	gen := NewGenerator()
	gen.Defer("app", path)

	require.NoError(t, gen.Flush(context.Background(), store))
	assert.Equal(t, []string{path}, gen.Artifacts())

	assert.Error(t, gen.Flush(context.Background(), store))
}
