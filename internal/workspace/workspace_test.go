package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/cli/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), "flows", "github.com/flowforge/cli/pkg/flowkit", "")
}

func TestArtifactPath(t *testing.T) {
	s := New("/ws", "flows", "example.com/runtime", "")
	assert.Equal(t, filepath.Join("/ws", "analytics", "analytics.go"), s.ArtifactPath("analytics"))
	assert.Equal(t, "flows/analytics", s.ModuleImportPath("analytics"))
}

func TestModuleOrDefault(t *testing.T) {
	assert.Equal(t, DefaultModule, ModuleOrDefault(""))
	assert.Equal(t, "analytics", ModuleOrDefault("analytics"))
}

func TestBaseImports(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, []string{
		`flowkit "github.com/flowforge/cli/pkg/flowkit"`,
		`_ "github.com/flowforge/cli/pkg/flowkit/frame"`,
	}, s.BaseImports())
}

func TestLoadMissingModule(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load("nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadOrCreateMaterializesModule(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.LoadOrCreate("analytics")
	require.NoError(t, err)
	assert.Empty(t, doc.Tasks())

	// The empty artifact carries the base imports and the module marker.
	src, err := os.ReadFile(s.ArtifactPath("analytics"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package analytics")
	assert.Contains(t, string(src), `flowkit "github.com/flowforge/cli/pkg/flowkit"`)
	assert.Contains(t, string(src), `_ "github.com/flowforge/cli/pkg/flowkit/frame"`)
	assert.Contains(t, string(src), `var _ = flowkit.Module("analytics")`)

	// The workspace marker is written alongside.
	marker, err := os.ReadFile(filepath.Join(s.Base, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(marker), "module flows")
	assert.Contains(t, string(marker), "require github.com/flowforge/cli v0.0.0")
	assert.NotContains(t, string(marker), "replace")
}

func TestEnsureMarkerWithReplace(t *testing.T) {
	s := New(t.TempDir(), "flows", "github.com/flowforge/cli/pkg/flowkit", "/opt/runtime")

	require.NoError(t, s.EnsureMarker())

	marker, err := os.ReadFile(filepath.Join(s.Base, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(marker), "replace github.com/flowforge/cli => /opt/runtime")
}

func TestEnsureMarkerKeepsExisting(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, os.MkdirAll(s.Base, 0o755))
	custom := []byte("module custom\n")
	markerPath := filepath.Join(s.Base, "go.mod")
	require.NoError(t, os.WriteFile(markerPath, custom, 0o644))

	require.NoError(t, s.EnsureMarker())

	got, err := os.ReadFile(markerPath)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestSaveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.LoadOrCreate("tasks")
	require.NoError(t, err)

	require.NoError(t, doc.InsertDecl(`var Totals = flowkit.Task{
	Name: "Totals",
	Primary: func(fc *flowkit.Call) {
		fc.LoadInputs()
		result := 1
		fc.Save(result)
	},
}`))
	require.NoError(t, s.Save(doc))

	again, err := s.Load("tasks")
	require.NoError(t, err)
	assert.Equal(t, []string{"Totals"}, again.Tasks())

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(s.Base, "tasks"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestModules(t *testing.T) {
	s := newTestStore(t)

	modules, err := s.Modules()
	require.NoError(t, err)
	assert.Empty(t, modules)

	_, err = s.LoadOrCreate("ingest")
	require.NoError(t, err)
	_, err = s.LoadOrCreate("analytics")
	require.NoError(t, err)

	// A stray directory without an artifact is not a module.
	require.NoError(t, os.MkdirAll(filepath.Join(s.Base, "scratch"), 0o755))

	modules, err = s.Modules()
	require.NoError(t, err)
	assert.Equal(t, []string{"analytics", "ingest"}, modules)
}

func TestRuntimePackage(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "flowkit", s.RuntimePackage())
}
