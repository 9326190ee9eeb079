package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/cli/internal/astedit"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Store {
	t.Helper()
	store := workspace.New(t.TempDir(), "flows", "github.com/flowforge/cli/pkg/flowkit", "")

	seed := func(module, task string) {
		doc, err := store.LoadOrCreate(module)
		require.NoError(t, err)
		require.NoError(t, doc.InsertDecl(`var `+task+` = flowkit.Task{
	Name: "`+task+`",
	Primary: func(fc *flowkit.Call) {
		fc.LoadInputs()
		result := 1
		fc.Save(result)
	},
}`))
		require.NoError(t, store.Save(doc))
	}

	seed("tasks", "RawEvents")
	seed("tasks", "Baseline")
	seed("ingest", "Loader")

	return store
}

func TestResolveSameModule(t *testing.T) {
	r := New(newTestWorkspace(t))

	res, err := r.Resolve([]InputRef{{Task: "RawEvents"}}, "tasks")
	require.NoError(t, err)

	assert.Equal(t, []astedit.AnnotationEntry{
		{Key: "RawEvents", Symbol: "RawEvents"},
	}, res.Entries)
	assert.Empty(t, res.Imports)
}

func TestResolveExplicitModuleSameAsCurrent(t *testing.T) {
	r := New(newTestWorkspace(t))

	// An explicit module always qualifies the key, but the symbol stays
	// bare because nothing crosses module boundaries.
	res, err := r.Resolve([]InputRef{{Module: "tasks", Task: "RawEvents"}}, "tasks")
	require.NoError(t, err)

	assert.Equal(t, []astedit.AnnotationEntry{
		{Key: "tasks.RawEvents", Symbol: "RawEvents"},
	}, res.Entries)
	assert.Empty(t, res.Imports)
}

func TestResolveCrossModule(t *testing.T) {
	r := New(newTestWorkspace(t))

	res, err := r.Resolve([]InputRef{
		{Module: "ingest", Task: "Loader"},
		{Module: "ingest", Task: "Loader"},
		{Task: "Baseline"},
	}, "tasks")
	require.NoError(t, err)

	assert.Equal(t, []astedit.AnnotationEntry{
		{Key: "ingest.Loader", Symbol: "ingest.Loader"},
		{Key: "ingest.Loader", Symbol: "ingest.Loader"},
		{Key: "Baseline", Symbol: "Baseline"},
	}, res.Entries)

	// One import per distinct foreign module.
	assert.Equal(t, []string{`"flows/ingest"`}, res.Imports)
}

func TestResolveMissingTask(t *testing.T) {
	r := New(newTestWorkspace(t))

	_, err := r.Resolve([]InputRef{{Task: "Missing"}}, "tasks")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = r.Resolve([]InputRef{{Module: "nope", Task: "RawEvents"}}, "tasks")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestResolveEmptyTaskName(t *testing.T) {
	r := New(newTestWorkspace(t))

	_, err := r.Resolve([]InputRef{{Module: "tasks"}}, "tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a task name")
}
