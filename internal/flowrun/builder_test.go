package flowrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/identity"
	"github.com/flowforge/cli/internal/render"
	"github.com/flowforge/cli/internal/workspace"
)

func newTestBuilder(t *testing.T) *Builder {
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

	seed("tasks", "Totals")
	seed("tasks", "RawEvents")

	return NewBuilder(store, identity.LenientPolicy{})
}

func TestBuild(t *testing.T) {
	b := newTestBuilder(t)

	script, err := b.Build(BuildOptions{
		Task:        "Totals",
		Params:      []render.Param{{Key: "day", Value: "2026-08-28"}},
		Resets:      []string{"RawEvents"},
		ResetTarget: true,
		Action:      render.ActionRun,
		LoadOutput:  true,
	})
	require.NoError(t, err)

	assert.Contains(t, script, "package main")
	assert.Contains(t, script, `flowkit "github.com/flowforge/cli/pkg/flowkit"`)
	assert.Contains(t, script, `"flows/tasks"`)
	assert.Contains(t, script, "flowkit.Reset(tasks.RawEvents)")
	assert.Contains(t, script, "flowkit.Reset(tasks.Totals)")
	assert.Contains(t, script, "flowkit.Run(tasks.Totals, params)")
	assert.Contains(t, script, "flowkit.Dump(out)")
}

func TestBuildNormalizesNames(t *testing.T) {
	b := newTestBuilder(t)

	// Lenient naming maps the display form to the stored identifier.
	script, err := b.Build(BuildOptions{
		Task:   "raw events",
		Action: render.ActionPreview,
	})
	require.NoError(t, err)
	assert.Contains(t, script, "flowkit.Preview(tasks.RawEvents, params)")
}

func TestBuildUnknownResetIsSkipped(t *testing.T) {
	b := newTestBuilder(t)

	script, err := b.Build(BuildOptions{
		Task:   "Totals",
		Resets: []string{"Missing", "RawEvents"},
		Action: render.ActionRun,
	})
	require.NoError(t, err)

	assert.Contains(t, script, "flowkit.Reset(tasks.RawEvents)")
	assert.NotContains(t, script, "Missing")
}

func TestBuildMissingTask(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.Build(BuildOptions{Task: "Nope", Action: render.ActionRun})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestBuildInvalidAction(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.Build(BuildOptions{Task: "Totals", Action: render.Action("compile")})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestBuildLoadOutputOnlyAfterRun(t *testing.T) {
	b := newTestBuilder(t)

	script, err := b.Build(BuildOptions{
		Task:       "Totals",
		Action:     render.ActionPreview,
		LoadOutput: true,
	})
	require.NoError(t, err)
	assert.NotContains(t, script, "flowkit.LoadOutput(")
}
