package taskspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/resolve"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSpec(t, `module: analytics
task: Daily Totals
primary: |
  result := count(fc.Input("events"))
segments:
  - name: cleanup
    body: purge()
inputs:
  - task: RawEvents
  - module: ingest
    task: Loader
imports:
  - '"time"'
`)

	spec, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "analytics", spec.Module)
	assert.Equal(t, "Daily Totals", spec.Task)
	assert.Contains(t, spec.Primary, "result := count")
	require.Len(t, spec.Segments, 1)
	assert.Equal(t, SegmentSpec{Name: "cleanup", Body: "purge()"}, spec.Segments[0])
	assert.Equal(t, []resolve.InputRef{
		{Task: "RawEvents"},
		{Module: "ingest", Task: "Loader"},
	}, spec.Inputs)
	assert.Equal(t, []string{`"time"`}, spec.Imports)
}

func TestLoadMinimal(t *testing.T) {
	path := writeSpec(t, `task: Totals
primary: "result := 1"
`)

	spec, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, spec.Module)
	assert.Empty(t, spec.Segments)
	assert.Empty(t, spec.Inputs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing task",
			content: "primary: \"result := 1\"\n",
		},
		{
			name:    "missing primary",
			content: "task: Totals\n",
		},
		{
			name: "segment without body",
			content: `task: Totals
primary: "result := 1"
segments:
  - name: cleanup
`,
		},
		{
			name: "input without task",
			content: `task: Totals
primary: "result := 1"
inputs:
  - module: ingest
`,
		},
		{
			name: "empty task name",
			content: `task: ""
primary: "result := 1"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSpec(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeSpec(t, `task: Totals
primary: "result := 1"
bogus: true
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	spec := &Spec{
		Module:  "analytics",
		Task:    "Totals",
		Primary: "result := 1",
		Inputs:  []resolve.InputRef{{Task: "RawEvents"}},
	}

	data, err := spec.Marshal()
	require.NoError(t, err)

	again, err := Load(writeSpec(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, spec, again)
}
