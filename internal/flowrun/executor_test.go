package flowrun

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/cli/internal/errors"
)

func TestExecuteLaunchFailureIsStructured(t *testing.T) {
	// A workspace that does not exist makes the temp script unwritable,
	// so the run fails before any subprocess is spawned.
	x := NewExecutor(filepath.Join(t.TempDir(), "missing"))

	result, err := x.Execute(context.Background(), "package main\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrExecution)

	require.NotNil(t, result)
	assert.Equal(t, -1, result.ExitCode)
	assert.False(t, result.TimedOut)
}

func TestExecutorDefaultTimeout(t *testing.T) {
	x := NewExecutor(t.TempDir())
	assert.Equal(t, DefaultTimeout, x.Timeout)
}
