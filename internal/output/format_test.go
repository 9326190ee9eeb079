package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
	}{
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"YAML", FormatYAML},
		{"json", FormatJSON},
		{"table", FormatTable},
		{"text", FormatText},
		{"source", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutputFormat(tt.in))
		})
	}
}

func TestOutputFormatIsValid(t *testing.T) {
	assert.True(t, FormatYAML.IsValid())
	assert.True(t, FormatText.IsValid())
	assert.False(t, OutputFormat("csv").IsValid())
}

func TestMarshal(t *testing.T) {
	v := map[string]string{"module": "tasks"}

	data, err := Marshal(v, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"module": "tasks"`)

	data, err = Marshal(v, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "module: tasks")

	_, err = Marshal(v, FormatTable)
	assert.Error(t, err)
}

func TestStatusStyleCoversAllStatuses(t *testing.T) {
	for _, status := range []string{
		StatusCreated, StatusUpdated, StatusUnchanged,
		StatusDeleted, StatusRenamed, StatusFailed,
	} {
		// Rendering must not panic and must keep the text.
		assert.Contains(t, StatusStyle(status).Render(status), status)
	}
}
