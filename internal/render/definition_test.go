package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/cli/internal/astedit"
)

func TestRenderDefinition(t *testing.T) {
	got, err := RenderDefinition(Definition{
		Ident:       "DailyTotals",
		DisplayName: "Daily Totals",
		RuntimePkg:  "flowkit",
		Entries: []astedit.AnnotationEntry{
			{Key: "events", Symbol: "RawEvents"},
			{Key: "ingest.Baseline", Symbol: "ingest.Baseline"},
		},
		PrimaryBody: `result := count(fc.Input("events"))`,
		Segments: []astedit.Segment{
			{Name: "clean up", Body: "purge()"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, got, "var DailyTotals = flowkit.Task{")
	assert.Contains(t, got, `Name: "Daily Totals",`)
	assert.Contains(t, got, `"events": RawEvents,`)
	assert.Contains(t, got, `"ingest.Baseline": ingest.Baseline,`)
	assert.Contains(t, got, "Primary: func(fc *flowkit.Call) {")

	// Segment names are sanitized; every body gets the load prefix.
	assert.Contains(t, got, `"clean_up": func(fc *flowkit.Call) {`)
	assert.Equal(t, 2, strings.Count(got, LoadInputsStmt))

	// The primary body never invoked save, so one is appended.
	assert.Contains(t, got, SaveCall)
}

func TestRenderDefinitionNoInputsNoSegments(t *testing.T) {
	got, err := RenderDefinition(Definition{
		Ident:       "Standalone",
		DisplayName: "Standalone",
		RuntimePkg:  "flowkit",
		PrimaryBody: "result := 42",
	})
	require.NoError(t, err)

	assert.NotContains(t, got, "Inputs:")
	assert.NotContains(t, got, "Segments:")
}

func TestPreparePrimary(t *testing.T) {
	t.Run("blank body is rejected", func(t *testing.T) {
		_, err := PreparePrimary("   \n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("body without result assignment is rejected", func(t *testing.T) {
		_, err := PreparePrimary("x := compute()")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "result")
	})

	t.Run("comparison does not count as assignment", func(t *testing.T) {
		_, err := PreparePrimary("if result == nil {\n}")
		require.Error(t, err)
	})

	t.Run("save call appended when missing", func(t *testing.T) {
		got, err := PreparePrimary("result := 1")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, LoadInputsStmt+"\n"))
		assert.True(t, strings.HasSuffix(got, SaveCall))
	})

	t.Run("existing save call is kept", func(t *testing.T) {
		got, err := PreparePrimary("result := 1\nfc.Save(result)")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(got, "fc.Save("))
	})

	t.Run("compound assignment counts", func(t *testing.T) {
		_, err := PreparePrimary("result += 1")
		assert.NoError(t, err)
	})

	t.Run("multi-value assignment counts", func(t *testing.T) {
		_, err := PreparePrimary("result, err := fetch()\nif err != nil {\n\tpanic(err)\n}")
		assert.NoError(t, err)
	})

	t.Run("trailing position in multi-value counts", func(t *testing.T) {
		_, err := PreparePrimary("err, result := fetch()\n_ = err")
		assert.NoError(t, err)
	})
}

func TestStripPrefix(t *testing.T) {
	body := LoadInputsStmt + "\nresult := 1\nfc.Save(result)"
	assert.Equal(t, "result := 1\nfc.Save(result)", StripPrefix(body))

	// Only a leading load statement is stripped.
	inner := "x()\n" + LoadInputsStmt + "\ny()"
	assert.Equal(t, inner, StripPrefix(inner))
}

func TestPrefixBodyStripPrefixRoundTrip(t *testing.T) {
	body := "result := 1\nfc.Save(result)"
	assert.Equal(t, body, StripPrefix(PrefixBody(body)))
}
