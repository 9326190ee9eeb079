package flowkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetAll(tasks ...Task) {
	for _, t := range tasks {
		Reset(t)
	}
}

func TestRunCachesResults(t *testing.T) {
	runs := 0
	task := Task{
		Name: "counter",
		Primary: func(fc *Call) {
			fc.LoadInputs()
			runs++
			fc.Save(runs)
		},
	}
	defer resetAll(task)

	Run(task, nil)
	Run(task, nil)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, LoadOutput(task))

	Reset(task)
	Run(task, nil)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, LoadOutput(task))
}

func TestRunResolvesUpstreamInputs(t *testing.T) {
	upstream := Task{
		Name: "upstream",
		Primary: func(fc *Call) {
			fc.LoadInputs()
			fc.Save(21)
		},
	}
	var got any
	downstream := Task{
		Name:   "downstream",
		Inputs: Inputs{"base": upstream},
		Primary: func(fc *Call) {
			fc.LoadInputs()
			got = fc.Input("base")
			fc.Save(got.(int) * 2)
		},
	}
	defer resetAll(upstream, downstream)

	Run(downstream, nil)

	assert.Equal(t, 21, got)
	assert.Equal(t, 42, LoadOutput(downstream))
	assert.Equal(t, 21, LoadOutput(upstream))
}

func TestRunParams(t *testing.T) {
	var day string
	task := Task{
		Name: "paramreader",
		Primary: func(fc *Call) {
			fc.LoadInputs()
			day = fc.Param("day")
			fc.Save(day)
		},
	}
	defer resetAll(task)

	Run(task, Params{"day": "2026-08-28"})
	assert.Equal(t, "2026-08-28", day)
}

func TestRunSegment(t *testing.T) {
	ran := false
	task := Task{
		Name: "segmented",
		Primary: func(fc *Call) {
			fc.LoadInputs()
			fc.Save(1)
		},
		Segments: Segments{
			"cleanup": func(fc *Call) {
				fc.LoadInputs()
				ran = true
			},
		},
	}
	defer resetAll(task)

	require.NoError(t, RunSegment(task, "cleanup", nil))
	assert.True(t, ran)

	err := RunSegment(task, "missing", nil)
	assert.Error(t, err)
}

func TestBodyWithoutSaveProducesNoOutput(t *testing.T) {
	task := Task{
		Name: "silent",
		Primary: func(fc *Call) {
			fc.LoadInputs()
		},
	}
	defer resetAll(task)

	Run(task, nil)
	assert.Nil(t, LoadOutput(task))
}

func TestPlanDeduplicates(t *testing.T) {
	shared := Task{Name: "shared", Primary: func(fc *Call) { fc.Save(1) }}
	left := Task{Name: "left", Inputs: Inputs{"s": shared}, Primary: func(fc *Call) { fc.Save(2) }}
	right := Task{Name: "right", Inputs: Inputs{"s": shared}, Primary: func(fc *Call) { fc.Save(3) }}
	top := Task{Name: "top", Inputs: Inputs{"l": left, "r": right}, Primary: func(fc *Call) { fc.Save(4) }}

	steps := plan(top, nil)
	assert.Equal(t, []string{"shared", "left", "right", "top"}, steps)
}

func TestModule(t *testing.T) {
	assert.Equal(t, "tasks", Module("tasks"))
}
