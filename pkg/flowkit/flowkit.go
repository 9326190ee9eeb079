// Package flowkit is the runtime linked into generated flow code: task
// declaration types, the per-call context, and the execute/preview
// entrypoints used by standalone flow scripts.
package flowkit

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Task is one declared computation task. Generated artifacts declare
// tasks as package-level vars of this type.
type Task struct {
	// Name is the human-readable task name.
	Name string

	// Inputs maps annotation keys to upstream tasks.
	Inputs Inputs

	// Primary is the task's main body.
	Primary func(fc *Call)

	// Segments are additional named bodies.
	Segments Segments
}

// Inputs maps dependency annotation keys to upstream tasks.
type Inputs map[string]Task

// Segments maps segment names to their bodies.
type Segments map[string]func(fc *Call)

// Params is the string parameter mapping passed to a flow run.
type Params map[string]string

// Module records the module a generated artifact belongs to. Artifacts
// reference it from a package-level var so the runtime import is always
// used.
func Module(name string) string {
	return name
}

// outputs caches task results for the lifetime of one flow process.
var (
	outputsMu sync.Mutex
	outputs   = map[string]any{}
)

// Call is the context handed to every segment body.
type Call struct {
	task   Task
	params Params
	inputs map[string]any
	saved  any
	done   bool
}

// LoadInputs materializes the task's upstream outputs. It runs as the
// first statement of every generated segment body.
func (fc *Call) LoadInputs() {
	if fc.inputs != nil {
		return
	}
	fc.inputs = make(map[string]any, len(fc.task.Inputs))
	for key, upstream := range fc.task.Inputs {
		fc.inputs[key] = LoadOutput(upstream)
	}
}

// Input returns one upstream output by annotation key.
func (fc *Call) Input(key string) any {
	return fc.inputs[key]
}

// Param returns one flow parameter; missing keys yield the empty
// string.
func (fc *Call) Param(key string) string {
	return fc.params[key]
}

// Save records the task result. The last save before the body returns
// wins.
func (fc *Call) Save(v any) {
	fc.saved = v
	fc.done = true
}

// Run executes a task: upstream tasks first, depth first and cached,
// then the task's primary body. Already-cached tasks are not rerun.
func Run(t Task, params Params) {
	outputsMu.Lock()
	_, cached := outputs[t.Name]
	outputsMu.Unlock()
	if cached {
		return
	}

	for _, upstream := range sortedInputs(t.Inputs) {
		Run(upstream, params)
	}

	execute(t, t.Primary, params)
}

// RunSegment executes one named segment body of a task instead of its
// primary body. Upstream tasks run first, exactly as in Run.
func RunSegment(t Task, segment string, params Params) error {
	body, ok := t.Segments[segment]
	if !ok {
		return fmt.Errorf("task %q has no segment %q", t.Name, segment)
	}
	for _, upstream := range sortedInputs(t.Inputs) {
		Run(upstream, params)
	}
	execute(t, body, params)
	return nil
}

// Preview prints the execution plan for a task without running
// anything.
func Preview(t Task, params Params) {
	fmt.Fprintf(os.Stdout, "flow plan for %q\n", t.Name)
	for i, step := range plan(t, nil) {
		fmt.Fprintf(os.Stdout, "  %d. %s\n", i+1, step)
	}
	if len(params) > 0 {
		fmt.Fprintln(os.Stdout, "params:")
		for _, key := range sortedKeys(params) {
			fmt.Fprintf(os.Stdout, "  %s=%s\n", key, params[key])
		}
	}
}

// Reset clears a task's cached output so the next run recomputes it.
func Reset(t Task) {
	outputsMu.Lock()
	delete(outputs, t.Name)
	outputsMu.Unlock()
}

// LoadOutput returns a task's cached output, or nil when the task has
// not produced one.
func LoadOutput(t Task) any {
	outputsMu.Lock()
	defer outputsMu.Unlock()
	return outputs[t.Name]
}

// Dump prints a value for human inspection. Registered dumpers (see the
// frame package) take precedence over the default rendering.
func Dump(v any) {
	for _, d := range dumpers {
		if d(os.Stdout, v) {
			return
		}
	}
	fmt.Fprintf(os.Stdout, "%v\n", v)
}

// Dumper renders values it recognizes and reports whether it did.
type Dumper func(w *os.File, v any) bool

var dumpers []Dumper

// RegisterDumper installs a Dumper consulted by Dump, newest first.
func RegisterDumper(d Dumper) {
	dumpers = append([]Dumper{d}, dumpers...)
}

// execute runs one body against a fresh Call and caches its saved
// result.
func execute(t Task, body func(fc *Call), params Params) {
	if body == nil {
		return
	}
	fc := &Call{task: t, params: params}
	body(fc)
	if fc.done {
		outputsMu.Lock()
		outputs[t.Name] = fc.saved
		outputsMu.Unlock()
	}
}

// plan appends the depth-first step list for a task, deduplicated.
func plan(t Task, steps []string) []string {
	for _, upstream := range sortedInputs(t.Inputs) {
		steps = plan(upstream, steps)
	}
	for _, s := range steps {
		if s == t.Name {
			return steps
		}
	}
	return append(steps, t.Name)
}

// sortedInputs returns upstream tasks in stable key order.
func sortedInputs(inputs Inputs) []Task {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tasks := make([]Task, 0, len(keys))
	for _, k := range keys {
		tasks = append(tasks, inputs[k])
	}
	return tasks
}

func sortedKeys(params Params) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
