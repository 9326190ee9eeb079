package render

import (
	"strings"
	"text/template"
)

// Action is the terminal instruction of a flow script.
type Action string

const (
	// ActionPreview renders the execution plan without running anything.
	ActionPreview Action = "preview"

	// ActionRun executes the target task.
	ActionRun Action = "run"
)

// IsValid reports whether the action is known.
func (a Action) IsValid() bool {
	return a == ActionPreview || a == ActionRun
}

// IsPreview reports whether the action is a preview.
func (a Action) IsPreview() bool {
	return a == ActionPreview
}

// Param is one flow parameter; order is preserved in the rendered
// mapping literal.
type Param struct {
	Key   string
	Value string
}

// Script describes one standalone flow script.
type Script struct {
	// RuntimeImport is the runtime library import path.
	RuntimeImport string

	// ModuleImport is the target module's workspace-qualified import
	// path.
	ModuleImport string

	// ModulePkg is the target module's package qualifier.
	ModulePkg string

	// Task is the target task identifier.
	Task string

	// Params is the literal parameter mapping.
	Params []Param

	// Resets are upstream task identifiers to reset, in caller order.
	Resets []string

	// ResetTarget adds a self-reset instruction before the action.
	ResetTarget bool

	// Action is the terminal instruction.
	Action Action

	// LoadOutput appends an output-load trailer after a run action.
	LoadOutput bool
}

var scriptTmpl = template.Must(template.New("flowscript").Parse(
	`// Code generated by flowforge. DO NOT EDIT.
package main

import (
	flowkit {{printf "%q" .RuntimeImport}}

	{{printf "%q" .ModuleImport}}
)

func main() {
	params := flowkit.Params{
{{- range .Params}}
		{{printf "%q" .Key}}: {{printf "%q" .Value}},
{{- end}}
	}
{{- range .Resets}}
	flowkit.Reset({{$.ModulePkg}}.{{.}})
{{- end}}
{{- if .ResetTarget}}
	flowkit.Reset({{.ModulePkg}}.{{.Task}})
{{- end}}
{{- if .Action.IsPreview}}
	flowkit.Preview({{.ModulePkg}}.{{.Task}}, params)
{{- else}}
	flowkit.Run({{.ModulePkg}}.{{.Task}}, params)
{{- end}}
{{- if .LoadOutput}}
	out := flowkit.LoadOutput({{.ModulePkg}}.{{.Task}})
	flowkit.Dump(out)
{{- end}}
}
`))

// RenderScript produces the source text of one standalone flow script.
func RenderScript(s Script) (string, error) {
	var b strings.Builder
	if err := scriptTmpl.Execute(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}
