// Package render synthesizes generated source text: task definition
// blocks and standalone flow scripts. Output is plain text, ready to be
// parsed and inserted by astedit.
package render

import (
	"regexp"
	"strings"
	"text/template"

	"github.com/flowforge/cli/internal/astedit"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/identity"
)

// Generated-code conventions.
const (
	// ResultBinding is the variable a primary segment must assign
	// before its value is persisted.
	ResultBinding = "result"

	// LoadInputsStmt is the fixed statement silently prepended to every
	// segment body and stripped back out on read.
	LoadInputsStmt = "fc.LoadInputs()"

	// SaveCall persists the result binding; appended verbatim when the
	// caller's primary body does not already invoke it.
	SaveCall = "fc.Save(result)"

	// saveInvocation is the textual marker used to detect an existing
	// save call.
	saveInvocation = "fc.Save("
)

// resultAssignRE matches an assignment to the result binding: plain,
// short-declaration, compound, and multi-value forms (result, err := f()),
// excluding comparison.
var resultAssignRE = regexp.MustCompile(`\bresult\b\s*(?:,[^=\n]*?)?(:=|[+\-*/]?=)([^=]|$)`)

// Definition describes one task definition block to render.
type Definition struct {
	// Ident is the sanitized task identifier.
	Ident string

	// DisplayName is the human-readable task name.
	DisplayName string

	// RuntimePkg is the package qualifier of the runtime library.
	RuntimePkg string

	// Entries is the dependency annotation; empty means no annotation
	// is emitted at all.
	Entries []astedit.AnnotationEntry

	// PrimaryBody is the caller-supplied primary segment body.
	PrimaryBody string

	// Segments are the additional named segments, in caller order.
	// Names are sanitized during rendering.
	Segments []astedit.Segment
}

var definitionTmpl = template.Must(template.New("definition").Parse(
	`var {{.Ident}} = {{.RuntimePkg}}.Task{
	Name: {{printf "%q" .DisplayName}},
{{- if .Entries}}
	Inputs: {{.RuntimePkg}}.Inputs{
{{- range .Entries}}
		{{printf "%q" .Key}}: {{.Symbol}},
{{- end}}
	},
{{- end}}
	Primary: func(fc *{{.RuntimePkg}}.Call) {
{{.PrimaryBody}}
	},
{{- if .Segments}}
	Segments: {{.RuntimePkg}}.Segments{
{{- range .Segments}}
		{{printf "%q" .Name}}: func(fc *{{$.RuntimePkg}}.Call) {
{{.Body}}
		},
{{- end}}
	},
{{- end}}
}
`))

// RenderDefinition produces the source text of one self-contained task
// definition: annotation, header, primary segment, and additional
// segments. Every segment body gets the load-inputs prefix; the primary
// body is validated for a result assignment and completed with a save
// call when missing.
func RenderDefinition(def Definition) (string, error) {
	primary, err := PreparePrimary(def.PrimaryBody)
	if err != nil {
		return "", err
	}

	rendered := def
	rendered.PrimaryBody = primary

	rendered.Segments = make([]astedit.Segment, 0, len(def.Segments))
	for _, seg := range def.Segments {
		rendered.Segments = append(rendered.Segments, astedit.Segment{
			Name: identity.Sanitize(seg.Name, identity.KindSegment),
			Body: PrefixBody(seg.Body),
		})
	}

	var b strings.Builder
	if err := definitionTmpl.Execute(&b, rendered); err != nil {
		return "", err
	}
	return b.String(), nil
}

// PreparePrimary validates and completes a caller-supplied primary
// segment body: the result binding must be assigned, the save call is
// appended when missing, and the load-inputs prefix is injected.
func PreparePrimary(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", errors.NewValidationError(
			"primary segment body is required",
			"", "primary", "supply code that assigns `result`")
	}
	if !resultAssignRE.MatchString(body) {
		return "", errors.NewValidationError(
			"primary segment never assigns the result binding",
			"", "primary", "assign a value to `result` before it is saved")
	}
	return PrefixBody(ensureSave(body)), nil
}

// PrefixBody prepends the load-inputs statement to a segment body.
func PrefixBody(body string) string {
	return LoadInputsStmt + "\n" + strings.TrimRight(body, "\n")
}

// StripPrefix removes the auto-injected load-inputs statement from a
// segment body read back out of an artifact. The strip is exact: only a
// leading load statement line is dropped.
func StripPrefix(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == LoadInputsStmt {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// ensureSave appends the save call when the body does not already
// invoke it.
func ensureSave(body string) string {
	if strings.Contains(body, saveInvocation) {
		return body
	}
	return strings.TrimRight(body, "\n") + "\n" + SaveCall
}
