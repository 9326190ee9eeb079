// Package astedit performs surgical edits on generated module artifacts.
//
// Artifacts are parsed into decorated syntax trees (github.com/dave/dst)
// so that unrelated declarations, comments, and spacing survive every
// mutation byte-for-semantics. All locate/insert/replace/remove
// operations work on whole top-level nodes; rendering back to source is
// a full-tree print.
package astedit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Document is one parsed module artifact.
type Document struct {
	// Module is the sanitized module identifier the artifact belongs to.
	Module string

	// Path is the artifact location on disk, kept for error reporting.
	Path string

	// File is the parsed tree. Mutations act on it in place.
	File *dst.File
}

// Parse parses artifact source into a Document. A parse failure on an
// existing artifact is fatal for the caller: the engine is the only
// writer, so a malformed artifact means external corruption.
func Parse(module, path string, src []byte) (*Document, error) {
	f, err := decorator.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing artifact %s: %w", path, err)
	}
	return &Document{Module: module, Path: path, File: f}, nil
}

// Format renders the document back to gofmt-formatted source.
func (d *Document) Format() ([]byte, error) {
	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, d.File); err != nil {
		return nil, fmt.Errorf("rendering artifact %s: %w", d.Path, err)
	}
	return buf.Bytes(), nil
}

// parseDecl parses a standalone top-level declaration (e.g. a generated
// task definition block) and returns its node.
func parseDecl(src string) (dst.Decl, error) {
	f, err := decorator.Parse("package p\n\n" + strings.TrimSpace(src) + "\n")
	if err != nil {
		return nil, fmt.Errorf("parsing generated declaration: %w", err)
	}
	if len(f.Decls) == 0 {
		return nil, fmt.Errorf("generated declaration is empty")
	}
	if len(f.Decls) > 1 {
		return nil, fmt.Errorf("generated block contains %d declarations, want 1", len(f.Decls))
	}
	return f.Decls[0], nil
}

// parseStmts parses a segment body (a bare statement list) by wrapping
// it in a throwaway function.
func parseStmts(body string) ([]dst.Stmt, error) {
	src := "package p\n\nfunc _(fc *flowkit.Call) {\n" + body + "\n}\n"
	f, err := decorator.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing segment body: %w", err)
	}
	fn, ok := f.Decls[0].(*dst.FuncDecl)
	if !ok {
		return nil, fmt.Errorf("parsing segment body: unexpected declaration shape")
	}
	return fn.Body.List, nil
}

// printStmts renders a statement list back to unindented source text.
func printStmts(stmts []dst.Stmt) (string, error) {
	body := &dst.BlockStmt{List: make([]dst.Stmt, 0, len(stmts))}
	for _, s := range stmts {
		body.List = append(body.List, dst.Clone(s).(dst.Stmt))
	}
	fn := &dst.FuncDecl{
		Name: dst.NewIdent("_"),
		Type: &dst.FuncType{Params: &dst.FieldList{}},
		Body: body,
	}
	file := &dst.File{Name: dst.NewIdent("p"), Decls: []dst.Decl{fn}}

	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, file); err != nil {
		return "", fmt.Errorf("rendering segment body: %w", err)
	}

	return unwrapFuncBody(buf.String()), nil
}

// unwrapFuncBody extracts the statement lines from a printed wrapper
// function, stripping one level of indentation.
func unwrapFuncBody(src string) string {
	lines := strings.Split(src, "\n")

	// Find the wrapper's opening and closing braces.
	start := -1
	end := -1
	for i, line := range lines {
		if start == -1 && strings.HasPrefix(line, "func _") {
			start = i + 1
		}
		if line == "}" {
			end = i
		}
	}
	if start == -1 || end == -1 || start > end {
		return ""
	}

	out := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		out = append(out, strings.TrimPrefix(line, "\t"))
	}
	return strings.Join(out, "\n")
}
