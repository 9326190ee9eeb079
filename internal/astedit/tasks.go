package astedit

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/dst"

	"github.com/flowforge/cli/internal/errors"
)

// Composite-literal field names of a generated task definition.
const (
	fieldName     = "Name"
	fieldInputs   = "Inputs"
	fieldPrimary  = "Primary"
	fieldSegments = "Segments"
)

// PrimarySegment is the mandatory segment every task definition carries.
const PrimarySegment = "primary"

// Locate returns the top-level declaration of the named task, or nil
// when the task is not defined in this artifact.
func (d *Document) Locate(task string) *dst.GenDecl {
	for _, decl := range d.File.Decls {
		if name, ok := taskDeclName(decl); ok && name == task {
			return decl.(*dst.GenDecl)
		}
	}
	return nil
}

// HasTask reports whether the named task is defined in this artifact.
func (d *Document) HasTask(task string) bool {
	return d.Locate(task) != nil
}

// Tasks returns the identifiers of every task definition in artifact
// order.
func (d *Document) Tasks() []string {
	var names []string
	for _, decl := range d.File.Decls {
		if name, ok := taskDeclName(decl); ok {
			names = append(names, name)
		}
	}
	return names
}

// InsertDecl parses a generated definition block and appends its node
// after the existing content.
func (d *Document) InsertDecl(src string) error {
	decl, err := parseDecl(src)
	if err != nil {
		return err
	}
	decl.Decorations().Before = dst.EmptyLine
	d.File.Decls = append(d.File.Decls, decl)
	return nil
}

// Remove deletes the named task's declaration. It reports NotFound when
// nothing was removed.
func (d *Document) Remove(task string) error {
	kept := make([]dst.Decl, 0, len(d.File.Decls))
	removed := false
	for _, decl := range d.File.Decls {
		if name, ok := taskDeclName(decl); ok && name == task {
			removed = true
			continue
		}
		kept = append(kept, decl)
	}
	if !removed {
		return errors.NewNotFoundError(
			fmt.Sprintf("task %q not found in module %q", task, d.Module),
			d.Path, "check the task name with `flowforge task list`")
	}
	d.File.Decls = kept
	return nil
}

// Rename changes the task's identifier in place and rewrites every
// same-module dependency annotation that referenced the old identifier.
// Cross-module references (selector values) are deliberately left
// untouched.
func (d *Document) Rename(oldName, newName string) error {
	decl := d.Locate(oldName)
	if decl == nil {
		return errors.NewNotFoundError(
			fmt.Sprintf("task %q not found in module %q", oldName, d.Module),
			d.Path, "check the task name with `flowforge task list`")
	}
	if d.HasTask(newName) {
		return errors.NewDuplicateError(
			fmt.Sprintf("task %q already exists in module %q", newName, d.Module),
			d.Path, "pick a different name or delete the existing task first")
	}

	spec := decl.Specs[0].(*dst.ValueSpec)
	spec.Names[0].Name = newName

	// Same-module annotation rewrite: bare keys and bare ident values.
	for _, other := range d.File.Decls {
		lit, ok := taskLiteral(other)
		if !ok {
			continue
		}
		inputs := literalField(lit, fieldInputs)
		if inputs == nil {
			continue
		}
		inputsLit, ok := inputs.Value.(*dst.CompositeLit)
		if !ok {
			continue
		}
		for _, elt := range inputsLit.Elts {
			kv, ok := elt.(*dst.KeyValueExpr)
			if !ok {
				continue
			}
			if ident, ok := kv.Value.(*dst.Ident); ok && ident.Name == oldName {
				ident.Name = newName
			}
			if key, ok := kv.Key.(*dst.BasicLit); ok && key.Kind == token.STRING {
				if unquoted, err := strconv.Unquote(key.Value); err == nil && unquoted == oldName {
					key.Value = strconv.Quote(newName)
				}
			}
		}
	}

	return nil
}

// Source renders the full definition of the named task.
func (d *Document) Source(task string) (string, error) {
	decl := d.Locate(task)
	if decl == nil {
		return "", errors.NewNotFoundError(
			fmt.Sprintf("task %q not found in module %q", task, d.Module),
			d.Path, "check the task name with `flowforge task list`")
	}

	clone := dst.Clone(decl).(dst.Decl)
	clone.Decorations().Before = dst.None
	file := &dst.File{Name: dst.NewIdent("p"), Decls: []dst.Decl{clone}}
	doc := &Document{Module: d.Module, Path: d.Path, File: file}

	src, err := doc.Format()
	if err != nil {
		return "", err
	}

	// Strip the throwaway package clause.
	text := string(src)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = strings.TrimLeft(text[idx+1:], "\n")
	}
	return text, nil
}

// TaskInfo summarizes one task definition for listings.
type TaskInfo struct {
	Name     string `json:"name"`
	Segments int    `json:"segments"`
	Inputs   int    `json:"inputs"`
}

// Info returns listing metadata for every task in artifact order.
func (d *Document) Info() []TaskInfo {
	var infos []TaskInfo
	for _, decl := range d.File.Decls {
		name, ok := taskDeclName(decl)
		if !ok {
			continue
		}
		lit, _ := taskLiteral(decl)

		info := TaskInfo{Name: name, Segments: 1}
		if f := literalField(lit, fieldSegments); f != nil {
			if segLit, ok := f.Value.(*dst.CompositeLit); ok {
				info.Segments += len(segLit.Elts)
			}
		}
		if f := literalField(lit, fieldInputs); f != nil {
			if inLit, ok := f.Value.(*dst.CompositeLit); ok {
				info.Inputs = len(inLit.Elts)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// taskDeclName extracts the identifier from a task definition
// declaration: a single-spec `var X = <runtime>.Task{...}`.
func taskDeclName(decl dst.Decl) (string, bool) {
	gen, ok := decl.(*dst.GenDecl)
	if !ok || gen.Tok != token.VAR || len(gen.Specs) != 1 {
		return "", false
	}
	spec, ok := gen.Specs[0].(*dst.ValueSpec)
	if !ok || len(spec.Names) != 1 || len(spec.Values) != 1 {
		return "", false
	}
	lit, ok := spec.Values[0].(*dst.CompositeLit)
	if !ok {
		return "", false
	}
	sel, ok := lit.Type.(*dst.SelectorExpr)
	if !ok || sel.Sel.Name != "Task" {
		return "", false
	}
	return spec.Names[0].Name, true
}

// taskLiteral returns the Task composite literal of a task declaration.
func taskLiteral(decl dst.Decl) (*dst.CompositeLit, bool) {
	if _, ok := taskDeclName(decl); !ok {
		return nil, false
	}
	spec := decl.(*dst.GenDecl).Specs[0].(*dst.ValueSpec)
	return spec.Values[0].(*dst.CompositeLit), true
}

// literalField finds a named field of a composite literal.
func literalField(lit *dst.CompositeLit, name string) *dst.KeyValueExpr {
	if lit == nil {
		return nil
	}
	for _, elt := range lit.Elts {
		kv, ok := elt.(*dst.KeyValueExpr)
		if !ok {
			continue
		}
		if ident, ok := kv.Key.(*dst.Ident); ok && ident.Name == name {
			return kv
		}
	}
	return nil
}
