package astedit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dave/dst"

	"github.com/flowforge/cli/internal/errors"
)

// Segment is one named code segment supplied to a mutation.
type Segment struct {
	Name string
	Body string
}

// AnnotationEntry is one dependency annotation pair: a quoted key and
// the symbol it resolves to (bare or module-qualified).
type AnnotationEntry struct {
	Key    string
	Symbol string
}

// SegmentNames returns the segment names of a task, primary first, in
// artifact order.
func (d *Document) SegmentNames(task string) ([]string, error) {
	lit, err := d.taskLit(task)
	if err != nil {
		return nil, err
	}

	names := []string{}
	if literalField(lit, fieldPrimary) != nil {
		names = append(names, PrimarySegment)
	}
	if f := literalField(lit, fieldSegments); f != nil {
		if segLit, ok := f.Value.(*dst.CompositeLit); ok {
			for _, elt := range segLit.Elts {
				if key, ok := segmentKey(elt); ok {
					names = append(names, key)
				}
			}
		}
	}
	return names, nil
}

// SegmentSource renders one segment's statement list of the named task.
func (d *Document) SegmentSource(task, segment string) (string, error) {
	fn, err := d.segmentFunc(task, segment)
	if err != nil {
		return "", err
	}
	return printStmts(fn.Body.List)
}

// ReplaceSegment swaps the body of one existing segment.
func (d *Document) ReplaceSegment(task, segment, body string) error {
	fn, err := d.segmentFunc(task, segment)
	if err != nil {
		return err
	}
	stmts, err := parseStmts(body)
	if err != nil {
		return err
	}
	fn.Body.List = stmts
	return nil
}

// ReplaceSegments swaps the entire additional-segment set of a task.
// Entries whose name is protected survive; everything else is replaced
// by the given segments, in the given order. Partial merges are not
// supported by design.
func (d *Document) ReplaceSegments(task string, segments []Segment, protected func(string) bool) error {
	lit, err := d.taskLit(task)
	if err != nil {
		return err
	}

	// Collect surviving protected entries.
	var kept []dst.Expr
	if f := literalField(lit, fieldSegments); f != nil {
		if segLit, ok := f.Value.(*dst.CompositeLit); ok {
			for _, elt := range segLit.Elts {
				if key, ok := segmentKey(elt); ok && protected(key) {
					kept = append(kept, elt)
				}
			}
		}
	}

	if len(kept) == 0 && len(segments) == 0 {
		d.removeLiteralField(lit, fieldSegments)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "var _ = %s.Segments{\n", d.runtimePkg())
	for _, seg := range segments {
		fmt.Fprintf(&b, "%s: func(fc *%s.Call) {\n%s\n},\n",
			strconv.Quote(seg.Name), d.runtimePkg(), seg.Body)
	}
	b.WriteString("}")

	decl, err := parseDecl(b.String())
	if err != nil {
		return err
	}
	newLit := decl.(*dst.GenDecl).Specs[0].(*dst.ValueSpec).Values[0].(*dst.CompositeLit)
	newLit.Elts = append(kept, newLit.Elts...)

	d.setLiteralField(lit, fieldSegments, newLit, fieldPrimary)
	return nil
}

// ReplaceInputs rebuilds the dependency annotation of a task from
// scratch. An empty entry list removes the annotation entirely.
func (d *Document) ReplaceInputs(task string, entries []AnnotationEntry) error {
	lit, err := d.taskLit(task)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		d.removeLiteralField(lit, fieldInputs)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "var _ = %s.Inputs{\n", d.runtimePkg())
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s,\n", strconv.Quote(e.Key), e.Symbol)
	}
	b.WriteString("}")

	decl, err := parseDecl(b.String())
	if err != nil {
		return err
	}
	newLit := decl.(*dst.GenDecl).Specs[0].(*dst.ValueSpec).Values[0].(*dst.CompositeLit)

	d.setLiteralField(lit, fieldInputs, newLit, fieldName)
	return nil
}

// DisplayName returns the human-readable Name field of a task.
func (d *Document) DisplayName(task string) (string, error) {
	lit, err := d.taskLit(task)
	if err != nil {
		return "", err
	}
	f := literalField(lit, fieldName)
	if f == nil {
		return task, nil
	}
	basic, ok := f.Value.(*dst.BasicLit)
	if !ok {
		return task, nil
	}
	name, err := strconv.Unquote(basic.Value)
	if err != nil {
		return task, nil
	}
	return name, nil
}

// InputEntries returns the dependency annotation pairs of a task, in
// artifact order. A task without an annotation yields nil.
func (d *Document) InputEntries(task string) ([]AnnotationEntry, error) {
	lit, err := d.taskLit(task)
	if err != nil {
		return nil, err
	}

	f := literalField(lit, fieldInputs)
	if f == nil {
		return nil, nil
	}
	inputsLit, ok := f.Value.(*dst.CompositeLit)
	if !ok {
		return nil, nil
	}

	var entries []AnnotationEntry
	for _, elt := range inputsLit.Elts {
		kv, ok := elt.(*dst.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := segmentKey(elt)
		if !ok {
			continue
		}
		entries = append(entries, AnnotationEntry{
			Key:    key,
			Symbol: renderSymbol(kv.Value),
		})
	}
	return entries, nil
}

// renderSymbol renders an annotation value expression back to its
// symbolic text (bare identifier or module-qualified selector).
func renderSymbol(expr dst.Expr) string {
	switch v := expr.(type) {
	case *dst.Ident:
		return v.Name
	case *dst.SelectorExpr:
		if x, ok := v.X.(*dst.Ident); ok {
			return x.Name + "." + v.Sel.Name
		}
	}
	return ""
}

// taskLit locates the composite literal of a task, or reports NotFound.
func (d *Document) taskLit(task string) (*dst.CompositeLit, error) {
	decl := d.Locate(task)
	if decl == nil {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("task %q not found in module %q", task, d.Module),
			d.Path, "check the task name with `flowforge task list`")
	}
	lit, _ := taskLiteral(decl)
	return lit, nil
}

// segmentFunc locates the function literal backing one segment.
func (d *Document) segmentFunc(task, segment string) (*dst.FuncLit, error) {
	lit, err := d.taskLit(task)
	if err != nil {
		return nil, err
	}

	if segment == PrimarySegment {
		f := literalField(lit, fieldPrimary)
		if f == nil {
			return nil, errors.NewNotFoundError(
				fmt.Sprintf("task %q has no primary segment", task),
				d.Path, "")
		}
		fn, ok := f.Value.(*dst.FuncLit)
		if !ok {
			return nil, fmt.Errorf("task %q primary segment is not a function literal", task)
		}
		return fn, nil
	}

	if f := literalField(lit, fieldSegments); f != nil {
		if segLit, ok := f.Value.(*dst.CompositeLit); ok {
			for _, elt := range segLit.Elts {
				key, ok := segmentKey(elt)
				if !ok || key != segment {
					continue
				}
				if fn, ok := elt.(*dst.KeyValueExpr).Value.(*dst.FuncLit); ok {
					return fn, nil
				}
				return nil, fmt.Errorf("segment %q of task %q is not a function literal", segment, task)
			}
		}
	}

	return nil, errors.NewNotFoundError(
		fmt.Sprintf("segment %q not found on task %q in module %q", segment, task, d.Module),
		d.Path, "list segments with `flowforge task get`")
}

// segmentKey extracts the unquoted key of one Segments map entry.
func segmentKey(elt dst.Expr) (string, bool) {
	kv, ok := elt.(*dst.KeyValueExpr)
	if !ok {
		return "", false
	}
	lit, ok := kv.Key.(*dst.BasicLit)
	if !ok {
		return "", false
	}
	key, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return key, true
}

// runtimePkg returns the package qualifier of the runtime library as it
// appears in this artifact's task literals.
func (d *Document) runtimePkg() string {
	for _, decl := range d.File.Decls {
		if lit, ok := taskLiteral(decl); ok {
			if sel, ok := lit.Type.(*dst.SelectorExpr); ok {
				if ident, ok := sel.X.(*dst.Ident); ok {
					return ident.Name
				}
			}
		}
	}
	return "flowkit"
}

// setLiteralField replaces or inserts a named field. New fields land
// directly after the anchor field when present, else at the front.
func (d *Document) setLiteralField(lit *dst.CompositeLit, name string, value dst.Expr, anchor string) {
	if existing := literalField(lit, name); existing != nil {
		existing.Value = value
		return
	}

	kv := &dst.KeyValueExpr{Key: dst.NewIdent(name), Value: value}
	kv.Decorations().Before = dst.NewLine
	kv.Decorations().After = dst.NewLine

	pos := 0
	for i, elt := range lit.Elts {
		if e, ok := elt.(*dst.KeyValueExpr); ok {
			if ident, ok := e.Key.(*dst.Ident); ok && ident.Name == anchor {
				pos = i + 1
				break
			}
		}
	}

	elts := make([]dst.Expr, 0, len(lit.Elts)+1)
	elts = append(elts, lit.Elts[:pos]...)
	elts = append(elts, kv)
	elts = append(elts, lit.Elts[pos:]...)
	lit.Elts = elts
}

// removeLiteralField drops a named field when present.
func (d *Document) removeLiteralField(lit *dst.CompositeLit, name string) {
	kept := make([]dst.Expr, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		if kv, ok := elt.(*dst.KeyValueExpr); ok {
			if ident, ok := kv.Key.(*dst.Ident); ok && ident.Name == name {
				continue
			}
		}
		kept = append(kept, elt)
	}
	lit.Elts = kept
}
