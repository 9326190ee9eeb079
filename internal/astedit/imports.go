package astedit

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	"github.com/flowforge/cli/internal/output"
)

// MergeImports merges an import block into the document. The block is
// split into non-blank, non-comment lines; each line not already
// present (exact rendered text) is inserted directly after the current
// last import, preserving the caller's order across calls. Lines
// already present are skipped, not errors.
func (d *Document) MergeImports(block string) error {
	existing := make(map[string]bool)
	for _, spec := range d.importSpecs() {
		existing[renderImportSpec(spec)] = true
	}

	for _, line := range splitImportLines(block) {
		spec, err := parseImportLine(line)
		if err != nil {
			return err
		}

		text := renderImportSpec(spec)
		if existing[text] {
			output.Debug("import already present, skipping", "import", text, "module", d.Module)
			continue
		}

		d.appendImport(spec)
		existing[text] = true
	}

	return nil
}

// Imports returns the rendered text of every import currently in the
// document, in artifact order.
func (d *Document) Imports() []string {
	specs := d.importSpecs()
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, renderImportSpec(spec))
	}
	return out
}

// importSpecs collects all import specs across the file's import
// declarations, in source order.
func (d *Document) importSpecs() []*dst.ImportSpec {
	var specs []*dst.ImportSpec
	for _, decl := range d.File.Decls {
		gen, ok := decl.(*dst.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}
		for _, s := range gen.Specs {
			if imp, ok := s.(*dst.ImportSpec); ok {
				specs = append(specs, imp)
			}
		}
	}
	return specs
}

// appendImport inserts spec after the last existing import. When the
// artifact has no import declaration yet, a new grouped block is
// created before the first declaration.
func (d *Document) appendImport(spec *dst.ImportSpec) {
	spec.Decorations().Before = dst.NewLine
	spec.Decorations().After = dst.NewLine

	var last *dst.GenDecl
	for _, decl := range d.File.Decls {
		if gen, ok := decl.(*dst.GenDecl); ok && gen.Tok == token.IMPORT {
			last = gen
		}
	}

	if last != nil {
		last.Specs = append(last.Specs, spec)
		return
	}

	block := &dst.GenDecl{
		Tok:   token.IMPORT,
		Specs: []dst.Spec{spec},
	}
	block.Decorations().Before = dst.EmptyLine
	block.Decorations().After = dst.EmptyLine
	d.File.Decls = append([]dst.Decl{block}, d.File.Decls...)
}

// splitImportLines breaks an import block into candidate lines,
// dropping blanks and comments.
func splitImportLines(block string) []string {
	var lines []string
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "import"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseImportLine parses a single import line ( `"path"` or
// `alias "path"` ) into a detached spec.
func parseImportLine(line string) (*dst.ImportSpec, error) {
	f, err := decorator.Parse("package p\n\nimport " + line + "\n")
	if err != nil {
		return nil, fmt.Errorf("parsing import line %q: %w", line, err)
	}
	for _, decl := range f.Decls {
		gen, ok := decl.(*dst.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}
		for _, s := range gen.Specs {
			if imp, ok := s.(*dst.ImportSpec); ok {
				out := dst.Clone(imp).(*dst.ImportSpec)
				return out, nil
			}
		}
	}
	return nil, fmt.Errorf("import line %q produced no import spec", line)
}

// renderImportSpec renders a spec to its canonical single-line text.
func renderImportSpec(spec *dst.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name + " " + spec.Path.Value
	}
	return spec.Path.Value
}
