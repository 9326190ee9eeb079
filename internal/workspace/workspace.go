// Package workspace owns the on-disk layout of generated module
// artifacts: one Go package directory per module, a go.mod marker at
// the workspace root, and full read/parse/write cycles per artifact.
package workspace

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/flowforge/cli/internal/astedit"
	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/output"
)

// DefaultModule is the sentinel identifier used when a caller does not
// name a module. It is resolved once at the engine boundary and never
// travels as an empty string deeper in.
const DefaultModule = "tasks"

// Store reads and writes module artifacts under one workspace root.
type Store struct {
	// Base is the workspace root directory.
	Base string

	// ModuleName is the Go module name written to the go.mod marker.
	ModuleName string

	// Runtime is the import path of the runtime library.
	Runtime string

	// RuntimeReplace optionally points the go.mod replace directive at
	// a local runtime checkout.
	RuntimeReplace string
}

// New creates a Store rooted at base.
func New(base, moduleName, runtime, runtimeReplace string) *Store {
	return &Store{
		Base:           base,
		ModuleName:     moduleName,
		Runtime:        runtime,
		RuntimeReplace: runtimeReplace,
	}
}

// ModuleOrDefault resolves the optional module identifier to a concrete
// one.
func ModuleOrDefault(module string) string {
	if module == "" {
		return DefaultModule
	}
	return module
}

// RuntimePackage returns the package qualifier generated code uses for
// the runtime library. Artifacts always alias the runtime import, so
// the qualifier is stable regardless of the configured import path.
func (s *Store) RuntimePackage() string {
	return "flowkit"
}

// ArtifactPath returns the artifact location for a module.
func (s *Store) ArtifactPath(module string) string {
	return filepath.Join(s.Base, module, module+".go")
}

// ModuleImportPath returns the workspace-qualified import path of a
// module package.
func (s *Store) ModuleImportPath(module string) string {
	return s.ModuleName + "/" + module
}

// BaseImports returns the two fixed import lines present at the top of
// every artifact, in order.
func (s *Store) BaseImports() []string {
	return []string{
		fmt.Sprintf("flowkit %q", s.Runtime),
		fmt.Sprintf("_ %q", s.Runtime+"/frame"),
	}
}

// Exists reports whether a module artifact is already materialized.
func (s *Store) Exists(module string) bool {
	_, err := os.Stat(s.ArtifactPath(module))
	return err == nil
}

// Load reads and parses an existing module artifact. A missing artifact
// is NotFound; a parse failure is fatal because the engine is the only
// writer.
func (s *Store) Load(module string) (*astedit.Document, error) {
	p := s.ArtifactPath(module)
	src, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(
				fmt.Sprintf("module %q not found", module),
				p, "list modules with `flowforge task modules`")
		}
		return nil, fmt.Errorf("reading artifact %s: %w", p, err)
	}
	return astedit.Parse(module, p, src)
}

// LoadOrCreate loads a module artifact, materializing an empty one on
// first write. Module creation is lazy: no explicit create operation
// exists.
func (s *Store) LoadOrCreate(module string) (*astedit.Document, error) {
	if !s.Exists(module) {
		if err := s.EnsureMarker(); err != nil {
			return nil, err
		}
		if err := s.writeEmptyArtifact(module); err != nil {
			return nil, err
		}
		output.Debug("created module artifact", "module", module, "path", s.ArtifactPath(module))
	}
	return s.Load(module)
}

// Save renders the document and atomically rewrites its artifact.
func (s *Store) Save(doc *astedit.Document) error {
	src, err := doc.Format()
	if err != nil {
		return err
	}

	dir := filepath.Dir(doc.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating module directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.go.tmp")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, doc.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing artifact %s: %w", doc.Path, err)
	}
	return nil
}

// Modules enumerates materialized module identifiers in lexical order.
func (s *Store) Modules() ([]string, error) {
	entries, err := os.ReadDir(s.Base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading workspace %s: %w", s.Base, err)
	}

	var modules []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if s.Exists(e.Name()) {
			modules = append(modules, e.Name())
		}
	}
	return modules, nil
}

// EnsureMarker writes the workspace go.mod on first use. An existing
// marker is left alone.
func (s *Store) EnsureMarker() error {
	if err := os.MkdirAll(s.Base, 0o755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", s.Base, err)
	}

	markerPath := filepath.Join(s.Base, "go.mod")
	if _, err := os.Stat(markerPath); err == nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n\ngo 1.25\n\nrequire %s v0.0.0\n", s.ModuleName, s.runtimeRequire())
	if s.RuntimeReplace != "" {
		fmt.Fprintf(&b, "\nreplace %s => %s\n", s.runtimeRequire(), s.RuntimeReplace)
	}

	if err := os.WriteFile(markerPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing workspace marker: %w", err)
	}
	output.Debug("created workspace marker", "path", markerPath)
	return nil
}

// runtimeRequire derives the requirable module path from the runtime
// import path: the runtime may live in a pkg/ subdirectory of its
// module.
func (s *Store) runtimeRequire() string {
	if idx := strings.Index(s.Runtime, "/pkg/"); idx > 0 {
		return s.Runtime[:idx]
	}
	return s.Runtime
}

// writeEmptyArtifact materializes a module with no task definitions:
// header comment, package clause, the two base imports, and the module
// marker declaration.
func (s *Store) writeEmptyArtifact(module string) error {
	dir := filepath.Join(s.Base, module)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating module directory %s: %w", dir, err)
	}

	var b strings.Builder
	b.WriteString("// Code generated by flowforge. Edit through the flowforge CLI only.\n\n")
	fmt.Fprintf(&b, "// Package %s holds generated task definitions.\npackage %s\n\n", module, module)
	b.WriteString("import (\n")
	for _, imp := range s.BaseImports() {
		fmt.Fprintf(&b, "\t%s\n", imp)
	}
	b.WriteString(")\n\n")
	fmt.Fprintf(&b, "var _ = flowkit.Module(%q)\n", module)

	return os.WriteFile(s.ArtifactPath(module), []byte(b.String()), 0o644)
}

// ImportPathBase returns the last element of an import path; used to
// derive package qualifiers for cross-module references.
func ImportPathBase(importPath string) string {
	return path.Base(importPath)
}
