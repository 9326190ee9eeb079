package output

// YAML-aware diffing between a task-spec file and the spec form of a
// stored definition, built on dyff so key reorderings do not show up
// as changes.

import (
	"bytes"
	"fmt"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffYAML computes a human-readable diff between two YAML documents.
// fromName and toName label the two sides in the report. An empty
// string result means the documents are semantically identical.
func DiffYAML(fromName string, from []byte, toName string, to []byte) (string, error) {
	if len(bytes.TrimSpace(from)) == 0 && len(bytes.TrimSpace(to)) == 0 {
		return "", nil
	}

	fromInput, err := parseYAMLInput(fromName, from)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", fromName, err)
	}

	toInput, err := parseYAMLInput(toName, to)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", toName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      true,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("rendering diff report: %w", err)
	}

	return buf.String(), nil
}
