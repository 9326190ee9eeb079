// Package identity normalizes and validates the identifiers used in
// generated workspace code: module package names, task definition names,
// and segment names.
package identity

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/flowforge/cli/internal/errors"
)

// Kind selects the casing and edge-case rules for one identifier class.
type Kind int

const (
	// KindModule produces snake_case Go package identifiers.
	KindModule Kind = iota

	// KindTask produces PascalCase exported declaration identifiers.
	KindTask

	// KindSegment produces snake_case segment names.
	KindSegment
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindTask:
		return "task"
	case KindSegment:
		return "segment"
	default:
		return "unknown"
	}
}

// MaxLength is the maximum identifier length before truncation applies.
const MaxLength = 50

// Per-kind edge-case fixups.
var (
	fallbackNames = map[Kind]string{
		KindModule:  "untitled",
		KindTask:    "Untitled",
		KindSegment: "segment",
	}

	digitPrefixes = map[Kind]string{
		KindModule:  "m",
		KindTask:    "T",
		KindSegment: "s",
	}

	reservedSuffixes = map[Kind]string{
		KindModule:  "_pkg",
		KindTask:    "Task",
		KindSegment: "_seg",
	}

	truncMarkers = map[Kind]string{
		KindModule:  "_cut",
		KindTask:    "Cut",
		KindSegment: "_cut",
	}
)

// reservedWords are Go keywords and predeclared identifiers a generated
// identifier must not shadow.
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,

	"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "rune": true,
	"string": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true, "true": true, "false": true, "iota": true,
	"nil": true, "append": true, "cap": true, "clear": true, "close": true,
	"complex": true, "copy": true, "delete": true, "imag": true, "len": true,
	"make": true, "max": true, "min": true, "new": true, "panic": true,
	"print": true, "println": true, "real": true, "recover": true,
}

// Sanitize transforms raw into a valid identifier of the given kind.
// It never fails: blank input maps to a fixed per-kind fallback name.
func Sanitize(raw string, kind Kind) string {
	words := splitWords(raw)

	var out string
	switch kind {
	case KindTask:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(capitalize(w))
		}
		out = b.String()
	default:
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			lowered = append(lowered, strings.ToLower(w))
		}
		out = strings.Join(lowered, "_")
	}

	// Edge-case policy, applied in order.
	if out == "" {
		out = fallbackNames[kind]
	}
	if leadsWithDigit(out) {
		out = digitPrefixes[kind] + out
	}
	if reservedWords[out] {
		out += reservedSuffixes[kind]
	}
	if runes := []rune(out); len(runes) > MaxLength {
		marker := truncMarkers[kind]
		out = string(runes[:MaxLength-len(marker)]) + marker
	}

	return out
}

// Validate checks raw against the rules of kind without transforming it.
// Callers in strict mode use this instead of Sanitize.
func Validate(raw string, kind Kind) error {
	if strings.TrimSpace(raw) == "" {
		return errors.NewValidationError(
			fmt.Sprintf("%s name must not be empty", kind),
			"", kind.String(), "provide a non-empty name")
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		return errors.NewValidationError(
			fmt.Sprintf("%s name %q must not contain whitespace", kind, raw),
			"", kind.String(), "use underscores instead of spaces")
	}
	for i, r := range raw {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if unicode.IsDigit(r) {
			if i == 0 {
				return errors.NewValidationError(
					fmt.Sprintf("%s name %q must not start with a digit", kind, raw),
					"", kind.String(), "start the name with a letter")
			}
			continue
		}
		return errors.NewValidationError(
			fmt.Sprintf("%s name %q contains invalid character %q", kind, raw, r),
			"", kind.String(), "use letters, digits, and underscores only")
	}
	if reservedWords[raw] {
		return errors.NewValidationError(
			fmt.Sprintf("%s name %q is a reserved word", kind, raw),
			"", kind.String(), "pick a different name")
	}
	if len([]rune(raw)) > MaxLength {
		return errors.NewValidationError(
			fmt.Sprintf("%s name %q exceeds %d characters", kind, raw, MaxLength),
			"", kind.String(), "shorten the name")
	}
	if kind == KindTask {
		first := []rune(raw)[0]
		if !unicode.IsUpper(first) {
			return errors.NewValidationError(
				fmt.Sprintf("task name %q must start with an uppercase letter", raw),
				"", kind.String(), "capitalize the first letter")
		}
	}
	return nil
}

// splitWords breaks raw into word runs: boundaries are inserted at
// lower-to-upper case transitions and at any run of whitespace,
// punctuation, or other disallowed characters. Characters that are
// neither letters, digits, nor separators are dropped.
func splitWords(raw string) []string {
	var words []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	prevLowerOrDigit := false
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			if prevLowerOrDigit {
				flush()
			}
			cur.WriteRune(r)
			prevLowerOrDigit = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
			prevLowerOrDigit = true
		case unicode.IsSpace(r) || unicode.IsPunct(r) || r == '-' || unicode.IsSymbol(r):
			flush()
			prevLowerOrDigit = false
		default:
			// Disallowed character: stripped without forcing a boundary.
		}
	}
	flush()

	return words
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// leadsWithDigit reports whether s starts with a digit in any script,
// matching what splitWords lets through. A purely numeric identifier
// trivially satisfies this too.
func leadsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
