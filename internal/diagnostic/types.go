package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"merge-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeUnknownAttribute    = "unknown-attribute"
	CodeMalformedStrategy   = "malformed-strategy"
	CodeMalformedAttribute  = "malformed-attribute"
	CodeDuplicateAttribute  = "duplicate-attribute"
	CodeUnknownQualifier    = "unknown-qualifier"
	CodeUnsupportedTarget   = "unsupported-target"
	CodeBlankFieldAttribute = "blank-field-attribute"
)

// Diagnostics holds all diagnostic information from derivation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is a unique identifier for this kind of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Pos is the source position of the offending token.
	Pos token.Position `json:"pos"`
	// Record names the record type this relates to (if any).
	Record string `json:"record,omitempty"`
	// FieldPath identifies which field this relates to (if any).
	FieldPath string `json:"field,omitempty"`
	// Suggestions are potential fixes.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}

	return nil
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code string, pos token.Position, record, fieldPath, message string) *Diagnostic {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Message:   message,
		Pos:       pos,
		Record:    record,
		FieldPath: fieldPath,
	})

	return &d.Errors[len(d.Errors)-1]
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code string, pos token.Position, record, fieldPath, message string) *Diagnostic {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Pos:       pos,
		Record:    record,
		FieldPath: fieldPath,
	})

	return &d.Warnings[len(d.Warnings)-1]
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the diagnostics of other to d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All returns errors and warnings ordered by source position.
func (d *Diagnostics) All() []Diagnostic {
	all := slices.Concat(d.Errors, d.Warnings)
	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
			return c
		}

		return a.Pos.Offset - b.Pos.Offset
	})

	return all
}

// Error returns a combined error from all error diagnostics, or nil if there
// are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var errs []error
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String returns the diagnostic in the usual "file:line:col: message" form.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Pos.IsValid() {
		sb.WriteString(d.Pos.String())
		sb.WriteString(": ")
	}

	sb.WriteString(d.Severity.String())
	fmt.Fprintf(&sb, " [%s] ", d.Code)

	switch {
	case d.Record != "" && d.FieldPath != "":
		sb.WriteString(d.Record + "." + d.FieldPath + ": ")
	case d.Record != "":
		sb.WriteString(d.Record + ": ")
	}

	sb.WriteString(d.Message)

	for _, s := range d.Suggestions {
		sb.WriteString("\n\thint: " + s)
	}

	return sb.String()
}
