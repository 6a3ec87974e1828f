package derive

import (
	"merge-generator/internal/analyze"
	"merge-generator/internal/attr"
	"merge-generator/internal/diagnostic"
)

// Plan is the result of deriving every record of a TypeGraph.
type Plan struct {
	// Packages holds one entry per package with marked records, sorted by
	// import path.
	Packages []*PackagePlan
	// Diagnostics collects problems found while deriving.
	Diagnostics diagnostic.Diagnostics
}

// PackagePlan holds the implementations of one package.
type PackagePlan struct {
	Package         *analyze.PackageInfo
	Implementations []*Implementation
}

// Statement merges one field.
type Statement struct {
	Field  analyze.FieldDecl
	Policy attr.Policy
}

// Implementation is the derived Merge method of one record.
type Implementation struct {
	Record *analyze.RecordDecl
	// Statements in field declaration order. Skipped fields are kept with a
	// PolicySkip policy.
	Statements []Statement
	// Default is the record default strategy, if any.
	Default *attr.StrategyRef
	// Imports referenced by strategy qualifiers, in first-use order.
	Imports []analyze.Import
	// Placeholder marks a failed derivation.
	Placeholder bool
}

// Emits reports whether a method is generated for the implementation.
// Placeholders are only generated for types that can have methods.
func (i *Implementation) Emits() bool {
	return !i.Placeholder || i.Record.Kind.CanHaveMethods()
}

// Merged returns the statements that are not skipped.
func (i *Implementation) Merged() []Statement {
	var out []Statement
	for _, s := range i.Statements {
		if s.Policy.Kind != attr.PolicySkip {
			out = append(out, s)
		}
	}

	return out
}
