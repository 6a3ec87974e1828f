// Package gen provides deterministic Go code generation for derived Merge
// methods.
//
// Generation uses text/template + go/format. Each package with marked
// records gets one file (merge_gen.go by default) holding:
//   - the imports referenced by strategy qualifiers
//   - compile-time Merger assertions for non-generic records
//   - one Merge method per record, fields in declaration order
//
// Statement forms:
//   - strategy: pkg.Func(&r.Field, other.Field)
//   - recurse:  r.Field.Merge(other.Field)
//   - skip:     nothing (a comment when comments are enabled)
//
// A record whose derivation failed gets a placeholder Merge that panics, as
// long as its kind can carry methods.
package gen
