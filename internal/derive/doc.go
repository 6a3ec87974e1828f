// Package derive turns marked record declarations into merge plans.
//
// For every record it resolves one policy per field (skip, strategy or
// recurse) in declaration order. Annotation problems are reported as
// diagnostics; a record with any error gets a placeholder implementation
// instead of a partial one, so a misconfigured field never silently falls
// back to a default merge.
//
// Key types:
//   - Deriver: runs derivation over a TypeGraph
//   - Plan: per-package implementations plus diagnostics
//   - Implementation: the statements (or placeholder) for one record
package derive
