// Package merge provides the Merge contract used to combine configuration
// values coming from several sources.
//
// A type takes part in merging by implementing Merger on its pointer:
//
//	func (c *Config) Merge(other Config)
//
// Merge mutates the receiver and consumes other. Implementations are
// usually generated by merge-generator from `merge` struct tags, with the
// strategy functions of package strategy doing the per-field work.
//
// Key types:
//   - Merger: the single-method merge contract
//   - Option: an optional value whose built-in Merge keeps the first value set
//
// Composite operations:
//   - From: merge and return, for builder-style chaining
//   - Precedence: three sources in decreasing precedence
//   - Chain: any number of sources in decreasing precedence
package merge
