// Package attr parses merge annotations and resolves per-field merge policy.
//
// Field annotations live in the merge struct tag:
//
//	Name   string   `merge:"skip"`
//	Groups []string `merge:"strategy=strategy.Append"`
//
// Record annotations are the arguments of the derive directive:
//
//	//merge:derive strategy=strategy.OverwriteZero
//
// Entries are comma separated. Spaces around entries and around '=' are
// ignored. A strategy is an identifier, optionally qualified by an import
// name of the declaring file.
//
// Key types:
//   - FieldAttrs: parsed annotations of one field
//   - StrategyRef: a reference to a strategy function
//   - Policy: how one field is merged (skip, strategy or recurse)
//   - Error: a positioned annotation error
package attr
