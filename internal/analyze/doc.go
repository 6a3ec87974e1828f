// Package analyze provides package loading and record extraction for merge
// derivation.
//
// It uses golang.org/x/tools/go/packages to parse Go packages and walks
// their syntax trees for type declarations carrying the derive directive
// (//merge:derive by default). No type checking is needed: derivation works
// on declared field names, struct tags and the imports of the declaring
// file, so packages that do not compile yet (because their Merge methods
// have not been generated) load fine.
//
// Key types:
//   - TypeID: package import path + type name
//   - RecordDecl: a marked type declaration with its fields and file imports
//   - FieldDecl: one declared field name, its tag and position
//   - Text: a piece of source text with the position of its first byte
package analyze
