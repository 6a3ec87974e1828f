// Package diagnostic provides structured, location-attributed errors and
// warnings for merge derivation.
//
// Every diagnostic carries a stable code, the source position of the
// offending attribute or declaration, and the record and field it concerns:
//   - unknown-attribute: an attribute key the generator does not recognize
//   - malformed-strategy: a strategy entry without "=" or with an invalid path
//   - malformed-attribute: a bare attribute given a value
//   - duplicate-attribute: the same entry given twice
//   - unknown-qualifier: a strategy package qualifier that is not imported
//   - unsupported-target: a derive directive on a type without fields
//   - blank-field-attribute: merge attributes on a blank field (warning)
package diagnostic
