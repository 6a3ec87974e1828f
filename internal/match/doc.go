// Package match provides edit-distance helpers used to suggest the intended
// spelling of an unrecognized attribute key.
//
// Key functions:
//   - Distance: Levenshtein edit distance between two strings
//   - Closest: the nearest candidate within a distance budget
package match
