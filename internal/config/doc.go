// Package config loads merge-generator settings.
//
// Settings come from three layers, highest precedence first: command-line
// flags, an optional .mergegen.yaml file and built-in defaults. Every layer
// is a Config whose unset values are empty options; the layers are combined
// with merge.Precedence through the derived Merge method in merge_gen.go.
package config
