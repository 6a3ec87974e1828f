// Package main provides the CLI entrypoint for merge-generator.
//
// merge-generator derives Merge methods for configuration records:
//   - Loads Go packages and finds types marked //merge:derive
//   - Reads merge:"skip" and merge:"strategy=pkg.Func" field tags
//   - Writes merge_gen.go with one Merge method per record
//
// Use it from go generate:
//
//	//go:generate go run merge-generator/cmd/merge-generator gen .
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "merge-generator:", err)
		os.Exit(1)
	}
}
