package main

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"merge-generator/internal/diagnostic"
	"merge-generator/internal/gen"
)

var errStale = errors.New("generated files are out of date")

// checkReport is the --json output of check.
type checkReport struct {
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	Stale       []string                `json:"stale"`
	Orphaned    []string                `json:"orphaned"`
}

func (a *app) newCheckCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report derivation problems and stale generated files",
		Long: `Derives the given packages (default ".") without writing anything.
Exits non-zero when a diagnostic error is found, a generated file differs
from what gen would write, or a generated file is left in a package that no
longer has marked records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings(cmd.Flags(), args)
			if err != nil {
				return err
			}

			res, err := a.run(settings)
			if err != nil {
				return err
			}
			plan := res.plan

			stale, err := gen.Stale(res.files, a.outputDir(settings.Output.OrElse("")))
			if err != nil {
				return err
			}

			if asJSON {
				report := checkReport{
					Diagnostics: plan.Diagnostics.All(),
					Stale:       stale,
					Orphaned:    res.orphans,
				}
				if report.Diagnostics == nil {
					report.Diagnostics = []diagnostic.Diagnostic{}
				}
				if report.Stale == nil {
					report.Stale = []string{}
				}
				if report.Orphaned == nil {
					report.Orphaned = []string{}
				}

				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
			} else {
				a.printDiagnostics(&plan.Diagnostics)
				for _, path := range stale {
					fmt.Fprintf(a.stderr, "stale: %s\n", path)
				}
				for _, path := range res.orphans {
					fmt.Fprintf(a.stderr, "orphaned: %s\n", path)
				}
			}

			switch {
			case plan.Diagnostics.HasErrors():
				return fmt.Errorf("%w: %d error(s)", errDerivationFailed, len(plan.Diagnostics.Errors))
			case len(stale)+len(res.orphans) > 0:
				return fmt.Errorf("%w: %d file(s)", errStale, len(stale)+len(res.orphans))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report on stdout")

	return cmd
}
