package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"merge-generator/internal/gen"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) newGenCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate Merge methods",
		Long: `Loads the given packages (default ".") and writes a merge_gen.go file
into every package with marked records. A generated file left in a package
that no longer has marked records is removed.

Records whose derivation fails get a placeholder Merge that panics; the
command then exits non-zero.`,
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

			if dump {
				dumpConfig.Fdump(a.stdout, plan)
			}

			if err := gen.WriteFiles(res.files, a.outputDir(settings.Output.OrElse(""))); err != nil {
				return err
			}

			for _, f := range res.files {
				a.logger.Info("wrote file", zap.String("package", f.Package), zap.String("path", f.Path()))
			}

			if err := gen.RemoveFiles(res.orphans); err != nil {
				return err
			}
			for _, path := range res.orphans {
				a.logger.Info("removed orphaned file", zap.String("path", path))
			}

			a.printDiagnostics(&plan.Diagnostics)
			if plan.Diagnostics.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", errDerivationFailed, len(plan.Diagnostics.Errors))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the derivation plan")

	return cmd
}

func (a *app) outputDir(output string) string {
	if output == "" {
		return ""
	}

	return a.path(output)
}
