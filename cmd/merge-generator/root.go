package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"merge-generator/internal/analyze"
	"merge-generator/internal/config"
	"merge-generator/internal/derive"
	"merge-generator/internal/diagnostic"
	"merge-generator/internal/gen"
	"merge-generator/merge"
)

// errDerivationFailed is returned after error diagnostics have been printed.
var errDerivationFailed = errors.New("derivation failed")

// app holds the flag values and state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dir          string
	configPath   string
	verbose      bool
	directive    string
	filename     string
	output       string
	mergePackage string
	assertions   bool
	comments     bool
	debugDir     string

	logger *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "merge-generator",
		Short: "Generate Merge methods for configuration records",
		Long: `merge-generator derives field-by-field Merge methods for struct types
marked with a //merge:derive directive.

Field tags select how each field is merged:
  merge:"skip"                      leave the field untouched
  merge:"strategy=strategy.Append"  call a strategy function
Fields without a strategy call their own Merge method. A record default
strategy may be given on the directive: //merge:derive strategy=pkg.Func.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	a.bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(a.newGenCmd(), a.newCheckCmd())

	return rootCmd
}

func (a *app) bindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&a.dir, "dir", "C", "", "run as if started in this directory")
	flags.StringVar(&a.configPath, "config", "", "configuration file (default: "+config.FileName+" in the working directory)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.directive, "directive", analyze.DefaultDirective, "directive marking records, without the leading //")
	flags.StringVar(&a.filename, "filename", gen.DefaultFilename, "generated file name in each package")
	flags.StringVarP(&a.output, "output", "o", "", "write generated files to this directory instead of the package directories")
	flags.StringVar(&a.mergePackage, "merge-package", gen.DefaultMergePkgPath, "import path of the package declaring Merger")
	flags.BoolVar(&a.assertions, "assertions", true, "emit compile-time Merger assertions")
	flags.BoolVar(&a.comments, "comments", true, "emit explanatory comments")
	flags.StringVar(&a.debugDir, "debug-dir", "", "write unformatted sources here when formatting fails")
}

func (a *app) initLogger(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	return nil
}

// settings resolves flags, the configuration file and the defaults.
func (a *app) settings(flags *pflag.FlagSet, patterns []string) (config.Config, error) {
	var (
		file config.Config
		err  error
	)
	if a.configPath != "" {
		file, err = config.LoadFile(a.path(a.configPath))
	} else {
		file, err = config.Find(a.path("."))
	}
	if err != nil {
		return config.Config{}, err
	}

	layer := config.Config{
		Patterns:     patterns,
		Directive:    changed(flags, "directive", a.directive),
		Filename:     changed(flags, "filename", a.filename),
		Output:       changed(flags, "output", a.output),
		MergePackage: changed(flags, "merge-package", a.mergePackage),
		Assertions:   changed(flags, "assertions", a.assertions),
		Comments:     changed(flags, "comments", a.comments),
		DebugDir:     changed(flags, "debug-dir", a.debugDir),
		Verbose:      changed(flags, "verbose", a.verbose),
	}

	settings := config.Resolve(layer, file)
	if settings.Verbose.OrElse(false) && !a.verbose {
		a.verbose = true
		if err := a.initLogger(nil, nil); err != nil {
			return config.Config{}, err
		}
	}

	a.logger.Debug("resolved settings",
		zap.String("config", file.Source),
		zap.Strings("patterns", settings.Patterns))

	return settings, nil
}

// changed returns v when the flag was set on the command line.
func changed[T any](flags *pflag.FlagSet, name string, v T) merge.Option[T] {
	if flags.Changed(name) {
		return merge.Some(v)
	}

	return merge.None[T]()
}

func (a *app) path(p string) string {
	if a.dir == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(a.dir, p)
}

// result is the outcome of one load, derive and generate pass.
type result struct {
	plan  *derive.Plan
	files []gen.GeneratedFile
	// orphans are generated files of loaded packages that no longer
	// produce one. They are only looked for without an output directory.
	orphans []string
}

// run loads, derives and generates. Files are returned even when derivation
// reported errors; they then hold placeholders.
func (a *app) run(settings config.Config) (*result, error) {
	opts := append(settings.AnalyzerOptions(a.logger), analyze.WithDir(a.dir))

	graph, err := analyze.NewAnalyzer(opts...).LoadPackages(settings.Patterns...)
	if err != nil {
		return nil, err
	}

	plan, err := derive.NewDeriver(graph, settings.DeriveConfig(a.logger)).Derive()
	if err != nil {
		return nil, err
	}

	genConfig := settings.GeneratorConfig(a.logger)
	files, err := gen.NewGenerator(genConfig).Generate(plan)
	if err != nil {
		return nil, err
	}

	res := &result{plan: plan, files: files}
	if settings.Output.OrElse("") == "" {
		res.orphans, err = gen.Orphans(graph, files, genConfig.Filename)
		if err != nil {
			return nil, err
		}
	}

	a.logger.Debug("derivation finished",
		zap.Int("packages", len(plan.Packages)),
		zap.Int("errors", len(plan.Diagnostics.Errors)),
		zap.Int("warnings", len(plan.Diagnostics.Warnings)),
		zap.Int("orphans", len(res.orphans)))

	return res, nil
}

func (a *app) printDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintln(a.stderr, d.String())
	}

	if n := len(diags.Errors) + len(diags.Warnings); n > 0 {
		fmt.Fprintf(a.stderr, "%d error(s), %d warning(s)\n", len(diags.Errors), len(diags.Warnings))
	}
}
