package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"merge-generator/internal/analyze"
	"merge-generator/internal/derive"
	"merge-generator/internal/gen"
	"merge-generator/merge"
	_ "merge-generator/strategy"
)

//go:generate go run merge-generator/cmd/merge-generator gen .

// FileName is the configuration file looked up in the working directory.
const FileName = ".mergegen.yaml"

// Config holds generator settings. Empty options mean "not set by this
// layer".
//
//merge:derive
type Config struct {
	// Patterns are the package patterns to process.
	Patterns []string `yaml:"patterns,omitempty" merge:"strategy=strategy.OverwriteEmpty"`
	// Directive marks records for derivation (without the leading //).
	Directive merge.Option[string] `yaml:"directive,omitempty"`
	// Filename is the generated file name in each package.
	Filename merge.Option[string] `yaml:"filename,omitempty"`
	// Output writes all generated files to one directory instead of their
	// package directories.
	Output merge.Option[string] `yaml:"output,omitempty"`
	// MergePackage is the import path of the package declaring Merger.
	MergePackage merge.Option[string] `yaml:"merge_package,omitempty"`
	// Assertions enables compile-time Merger assertions.
	Assertions merge.Option[bool] `yaml:"assertions,omitempty"`
	// Comments enables explanatory comments in generated code.
	Comments merge.Option[bool] `yaml:"comments,omitempty"`
	// DebugDir receives unformatted sources when formatting fails.
	DebugDir merge.Option[string] `yaml:"debug_dir,omitempty"`
	// Verbose enables debug logging.
	Verbose merge.Option[bool] `yaml:"verbose,omitempty"`

	// Source is the file this layer was read from. It is not merged.
	Source string `yaml:"-" merge:"skip"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Patterns:     []string{"."},
		Directive:    merge.Some(analyze.DefaultDirective),
		Filename:     merge.Some(gen.DefaultFilename),
		Output:       merge.Some(""),
		MergePackage: merge.Some(gen.DefaultMergePkgPath),
		Assertions:   merge.Some(true),
		Comments:     merge.Some(true),
		DebugDir:     merge.Some(""),
		Verbose:      merge.Some(false),
	}
}

// Resolve combines the flag layer with the file layer (which may be the zero
// Config) and the defaults.
func Resolve(flags, file Config) Config {
	return merge.Precedence(flags, file, Defaults())
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

// Find loads FileName from dir. A missing file yields the zero Config.
func Find(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	return LoadFile(path)
}

// Parse parses YAML data into a Config. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// Marshal serializes a Config to YAML. Unset options are omitted.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// AnalyzerOptions returns the analyzer options for the resolved settings.
func (c Config) AnalyzerOptions(logger *zap.Logger) []analyze.Option {
	return []analyze.Option{
		analyze.WithDirective(c.Directive.OrElse(analyze.DefaultDirective)),
		analyze.WithLogger(logger),
	}
}

// DeriveConfig returns the derivation configuration for the resolved
// settings.
func (c Config) DeriveConfig(logger *zap.Logger) derive.Config {
	cfg := derive.DefaultConfig()
	cfg.Directive = c.Directive.OrElse(cfg.Directive)
	cfg.Logger = logger

	return cfg
}

// GeneratorConfig returns the generator configuration for the resolved
// settings.
func (c Config) GeneratorConfig(logger *zap.Logger) gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	cfg.Filename = c.Filename.OrElse(cfg.Filename)
	cfg.MergePkgPath = c.MergePackage.OrElse(cfg.MergePkgPath)
	cfg.Assertions = c.Assertions.OrElse(cfg.Assertions)
	cfg.GenerateComments = c.Comments.OrElse(cfg.GenerateComments)
	cfg.DebugDir = c.DebugDir.OrElse("")
	cfg.Logger = logger

	return cfg
}
