package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"merge-generator/internal/diagnostic"
	"merge-generator/internal/gen"
	"merge-generator/merge"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestCheck_UpToDate(t *testing.T) {
	_, stderr, err := execute(t, "check", "merge-generator/examples/user", "merge-generator/internal/config")
	require.NoError(t, err, stderr)
	assert.Empty(t, stderr)
}

func TestCheck_JSONReport(t *testing.T) {
	stdout, _, err := execute(t, "check", "--json", "./testdata/bad")
	require.ErrorIs(t, err, errDerivationFailed)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	require.Len(t, report.Diagnostics, 1)
	d := report.Diagnostics[0]
	assert.Equal(t, diagnostic.CodeUnknownAttribute, d.Code)
	assert.Equal(t, "Settings", d.Record)
	assert.Equal(t, "Name", d.FieldPath)
	assert.Equal(t, 5, d.Pos.Line)
	assert.Equal(t, []string{`did you mean "skip"?`}, d.Suggestions)

	require.Len(t, report.Stale, 1)
	assert.Equal(t, gen.DefaultFilename, filepath.Base(report.Stale[0]))
}

func TestGen_WritesPlaceholderAndFails(t *testing.T) {
	out := t.TempDir()

	_, stderr, err := execute(t, "gen", "-o", out, "./testdata/bad")
	require.ErrorIs(t, err, errDerivationFailed)
	assert.Contains(t, stderr, "bad.go:5:")
	assert.Contains(t, stderr, "[unknown-attribute] Settings.Name")
	assert.Contains(t, stderr, "1 error(s), 0 warning(s)")

	content, err := os.ReadFile(filepath.Join(out, gen.DefaultFilename))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (s *Settings) Merge(other Settings) {")
	assert.Contains(t, string(content), `panic("merge-generator: Merge not implemented for Settings: derivation failed")`)
}

func TestGen_OutputDirRejectsSeveralPackages(t *testing.T) {
	out := t.TempDir()

	_, _, err := execute(t, "gen", "-o", out, "merge-generator/examples/user", "merge-generator/internal/config")
	require.ErrorIs(t, err, gen.ErrOutputConflict)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGen_RemovesOrphanedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/settings\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.go"),
		[]byte("package settings\n\ntype Settings struct {\n\tName string\n}\n"), 0o644))

	orphan := filepath.Join(dir, gen.DefaultFilename)
	require.NoError(t, os.WriteFile(orphan,
		[]byte(gen.Header+"\n\npackage settings\n\nfunc (s *Settings) Merge(other Settings) {}\n"), 0o644))

	stdout, stderr, err := execute(t, "-C", dir, "check", "--json", ".")
	require.ErrorIs(t, err, errStale, stderr)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Empty(t, report.Stale)
	require.Len(t, report.Orphaned, 1)
	assert.Equal(t, gen.DefaultFilename, filepath.Base(report.Orphaned[0]))

	_, stderr, err = execute(t, "-C", dir, "gen", ".")
	require.NoError(t, err, stderr)
	_, err = os.Stat(orphan)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, stderr, err = execute(t, "-C", dir, "check", ".")
	require.NoError(t, err, stderr)
}

func TestGen_Dump(t *testing.T) {
	stdout, _, err := execute(t, "gen", "--dump", "-o", t.TempDir(), "merge-generator/examples/user")
	require.NoError(t, err)
	assert.Contains(t, stdout, "derive.Plan")
	assert.Contains(t, stdout, `Name: (string) (len=4) "User"`)
}

func TestSettings_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mergegen.yaml"),
		[]byte("filename: file_gen.go\ncomments: false\npatterns: [./...]\n"), 0o644))

	a := &app{logger: zap.NewNop()}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.bindFlags(flags)
	require.NoError(t, flags.Parse([]string{"-C", dir, "--filename", "flag_gen.go"}))

	settings, err := a.settings(flags, nil)
	require.NoError(t, err)

	assert.Equal(t, merge.Some("flag_gen.go"), settings.Filename)
	assert.Equal(t, merge.Some(false), settings.Comments)
	assert.Equal(t, merge.Some(true), settings.Assertions)
	assert.Equal(t, []string{"./..."}, settings.Patterns)

	settings, err = a.settings(flags, []string{"./cmd/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{"./cmd/..."}, settings.Patterns)
}

func TestSettings_MissingConfigFile(t *testing.T) {
	a := &app{logger: zap.NewNop()}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.bindFlags(flags)
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

	_, err := a.settings(flags, nil)
	require.Error(t, err)
}

func TestChanged(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	n := flags.Int("n", 3, "")
	require.NoError(t, flags.Parse(nil))
	assert.True(t, changed(flags, "n", *n).IsNone())

	require.NoError(t, flags.Parse([]string{"--n=5"}))
	assert.Equal(t, merge.Some(5), changed(flags, "n", *n))
}
