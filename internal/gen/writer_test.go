package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merge-generator/internal/analyze"
)

func TestWriteFilesAndStale(t *testing.T) {
	dir := t.TempDir()

	files := []GeneratedFile{
		{Dir: filepath.Join(dir, "a"), Filename: "merge_gen.go", Package: "example.com/a", Content: []byte("package a\n")},
		{Dir: filepath.Join(dir, "b"), Filename: "merge_gen.go", Package: "example.com/b", Content: []byte("package b\n")},
	}

	stale, err := Stale(files, "")
	require.NoError(t, err)
	assert.Equal(t, []string{files[0].Path(), files[1].Path()}, stale)

	require.NoError(t, WriteFiles(files, ""))

	content, err := os.ReadFile(files[0].Path())
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(content))

	stale, err = Stale(files, "")
	require.NoError(t, err)
	assert.Empty(t, stale)

	files[1].Content = []byte("package b\n\nvar X int\n")
	stale, err = Stale(files, "")
	require.NoError(t, err)
	assert.Equal(t, []string{files[1].Path()}, stale)
}

func TestWriteFiles_OutputDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	files := []GeneratedFile{{Dir: "/does/not/matter", Filename: "merge_gen.go", Content: []byte("package a\n")}}
	require.NoError(t, WriteFiles(files, out))

	_, err := os.Stat(filepath.Join(out, "merge_gen.go"))
	require.NoError(t, err)
}

func TestWriteFiles_OutputDirConflict(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	files := []GeneratedFile{
		{Dir: filepath.Join(dir, "a"), Filename: "merge_gen.go", Package: "example.com/a", Content: []byte("package a\n")},
		{Dir: filepath.Join(dir, "b"), Filename: "merge_gen.go", Package: "example.com/b", Content: []byte("package b\n")},
	}

	err := WriteFiles(files, out)
	require.ErrorIs(t, err, ErrOutputConflict)
	assert.Contains(t, err.Error(), "example.com/a and example.com/b")

	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Stale(files, out)
	require.ErrorIs(t, err, ErrOutputConflict)

	require.NoError(t, WriteFiles(files, ""))
	stale, err := Stale(files, "")
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestOrphans(t *testing.T) {
	dir := t.TempDir()

	write := func(pkg, content string) string {
		path := filepath.Join(dir, pkg, DefaultFilename)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	generated := Header + "\n\npackage a\n"
	write("current", generated)
	orphan := write("orphan", generated)
	write("handwritten", "package handwritten\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	graph := analyze.NewTypeGraph()
	for _, name := range []string{"current", "orphan", "handwritten", "empty"} {
		graph.Packages["example.com/"+name] = &analyze.PackageInfo{
			Path: "example.com/" + name,
			Name: name,
			Dir:  filepath.Join(dir, name),
		}
	}

	files := []GeneratedFile{{Dir: filepath.Join(dir, "current"), Filename: DefaultFilename, Package: "example.com/current"}}

	orphans, err := Orphans(graph, files, "")
	require.NoError(t, err)
	assert.Equal(t, []string{orphan}, orphans)

	require.NoError(t, RemoveFiles(orphans))
	_, err = os.Stat(orphan)
	assert.ErrorIs(t, err, os.ErrNotExist)

	orphans, err = Orphans(graph, files, DefaultFilename)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	require.NoError(t, RemoveFiles([]string{orphan}))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	file := &GeneratedFile{Filename: "merge_gen.go", Package: "example.com/a/b"}
	require.NoError(t, writeDebugUnformatted(dir, file, []byte("package b\nfunc {")))

	content, err := os.ReadFile(filepath.Join(dir, "example.com_a_b.merge_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package b\nfunc {", string(content))

	require.NoError(t, writeDebugUnformatted("", file, nil))
}
