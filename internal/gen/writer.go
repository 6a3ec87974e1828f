package gen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"merge-generator/internal/analyze"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrOutputConflict is returned when several generated files would be
// written to the same path.
var ErrOutputConflict = errors.New("generated files share an output path")

// WriteFiles writes all generated files. Files go to their package
// directories unless outputDir is set, in which case they are all written
// there. The directory is created if it doesn't exist. Nothing is written
// when two files map to the same path.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	paths, err := targets(files, outputDir)
	if err != nil {
		return err
	}

	for i, file := range files {
		outputPath := paths[i]

		err := os.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", outputPath, err)
		}
	}

	return nil
}

// Stale returns the paths of the files whose content on disk differs from
// the generated content, including files that do not exist yet.
func Stale(files []GeneratedFile, outputDir string) ([]string, error) {
	paths, err := targets(files, outputDir)
	if err != nil {
		return nil, err
	}

	var stale []string

	for i, file := range files {
		outputPath := paths[i]

		existing, err := os.ReadFile(outputPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, outputPath)
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", outputPath, err)
		case !bytes.Equal(existing, file.Content):
			stale = append(stale, outputPath)
		}
	}

	return stale, nil
}

// Orphans returns the generated files left in loaded packages that no longer
// produce one, such as a package whose last marked record was removed. Only
// files starting with Header are reported.
func Orphans(graph *analyze.TypeGraph, files []GeneratedFile, filename string) ([]string, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	produced := make(map[string]bool, len(files))
	for _, f := range files {
		produced[f.Path()] = true
	}

	var orphans []string

	for _, pkg := range graph.Packages {
		if pkg.Dir == "" {
			continue
		}

		path := filepath.Join(pkg.Dir, filename)
		if produced[path] {
			continue
		}

		generated, err := hasHeader(path)
		if err != nil {
			return nil, err
		}
		if generated {
			orphans = append(orphans, path)
		}
	}

	slices.Sort(orphans)

	return orphans, nil
}

// RemoveFiles deletes the given files.
func RemoveFiles(paths []string) error {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing file %s: %w", path, err)
		}
	}

	return nil
}

func hasHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading file %s: %w", path, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	return strings.TrimRight(line, "\r\n") == Header, nil
}

// targets returns the output path of every file.
func targets(files []GeneratedFile, outputDir string) ([]string, error) {
	paths := make([]string, len(files))
	owner := make(map[string]string, len(files))

	for i, file := range files {
		path := file.Path()
		if outputDir != "" {
			path = filepath.Join(outputDir, file.Filename)
		}

		if other, ok := owner[path]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, other, file.Package, path)
		}
		owner[path] = file.Package
		paths[i] = path
	}

	return paths, nil
}
