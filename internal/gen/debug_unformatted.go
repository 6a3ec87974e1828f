package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted dumps the source that failed to format into dir.
// Every package generates a file with the same name, so the dump is named
// after the package path: example.com/a/b -> example.com_a_b.merge_gen.unformatted.go.
// Failures are ignored by callers.
func writeDebugUnformatted(dir string, file *GeneratedFile, content []byte) error {
	if dir == "" || file.Filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	prefix := strings.NewReplacer("/", "_", `\`, "_").Replace(file.Package)
	if prefix != "" {
		prefix += "."
	}
	name := prefix + strings.TrimSuffix(file.Filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, name), content, filePerm)
}
