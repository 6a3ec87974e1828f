package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"merge-generator/internal/analyze"
	"merge-generator/internal/attr"
	"merge-generator/internal/derive"
)

// DefaultFilename is the name of the generated file in each package.
const DefaultFilename = "merge_gen.go"

// DefaultMergePkgPath is the import path of the package declaring Merger.
const DefaultMergePkgPath = "merge-generator/merge"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the generated file in each package directory.
	Filename string
	// MergePkgPath is the import path of the package declaring Merger.
	MergePkgPath string
	// Assertions enables compile-time Merger assertions for non-generic records.
	Assertions bool
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
	// DebugDir receives the unformatted source when formatting fails.
	DebugDir string
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         DefaultFilename,
		MergePkgPath:     DefaultMergePkgPath,
		Assertions:       true,
		GenerateComments: true,
	}
}

// Generator generates Go code from a derivation plan.
type Generator struct {
	config GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}
	if config.MergePkgPath == "" {
		config.MergePkgPath = DefaultMergePkgPath
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "merge_gen.go").
	Filename string
	// Package is the import path of the package.
	Package string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the location of the file inside its package directory.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates one file per package of the plan. Packages without any
// emitted method produce no file.
func (g *Generator) Generate(p *derive.Plan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, pp := range p.Packages {
		file, err := g.generatePackage(pp)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pp.Package.Path, err)
		}
		if file == nil {
			continue
		}

		g.logger.Debug("generated file",
			zap.String("package", file.Package),
			zap.String("path", file.Path()),
			zap.Int("bytes", len(file.Content)))

		files = append(files, *file)
	}

	return files, nil
}

type importSpec struct {
	Alias string
	Path  string
}

type methodData struct {
	Doc          string
	Receiver     string
	Param        string
	Type         string
	Lines        []string
	Placeholder  bool
	PanicMessage string
}

type templateData struct {
	PackageName string
	Imports     []importSpec
	MergerType  string
	Assertions  []string
	Methods     []methodData
}

func (g *Generator) generatePackage(pp *derive.PackagePlan) (*GeneratedFile, error) {
	var impls []*derive.Implementation
	for _, impl := range pp.Implementations {
		if impl.Emits() {
			impls = append(impls, impl)
		}
	}
	if len(impls) == 0 {
		return nil, nil
	}

	imports := newImportSet()

	data := &templateData{PackageName: pp.Package.Name}

	if g.config.Assertions && slices.ContainsFunc(impls, func(i *derive.Implementation) bool {
		return len(i.Record.TypeParams) == 0
	}) {
		if pp.Package.Path == g.config.MergePkgPath {
			data.MergerType = "Merger"
		} else {
			name := imports.add(analyze.Import{Name: "merge", Path: g.config.MergePkgPath})
			data.MergerType = name + ".Merger"
		}
	}

	for _, impl := range impls {
		qualifiers := g.qualifiers(impl, imports)

		if data.MergerType != "" && len(impl.Record.TypeParams) == 0 {
			data.Assertions = append(data.Assertions, impl.Record.Name())
		}

		data.Methods = append(data.Methods, g.method(impl, qualifiers))
	}

	data.Imports = imports.specs()

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Dir:      pp.Package.Dir,
		Filename: g.config.Filename,
		Package:  pp.Package.Path,
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, file, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	return file, nil
}

// qualifiers maps the qualifiers used by the statements of impl, which are
// names in the declaring file, to the names the generated file imports them
// under. Imports only a record default nobody uses are left out.
func (g *Generator) qualifiers(impl *derive.Implementation, imports *importSet) map[string]string {
	qualifiers := make(map[string]string)

	for _, s := range impl.Merged() {
		ref := s.Policy.Strategy
		if ref == nil || ref.Qualifier == "" {
			continue
		}
		if _, ok := qualifiers[ref.Qualifier]; ok {
			continue
		}

		for _, imp := range impl.Imports {
			if imp.Name == ref.Qualifier {
				qualifiers[ref.Qualifier] = imports.add(imp)
				break
			}
		}
	}

	return qualifiers
}

func (g *Generator) method(impl *derive.Implementation, qualifiers map[string]string) methodData {
	rec := impl.Record

	typ := rec.Name()
	if len(rec.TypeParams) > 0 {
		typ += "[" + strings.Join(rec.TypeParams, ", ") + "]"
	}

	taken := make(map[string]bool)
	for _, name := range qualifiers {
		taken[name] = true
	}
	for _, tp := range rec.TypeParams {
		taken[tp] = true
	}

	param := pickName(taken, "other", "src", "right")
	taken[param] = true
	recv := pickName(taken, receiverName(rec.Name()), "m", "left")

	m := methodData{
		Receiver: recv,
		Param:    param,
		Type:     typ,
	}

	if impl.Placeholder {
		m.Placeholder = true
		m.PanicMessage = strconv.Quote(fmt.Sprintf(
			"merge-generator: Merge not implemented for %s: derivation failed", rec.Name()))
		if g.config.GenerateComments {
			m.Doc = fmt.Sprintf("Merge is a placeholder: deriving it for %s failed. It panics when called.", rec.Name())
		}

		return m
	}

	if g.config.GenerateComments {
		m.Doc = fmt.Sprintf("Merge merges %s into %s field by field.", param, recv)
	}

	for _, s := range impl.Statements {
		field := s.Field.Name
		left, right := recv+"."+field, param+"."+field

		switch s.Policy.Kind {
		case attr.PolicySkip:
			if g.config.GenerateComments {
				m.Lines = append(m.Lines, "// "+field+": skipped")
			}
		case attr.PolicyStrategy:
			m.Lines = append(m.Lines, fmt.Sprintf("%s(&%s, %s)", strategyExpr(s.Policy.Strategy, qualifiers), left, right))
		case attr.PolicyRecurse:
			m.Lines = append(m.Lines, fmt.Sprintf("%s.Merge(%s)", left, right))
		}
	}

	return m
}

func strategyExpr(ref *attr.StrategyRef, qualifiers map[string]string) string {
	if ref.Qualifier == "" {
		return ref.Name
	}

	if name, ok := qualifiers[ref.Qualifier]; ok {
		return name + "." + ref.Name
	}

	return ref.String()
}

// receiverName returns the lowercased first letter of a type name.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || r == '_' {
		return "m"
	}

	return string(unicode.ToLower(r))
}

func pickName(taken map[string]bool, candidates ...string) string {
	for _, c := range candidates {
		if !taken[c] {
			return c
		}
	}

	base := candidates[len(candidates)-1]
	for i := 2; ; i++ {
		if c := base + strconv.Itoa(i); !taken[c] {
			return c
		}
	}
}

// importSet allocates one name per import path within a generated file.
type importSet struct {
	names map[string]string // path -> name used in the file
	used  map[string]string // name -> path
	order []analyze.Import
}

func newImportSet() *importSet {
	return &importSet{
		names: make(map[string]string),
		used:  make(map[string]string),
	}
}

// add registers imp and returns the name the generated file refers to it by.
// A name already taken by another path gets a numeric suffix.
func (s *importSet) add(imp analyze.Import) string {
	if name, ok := s.names[imp.Path]; ok {
		return name
	}

	name := imp.Name
	for i := 2; s.used[name] != ""; i++ {
		name = imp.Name + strconv.Itoa(i)
	}

	s.names[imp.Path] = name
	s.used[name] = imp.Path
	s.order = append(s.order, analyze.Import{
		Name:     name,
		Path:     imp.Path,
		Explicit: imp.Explicit || name != imp.Name,
	})

	return name
}

func (s *importSet) specs() []importSpec {
	specs := make([]importSpec, 0, len(s.order))
	for _, imp := range s.order {
		spec := importSpec{Path: imp.Path}
		if imp.Explicit {
			spec.Alias = imp.Name
		}
		specs = append(specs, spec)
	}

	slices.SortFunc(specs, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return specs
}

// Header is the first line of every generated file.
const Header = "// Code generated by merge-generator. DO NOT EDIT."

var fileTemplate = template.Must(template.New("merge").Parse(Header + `

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{- if .Assertions}}
var (
{{range .Assertions}}	_ {{$.MergerType}}[{{.}}] = (*{{.}})(nil)
{{end}})
{{end}}
{{- range .Methods}}
{{if .Doc}}// {{.Doc}}
{{end}}func ({{.Receiver}} *{{.Type}}) Merge({{.Param}} {{.Type}}) {
{{- if .Placeholder}}
	panic({{.PanicMessage}})
{{else}}
{{range .Lines}}	{{.}}
{{end}}{{end -}}
}
{{end -}}
`))
