package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"merge-generator/internal/common"
)

// LoadMode specifies what information to load from packages.
// Types are not needed and a package whose Merge methods are missing still
// loads.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// DefaultDirective marks a type declaration for derivation.
const DefaultDirective = "merge:derive"

// Analyzer loads Go packages and collects the records marked for derivation.
type Analyzer struct {
	graph     *TypeGraph
	directive string
	dir       string
	logger    *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDirective sets the directive (without the leading //) that marks
// records.
func WithDirective(directive string) Option {
	return func(a *Analyzer) {
		a.directive = directive
	}
}

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		directive: DefaultDirective,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// LoadPackages loads the specified packages and collects their marked records.
// Patterns are standard Go package patterns (e.g., "./...", "merge-generator/examples/user").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Type errors cannot occur without NeedTypes; anything else is fatal.
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind != packages.TypeError {
				errs = append(errs, e)
			}
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	var loaded []*PackageInfo
	for _, pkg := range pkgs {
		info, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
		loaded = append(loaded, info)
	}

	if err := a.resolveImportNames(loaded); err != nil {
		return nil, err
	}

	return a.graph, nil
}

// ParseSource parses a single file as its own package and collects its
// marked records. src is passed to go/parser; nil reads filename from disk.
// Unaliased imports are named after the last element of their path.
func (a *Analyzer) ParseSource(pkgPath, filename string, src any) (*TypeGraph, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	info := &PackageInfo{
		Path: pkgPath,
		Name: file.Name.Name,
		Dir:  filepath.Dir(filename),
	}
	a.processFile(fset, file, info)
	a.register(info)

	for _, rec := range info.Records {
		for i := range rec.Imports {
			if rec.Imports[i].Name == "" {
				rec.Imports[i].Name = common.PkgAlias(rec.Imports[i].Path)
			}
		}
	}

	return a.graph, nil
}

// processPackage collects the marked records of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) (*PackageInfo, error) {
	info := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}
	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	if pkg.Fset == nil && len(pkg.Syntax) > 0 {
		return nil, errors.New("syntax loaded without a file set")
	}

	for _, file := range pkg.Syntax {
		a.processFile(pkg.Fset, file, info)
	}

	a.register(info)
	a.logger.Debug("loaded package",
		zap.String("package", info.Path),
		zap.Int("files", len(pkg.Syntax)),
		zap.Int("records", len(info.Records)))

	return info, nil
}

func (a *Analyzer) register(info *PackageInfo) {
	slices.SortStableFunc(info.Records, func(x, y *RecordDecl) int {
		if c := strings.Compare(x.Pos.Filename, y.Pos.Filename); c != 0 {
			return c
		}

		return x.Pos.Offset - y.Pos.Offset
	})

	for _, rec := range info.Records {
		a.graph.Records[rec.ID] = rec
	}
	a.graph.Packages[info.Path] = info
}

// processFile collects the marked type declarations of one file. Generated
// files are ignored so that a stale merge_gen.go never feeds derivation.
func (a *Analyzer) processFile(fset *token.FileSet, file *ast.File, info *PackageInfo) {
	if ast.IsGenerated(file) {
		return
	}

	filename := fset.Position(file.Package).Filename
	imports := fileImports(file)

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)

			docs := []*ast.CommentGroup{ts.Doc}
			if len(gd.Specs) == 1 && gd.Doc != ts.Doc {
				docs = append(docs, gd.Doc)
			}

			directives := a.directives(fset, docs...)
			if len(directives) == 0 {
				continue
			}

			rec := &RecordDecl{
				ID:         TypeID{PkgPath: info.Path, Name: ts.Name.Name},
				Kind:       declKind(ts),
				Pos:        fset.Position(ts.Name.Pos()),
				Directives: directives,
				Imports:    slices.Clone(imports),
				File:       filename,
			}

			if ts.TypeParams != nil {
				for _, field := range ts.TypeParams.List {
					for _, name := range field.Names {
						rec.TypeParams = append(rec.TypeParams, name.Name)
					}
				}
			}

			if st, ok := ts.Type.(*ast.StructType); ok {
				rec.Fields = structFields(fset, st)
			}

			info.Records = append(info.Records, rec)
		}
	}
}

// directives returns the argument text of every derive directive in docs.
func (a *Analyzer) directives(fset *token.FileSet, docs ...*ast.CommentGroup) []Text {
	prefix := "//" + a.directive

	var out []Text
	for _, doc := range docs {
		if doc == nil {
			continue
		}

		for _, c := range doc.List {
			rest, ok := strings.CutPrefix(c.Text, prefix)
			if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
				continue
			}

			trimmed := strings.TrimLeft(rest, " \t")
			off := len(c.Text) - len(trimmed)
			out = append(out, Text{
				Value: strings.TrimRight(trimmed, " \t"),
				Pos:   fset.Position(c.Slash + token.Pos(off)),
			})
		}
	}

	return out
}

func declKind(ts *ast.TypeSpec) DeclKind {
	if ts.Assign.IsValid() {
		return DeclKindAlias
	}

	switch ts.Type.(type) {
	case *ast.StructType:
		return DeclKindStruct
	case *ast.InterfaceType:
		return DeclKindInterface
	case *ast.StarExpr:
		return DeclKindPointer
	default:
		return DeclKindNamed
	}
}

func structFields(fset *token.FileSet, st *ast.StructType) []FieldDecl {
	var fields []FieldDecl

	for _, f := range st.Fields.List {
		var (
			tag     reflect.StructTag
			tagText Text
		)
		if f.Tag != nil {
			if value, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = reflect.StructTag(value)
				tagText = Text{Value: value, Pos: fset.Position(f.Tag.ValuePos + 1)}
			}
		}

		typ := types.ExprString(f.Type)

		if len(f.Names) == 0 {
			fields = append(fields, FieldDecl{
				Name:     embeddedName(f.Type),
				Index:    len(fields),
				Embedded: true,
				Pos:      fset.Position(f.Type.Pos()),
				Type:     typ,
				Tag:      tag,
				TagText:  tagText,
			})

			continue
		}

		for _, name := range f.Names {
			fields = append(fields, FieldDecl{
				Name:    name.Name,
				Index:   len(fields),
				Pos:     fset.Position(name.Pos()),
				Type:    typ,
				Tag:     tag,
				TagText: tagText,
			})
		}
	}

	return fields
}

// embeddedName returns the field name of an embedded type expression:
// T, *T, pkg.T, *pkg.T and their instantiations.
func embeddedName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e.Name
		case *ast.StarExpr:
			expr = e.X
		case *ast.SelectorExpr:
			return e.Sel.Name
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		default:
			return types.ExprString(expr)
		}
	}
}

// fileImports lists the imports of file usable as qualifiers. Unaliased and
// blank imports are returned with an empty Name until resolved.
func fileImports(file *ast.File) []Import {
	var imports []Import

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := Import{Path: path}
		if spec.Name != nil {
			switch spec.Name.Name {
			case ".":
				continue
			case "_":
				imp.Blank = true
			default:
				imp.Name = spec.Name.Name
				imp.Explicit = true
			}
		}

		imports = append(imports, imp)
	}

	return imports
}

// resolveImportNames fills in the package names of unaliased imports with a
// single name-only load of the imported packages.
func (a *Analyzer) resolveImportNames(loaded []*PackageInfo) error {
	var paths []string
	seen := make(map[string]bool)

	for _, info := range loaded {
		for _, rec := range info.Records {
			for _, imp := range rec.Imports {
				if imp.Name == "" && !seen[imp.Path] {
					seen[imp.Path] = true
					paths = append(paths, imp.Path)
				}
			}
		}
	}

	if len(paths) == 0 {
		return nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		return fmt.Errorf("failed to resolve imports: %w", err)
	}

	names := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Name != "" {
			names[pkg.PkgPath] = pkg.Name
		}
	}

	for _, info := range loaded {
		for _, rec := range info.Records {
			for i := range rec.Imports {
				imp := &rec.Imports[i]
				if imp.Name != "" {
					continue
				}

				if name, ok := names[imp.Path]; ok {
					imp.Name = name
				} else {
					a.logger.Debug("import not resolved", zap.String("path", imp.Path))
					imp.Name = common.PkgAlias(imp.Path)
				}
			}
		}
	}

	return nil
}
