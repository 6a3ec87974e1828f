package derive

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"merge-generator/internal/analyze"
	"merge-generator/internal/attr"
	"merge-generator/internal/diagnostic"
	"merge-generator/internal/match"
)

// Config holds configuration for derivation.
type Config struct {
	// Directive is the directive name used in messages.
	Directive string
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default derivation configuration.
func DefaultConfig() Config {
	return Config{
		Directive: analyze.DefaultDirective,
	}
}

// Deriver derives merge implementations for marked records.
type Deriver struct {
	graph  *analyze.TypeGraph
	config Config
	logger *zap.Logger
}

// NewDeriver creates a new Deriver.
func NewDeriver(graph *analyze.TypeGraph, config Config) *Deriver {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Deriver{
		graph:  graph,
		config: config,
		logger: logger,
	}
}

// Derive derives every record of the graph. Records are processed package by
// package in source order, so the same input always yields the same plan.
func (d *Deriver) Derive() (*Plan, error) {
	if d.graph == nil {
		return nil, errors.New("no type graph")
	}

	paths := make([]string, 0, len(d.graph.Packages))
	for path := range d.graph.Packages {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	plan := &Plan{}
	for _, path := range paths {
		pkg := d.graph.Packages[path]
		if len(pkg.Records) == 0 {
			continue
		}

		pp := &PackagePlan{Package: pkg}
		for _, rec := range pkg.Records {
			impl, diags := d.DeriveRecord(rec)
			pp.Implementations = append(pp.Implementations, impl)
			plan.Diagnostics.Merge(diags)
		}
		plan.Packages = append(plan.Packages, pp)
	}

	return plan, nil
}

// DeriveRecord derives the implementation of a single record. When any error
// diagnostic is produced the implementation is a placeholder.
func (d *Deriver) DeriveRecord(rec *analyze.RecordDecl) (*Implementation, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	impl := &Implementation{Record: rec}

	if rec.Kind != analyze.DeclKindStruct {
		d.unsupported(&diags, rec)
		impl.Placeholder = true
		return impl, diags
	}

	rc := &recordContext{rec: rec, diags: &diags}

	for _, dup := range rec.Directives[min(1, len(rec.Directives)):] {
		diags.AddError(diagnostic.CodeDuplicateAttribute, dup.Pos, rec.Name(), "",
			fmt.Sprintf("duplicate %s directive", d.config.Directive))
	}

	if len(rec.Directives) > 0 {
		ref, errs := attr.ParseDirective(rec.Directives[0])
		rc.report("", errs)
		impl.Default = rc.checkQualifier("", ref)
	}

	parsed := make(map[token.Position]attr.FieldAttrs)

	for _, field := range rec.Fields {
		if field.IsBlank() {
			if _, ok := field.Tag.Lookup(attr.TagKey); ok {
				diags.AddWarning(diagnostic.CodeBlankFieldAttribute, field.TagText.Pos, rec.Name(), field.Name,
					"merge attributes on a blank field are ignored")
			}
			continue
		}

		// Fields declared together share one tag; parse and report it once.
		attrs, ok := parsed[field.TagText.Pos]
		if !ok || !field.TagText.Pos.IsValid() {
			var errs []*attr.Error
			attrs, errs = attr.ParseTag(field.TagText)
			rc.report(field.Name, errs)
			attrs.Strategy = rc.checkQualifier(field.Name, attrs.Strategy)
			parsed[field.TagText.Pos] = attrs
		}

		impl.Statements = append(impl.Statements, Statement{
			Field:  field,
			Policy: attr.Resolve(attrs, impl.Default),
		})
	}

	if diags.HasErrors() {
		impl.Statements = nil
		impl.Placeholder = true
	} else {
		impl.Imports = rc.imports
	}

	d.logger.Debug("derived record",
		zap.Stringer("record", rec.ID),
		zap.Int("statements", len(impl.Statements)),
		zap.Bool("placeholder", impl.Placeholder))

	return impl, diags
}

func (d *Deriver) unsupported(diags *diagnostic.Diagnostics, rec *analyze.RecordDecl) {
	var msg, hint string

	switch rec.Kind {
	case analyze.DeclKindNamed:
		msg = fmt.Sprintf("cannot derive Merge for %s: not a struct type", rec.Name())
		hint = "derive on a struct type literal or implement Merge by hand"
	case analyze.DeclKindAlias:
		msg = fmt.Sprintf("cannot derive Merge for alias %s", rec.Name())
		hint = "mark the aliased type instead"
	default:
		msg = fmt.Sprintf("cannot derive Merge for %s type %s", rec.Kind, rec.Name())
		hint = "only struct types can derive Merge"
	}

	diags.AddError(diagnostic.CodeUnsupportedTarget, rec.Pos, rec.Name(), "", msg).Suggestions = []string{hint}
}

type recordContext struct {
	rec     *analyze.RecordDecl
	diags   *diagnostic.Diagnostics
	imports []analyze.Import
}

func (rc *recordContext) report(field string, errs []*attr.Error) {
	for _, e := range errs {
		diag := rc.diags.AddError(e.Code, e.Pos, rc.rec.Name(), field, e.Message)
		if e.Suggestion != "" {
			diag.Suggestions = []string{e.Suggestion}
		}
	}
}

// checkQualifier verifies that a qualified strategy names an import of the
// declaring file and records the import. It returns nil for a bad reference.
func (rc *recordContext) checkQualifier(field string, ref *attr.StrategyRef) *attr.StrategyRef {
	if ref == nil || ref.Qualifier == "" {
		return ref
	}

	imp, ok := rc.rec.Import(ref.Qualifier)
	if !ok {
		diag := rc.diags.AddError(diagnostic.CodeUnknownQualifier, ref.Pos, rc.rec.Name(), field,
			fmt.Sprintf("unknown package %q in strategy %s", ref.Qualifier, ref))

		names := make([]string, 0, len(rc.rec.Imports))
		for _, i := range rc.rec.Imports {
			names = append(names, i.Name)
		}
		if s, ok := match.Closest(ref.Qualifier, names, 2); ok {
			diag.Suggestions = []string{fmt.Sprintf("did you mean %q?", s)}
		} else {
			diag.Suggestions = []string{fmt.Sprintf("import the package providing %s in %s", ref.Name, filepath.Base(rc.rec.File))}
		}

		return nil
	}

	if !slices.ContainsFunc(rc.imports, func(i analyze.Import) bool { return i.Path == imp.Path }) {
		rc.imports = append(rc.imports, imp)
	}

	return ref
}
