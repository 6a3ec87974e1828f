package analyze

import (
	"go/token"
	"reflect"
	"strings"

	"merge-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "merge-generator/examples/user"
	Name    string // e.g., "User"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// DeclKind classifies the right-hand side of a type declaration.
type DeclKind int

const (
	DeclKindUnknown   DeclKind = iota
	DeclKindStruct             // type T struct{...}
	DeclKindNamed              // type T int, type T []string, type T Other, ...
	DeclKindInterface          // type T interface{...}
	DeclKindPointer            // type T *U
	DeclKindAlias              // type T = U
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclKindStruct:
		return "struct"
	case DeclKindNamed:
		return "named"
	case DeclKindInterface:
		return "interface"
	case DeclKindPointer:
		return "pointer"
	case DeclKindAlias:
		return "alias"
	default:
		return common.UnknownStr
	}
}

// CanHaveMethods reports whether a type of this kind may declare methods in
// its own package.
func (k DeclKind) CanHaveMethods() bool {
	return k == DeclKindStruct || k == DeclKindNamed
}

// Text is a piece of source text together with the position of its first
// byte.
type Text struct {
	Value string
	Pos   token.Position
}

// At returns the source position of byte offset off within t.Value.
func (t Text) At(off int) token.Position {
	if !t.Pos.IsValid() || off <= 0 {
		return t.Pos
	}

	off = min(off, len(t.Value))
	p := t.Pos
	p.Offset += off

	prefix := t.Value[:off]
	if nl := strings.LastIndexByte(prefix, '\n'); nl >= 0 {
		p.Line += strings.Count(prefix, "\n")
		p.Column = off - nl
	} else {
		p.Column += off
	}

	return p
}

// Import is one import of a source file.
type Import struct {
	Name     string // identifier the file uses for the package
	Path     string // import path
	Explicit bool   // Name was written in the import spec
	Blank    bool   // imported as _; qualifiers use the package name
}

// FieldDecl describes one declared field name of a struct.
type FieldDecl struct {
	Name     string            // field name; the type name for embedded fields
	Index    int               // position among the declared field names
	Embedded bool              // whether the field is embedded (anonymous)
	Pos      token.Position    // position of the field name or embedded type
	Type     string            // source text of the field type
	Tag      reflect.StructTag // raw struct tag
	TagText  Text              // tag content and its position; zero without a tag
}

// IsBlank reports whether the field is the blank identifier.
func (f *FieldDecl) IsBlank() bool {
	return f.Name == "_"
}

// RecordDecl describes a type declaration marked with the derive directive.
type RecordDecl struct {
	ID         TypeID
	Kind       DeclKind
	Pos        token.Position // position of the type name
	TypeParams []string       // names of the type parameters, in order
	Fields     []FieldDecl    // declared fields, in order (structs only)
	Directives []Text         // argument text of each derive directive
	Imports    []Import       // imports of the declaring file
	File       string         // declaring file
}

// Name returns the type name.
func (r *RecordDecl) Name() string {
	return r.ID.Name
}

// Import returns the import the declaring file binds to name.
func (r *RecordDecl) Import(name string) (Import, bool) {
	for _, imp := range r.Imports {
		if imp.Name == name {
			return imp, true
		}
	}

	return Import{}, false
}

// TypeGraph holds all marked records from loaded packages.
type TypeGraph struct {
	// Records maps TypeID to the record declaration.
	Records map[TypeID]*RecordDecl
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Records:  make(map[TypeID]*RecordDecl),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetRecord returns the RecordDecl for a given TypeID, or nil if not found.
func (g *TypeGraph) GetRecord(id TypeID) *RecordDecl {
	return g.Records[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string        // Import path
	Name    string        // Package name
	Dir     string        // Directory holding the package sources
	Records []*RecordDecl // Marked records in source order
}
