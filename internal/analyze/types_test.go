package analyze

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

func position(filename string, line, column, offset int) token.Position {
	return token.Position{Filename: filename, Line: line, Column: column, Offset: offset}
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "example.com/config.Config", TypeID{PkgPath: "example.com/config", Name: "Config"}.String())
	assert.Equal(t, "Config", TypeID{Name: "Config"}.String())
}

func TestDeclKind(t *testing.T) {
	tests := []struct {
		kind    DeclKind
		str     string
		methods bool
	}{
		{DeclKindStruct, "struct", true},
		{DeclKindNamed, "named", true},
		{DeclKindInterface, "interface", false},
		{DeclKindPointer, "pointer", false},
		{DeclKindAlias, "alias", false},
		{DeclKindUnknown, "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.kind.String())
			assert.Equal(t, tt.methods, tt.kind.CanHaveMethods())
		})
	}
}
