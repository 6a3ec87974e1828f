package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"fmt", "fmt"},
		{"merge-generator/strategy", "strategy"},
		{"github.com/pelletier/go-toml/v2", "go-toml"},
		{"gopkg.in/yaml.v3", "yaml"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PkgAlias(tt.path), tt.path)
	}
}
