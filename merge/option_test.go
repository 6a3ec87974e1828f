package merge_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"merge-generator/merge"
)

func TestOption_Merge(t *testing.T) {
	tests := []struct {
		name  string
		left  merge.Option[int]
		right merge.Option[int]
		want  merge.Option[int]
	}{
		{"both set keeps left", merge.Some(1), merge.Some(2), merge.Some(1)},
		{"left set right empty", merge.Some(1), merge.None[int](), merge.Some(1)},
		{"left empty adopts right", merge.None[int](), merge.Some(2), merge.Some(2)},
		{"both empty", merge.None[int](), merge.None[int](), merge.None[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := tt.left
			left.Merge(tt.right)
			assert.Equal(t, tt.want, left)
		})
	}
}

func TestOption_MergeIdempotent(t *testing.T) {
	for _, o := range []merge.Option[string]{merge.Some("x"), merge.None[string]()} {
		left := o
		left.Merge(o)
		assert.Equal(t, o, left)
	}
}

func TestOption_Accessors(t *testing.T) {
	some := merge.Some(42)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.True(t, some.IsSome())
	assert.False(t, some.IsNone())
	assert.Equal(t, 42, some.MustGet())
	assert.Equal(t, 42, some.OrElse(7))
	assert.Equal(t, "Some(42)", some.String())

	none := merge.None[int]()
	_, ok = none.Get()
	assert.False(t, ok)
	assert.True(t, none.IsNone())
	assert.Equal(t, 7, none.OrElse(7))
	assert.Nil(t, none.Ptr())
	assert.Equal(t, "None", none.String())
	assert.Panics(t, func() { none.MustGet() })
}

func TestOption_PtrWritesThrough(t *testing.T) {
	o := merge.Some(1)
	*o.Ptr() = 5
	assert.Equal(t, merge.Some(5), o)
}

func TestOption_FromPtr(t *testing.T) {
	n := 3
	assert.Equal(t, merge.Some(3), merge.FromPtr(&n))
	assert.Equal(t, merge.None[int](), merge.FromPtr[int](nil))
}

type jsonDoc struct {
	Name  merge.Option[string] `json:"name"`
	Port  merge.Option[int]    `json:"port"`
	Debug merge.Option[bool]   `json:"debug"`
}

func TestOption_JSON(t *testing.T) {
	var doc jsonDoc
	err := json.Unmarshal([]byte(`{"name": "api", "port": null}`), &doc)
	require.NoError(t, err)

	assert.Equal(t, merge.Some("api"), doc.Name)
	assert.Equal(t, merge.None[int](), doc.Port)
	assert.Equal(t, merge.None[bool](), doc.Debug)

	out, err := json.Marshal(jsonDoc{Name: merge.Some("api"), Debug: merge.Some(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "api", "port": null, "debug": true}`, string(out))
}

func TestOption_JSONTypeMismatch(t *testing.T) {
	var doc jsonDoc
	err := json.Unmarshal([]byte(`{"port": "eighty"}`), &doc)
	assert.Error(t, err)
}

type yamlDoc struct {
	Name  merge.Option[string]   `yaml:"name"`
	Port  merge.Option[int]      `yaml:"port"`
	Tags  merge.Option[[]string] `yaml:"tags"`
	Debug merge.Option[bool]     `yaml:"debug"`
}

func TestOption_YAML(t *testing.T) {
	src := `
name: api
port: ~
tags: [a, b]
`
	var doc yamlDoc
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	assert.Equal(t, merge.Some("api"), doc.Name)
	assert.True(t, doc.Port.IsNone())
	assert.Equal(t, merge.Some([]string{"a", "b"}), doc.Tags)
	assert.True(t, doc.Debug.IsNone())

	out, err := yaml.Marshal(yamlDoc{Name: merge.Some("api")})
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: api")
	assert.Contains(t, string(out), "port: null")
}

func TestOption_YAMLOmitEmpty(t *testing.T) {
	type doc struct {
		Name merge.Option[string] `yaml:"name,omitempty"`
		Port merge.Option[int]    `yaml:"port,omitempty"`
	}

	out, err := yaml.Marshal(doc{Port: merge.Some(0)})
	require.NoError(t, err)
	assert.Equal(t, "port: 0\n", string(out))
	assert.True(t, merge.None[int]().IsZero())
	assert.False(t, merge.Some(0).IsZero())
}
