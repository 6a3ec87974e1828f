package merge

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var jsonNull = []byte("null")

// IsZero reports whether the Option is empty, so that omitempty (YAML) and
// omitzero (JSON) drop empty options.
func (o Option[T]) IsZero() bool {
	return !o.some
}

// MarshalJSON encodes an empty Option as null and a set Option as its value.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.some {
		return jsonNull, nil
	}

	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as an empty Option and anything else as a set
// Option.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = None[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding option: %w", err)
	}

	*o = Some(v)

	return nil
}

// MarshalYAML encodes an empty Option as null and a set Option as its value.
func (o Option[T]) MarshalYAML() (any, error) {
	if !o.some {
		return nil, nil
	}

	return o.value, nil
}

// UnmarshalYAML decodes a null node as an empty Option and anything else as
// a set Option.
func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		*o = None[T]()
		return nil
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("decoding option: %w", err)
	}

	*o = Some(v)

	return nil
}
