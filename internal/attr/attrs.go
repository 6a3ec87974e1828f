package attr

import (
	"go/token"
)

// Annotation keys.
const (
	KeySkip     = "skip"
	KeyStrategy = "strategy"
)

// FieldKeys lists the keys accepted in a field tag.
var FieldKeys = []string{KeySkip, KeyStrategy}

// RecordKeys lists the keys accepted on the derive directive.
var RecordKeys = []string{KeyStrategy}

// StrategyRef references a function of shape func(left *T, right T).
type StrategyRef struct {
	Qualifier string         // import name, empty for the declaring package
	Name      string         // function name
	Pos       token.Position // position of the path in source
}

// String returns the path as written in source.
func (r StrategyRef) String() string {
	if r.Qualifier == "" {
		return r.Name
	}

	return r.Qualifier + "." + r.Name
}

// FieldAttrs holds the parsed annotations of one field.
// Skip and Strategy are independent; Skip takes precedence.
type FieldAttrs struct {
	Skip     bool
	Strategy *StrategyRef
}

//go:generate go tool stringer -type=PolicyKind -trimprefix=Policy -output=policykind_string.go

// PolicyKind enumerates the ways a field is merged.
type PolicyKind int

const (
	// PolicySkip leaves the field untouched.
	PolicySkip PolicyKind = iota
	// PolicyStrategy calls a strategy function on the field.
	PolicyStrategy
	// PolicyRecurse calls the field's own Merge method.
	PolicyRecurse
)

// Policy is the resolved merge policy of one field.
type Policy struct {
	Kind     PolicyKind
	Strategy *StrategyRef // set for PolicyStrategy
}

// Resolve picks the policy of a field: skip first, then the field's
// strategy, then the record default, then recursion into the field's Merge.
func Resolve(field FieldAttrs, recordDefault *StrategyRef) Policy {
	switch {
	case field.Skip:
		return Policy{Kind: PolicySkip}
	case field.Strategy != nil:
		return Policy{Kind: PolicyStrategy, Strategy: field.Strategy}
	case recordDefault != nil:
		return Policy{Kind: PolicyStrategy, Strategy: recordDefault}
	default:
		return Policy{Kind: PolicyRecurse}
	}
}
