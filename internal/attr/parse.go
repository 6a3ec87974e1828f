package attr

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"merge-generator/internal/analyze"
	"merge-generator/internal/diagnostic"
	"merge-generator/internal/match"
)

// TagKey is the struct tag key holding field annotations.
const TagKey = "merge"

// Error is an annotation error at a source position.
type Error struct {
	Code       string
	Pos        token.Position
	Message    string
	Suggestion string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ParseTag parses the merge key of a field's struct tag. A field without a
// merge key has default attributes. The attributes must not be used when
// errors are returned.
func ParseTag(tag analyze.Text) (FieldAttrs, []*Error) {
	var attrs FieldAttrs

	value, off, ok := lookupTag(tag.Value, TagKey)
	if !ok {
		if at, found := misplacedKey(tag.Value, TagKey); found {
			p := &parser{text: tag}
			err := p.fail(diagnostic.CodeMalformedAttribute, at,
				fmt.Sprintf("malformed struct tag: cannot read the %s key", TagKey))
			err.Suggestion = fmt.Sprintf(`write %s:"..." separated from other keys by a space`, TagKey)
			return attrs, p.errs
		}
		return attrs, nil
	}

	p := &parser{text: tag, base: off, allowed: FieldKeys}
	seen := make(map[string]bool)

	for _, e := range splitEntries(value) {
		if !p.checkKey(e, seen) {
			continue
		}

		switch e.key {
		case KeySkip:
			if e.hasValue {
				p.fail(diagnostic.CodeMalformedAttribute, e.keyOff, "skip takes no value")
				continue
			}
			attrs.Skip = true
		case KeyStrategy:
			if ref := p.strategy(e); ref != nil {
				attrs.Strategy = ref
			}
		}
	}

	return attrs, p.errs
}

// ParseDirective parses the arguments of a derive directive and returns the
// record default strategy, if any.
func ParseDirective(args analyze.Text) (*StrategyRef, []*Error) {
	var ref *StrategyRef

	p := &parser{text: args, allowed: RecordKeys}
	seen := make(map[string]bool)

	for _, e := range splitEntries(args.Value) {
		if e.key == KeySkip {
			p.fail(diagnostic.CodeUnknownAttribute, e.keyOff,
				`unknown attribute "skip": skip applies to fields, use the merge:"skip" tag`)
			continue
		}

		if !p.checkKey(e, seen) {
			continue
		}

		if r := p.strategy(e); r != nil {
			ref = r
		}
	}

	return ref, p.errs
}

type parser struct {
	text    analyze.Text
	base    int
	allowed []string
	errs    []*Error
}

func (p *parser) fail(code string, off int, message string) *Error {
	err := &Error{
		Code:    code,
		Pos:     p.text.At(p.base + off),
		Message: message,
	}
	p.errs = append(p.errs, err)

	return err
}

// checkKey reports whether e carries a known key seen for the first time.
func (p *parser) checkKey(e entry, seen map[string]bool) bool {
	switch {
	case e.key == "":
		p.fail(diagnostic.CodeMalformedAttribute, e.keyOff, `missing attribute name before "="`)
		return false
	case !isKnown(e.key, p.allowed):
		err := p.fail(diagnostic.CodeUnknownAttribute, e.keyOff, fmt.Sprintf("unknown attribute %q", e.key))
		if s, ok := match.Closest(e.key, p.allowed, 2); ok {
			err.Suggestion = fmt.Sprintf("did you mean %q?", s)
		}
		return false
	case seen[e.key]:
		p.fail(diagnostic.CodeDuplicateAttribute, e.keyOff, fmt.Sprintf("duplicate attribute %q", e.key))
		return false
	}

	seen[e.key] = true

	return true
}

func (p *parser) strategy(e entry) *StrategyRef {
	if !e.hasValue || e.value == "" {
		err := p.fail(diagnostic.CodeMalformedStrategy, e.keyOff, "strategy requires a function path")
		err.Suggestion = "write strategy=pkg.Func"
		return nil
	}

	qualifier, name, ok := splitPath(e.value)
	if !ok {
		err := p.fail(diagnostic.CodeMalformedStrategy, e.valueOff,
			fmt.Sprintf("invalid strategy path %q", e.value))
		err.Suggestion = "want Func or pkg.Func"
		return nil
	}

	return &StrategyRef{
		Qualifier: qualifier,
		Name:      name,
		Pos:       p.text.At(p.base + e.valueOff),
	}
}

func isKnown(key string, allowed []string) bool {
	for _, k := range allowed {
		if k == key {
			return true
		}
	}

	return false
}

// splitPath splits Func or pkg.Func.
func splitPath(path string) (qualifier, name string, ok bool) {
	qualifier, name, found := strings.Cut(path, ".")
	if !found {
		return "", qualifier, token.IsIdentifier(qualifier)
	}

	return qualifier, name, token.IsIdentifier(qualifier) && token.IsIdentifier(name)
}

// entry is one key[=value] element of an annotation list. Offsets are byte
// offsets into the list.
type entry struct {
	key      string
	value    string
	hasValue bool
	keyOff   int
	valueOff int
}

// splitEntries splits a comma separated annotation list. Empty entries are
// dropped.
func splitEntries(s string) []entry {
	var out []entry

	for start := 0; start <= len(s); {
		end := strings.IndexByte(s[start:], ',')
		if end < 0 {
			end = len(s)
		} else {
			end += start
		}

		raw := s[start:end]
		keyPart, valuePart, hasValue := strings.Cut(raw, "=")

		e := entry{
			key:      strings.TrimSpace(keyPart),
			hasValue: hasValue,
			keyOff:   start + leadingSpace(keyPart),
		}
		if hasValue {
			e.value = strings.TrimSpace(valuePart)
			e.valueOff = start + len(keyPart) + 1 + leadingSpace(valuePart)
		}

		if e.key != "" || e.hasValue {
			out = append(out, e)
		}

		start = end + 1
	}

	return out
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// tagPair is one key:"value" pair of a struct tag. Offsets are byte offsets
// into the tag.
type tagPair struct {
	name     string
	nameOff  int
	quoted   string
	valueOff int
}

// scanTag splits a struct tag into pairs following the conventional format
// understood by reflect.StructTag. rest is the offset where the format stops
// being followed, or -1 when the whole tag is well formed.
func scanTag(tag string) (pairs []tagPair, rest int) {
	pos := 0

	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		pos += i
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			return pairs, pos
		}
		name := tag[:i]

		j := i + 2
		for j < len(tag) && tag[j] != '"' {
			if tag[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(tag) {
			return pairs, pos
		}

		pairs = append(pairs, tagPair{
			name:     name,
			nameOff:  pos,
			quoted:   tag[i+1 : j+1],
			valueOff: pos + i + 2,
		})
		tag = tag[j+1:]
		pos += j + 1
	}

	return pairs, -1
}

// lookupTag finds key in a struct tag like reflect.StructTag.Lookup and also
// returns the byte offset of the value within tag.
func lookupTag(tag, key string) (value string, off int, ok bool) {
	pairs, _ := scanTag(tag)
	for _, p := range pairs {
		if p.name != key {
			continue
		}

		value, err := strconv.Unquote(p.quoted)
		if err != nil {
			return "", 0, false
		}

		return value, p.valueOff, true
	}

	return "", 0, false
}

// misplacedKey finds a use of key that lookupTag cannot see: a pair whose
// name only ends in key, a value that fails to unquote, or key followed by
// a colon in the part of the tag that is not well formed.
func misplacedKey(tag, key string) (off int, ok bool) {
	pairs, rest := scanTag(tag)

	for _, p := range pairs {
		switch {
		case p.name == key:
			if _, err := strconv.Unquote(p.quoted); err != nil {
				return p.nameOff, true
			}
			return 0, false
		case strings.HasSuffix(p.name, key) && !isNameByte(p.name[len(p.name)-len(key)-1]):
			return p.nameOff + len(p.name) - len(key), true
		}
	}

	if rest < 0 {
		return 0, false
	}

	for i := rest; i < len(tag); {
		j := strings.Index(tag[i:], key+":")
		if j < 0 {
			break
		}
		at := i + j
		if at == 0 || !isNameByte(tag[at-1]) {
			return at, true
		}
		i = at + len(key)
	}

	return 0, false
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
