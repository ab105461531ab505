package frontmatter

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Recognized front matter field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldAuthor      = "author"
	FieldDate        = "date"
	FieldTags        = "tags"
	FieldAliases     = "aliases"
)

// listFields are decoded into ordered []string values.
var listFields = []string{FieldTags, FieldAliases}

// Metadata maps front matter keys to decoded values.
//
// After Decode, a date field holds a Date and list fields hold []string.
// Unknown keys keep whatever value the YAML or TOML decoder produced.
type Metadata map[string]any

// Clone returns a copy of m. List values are copied so the clone can be
// handed out without exposing m's backing arrays.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Parse scans data for a front matter block and decodes it.
// When data has no front matter, the returned Metadata is empty and non-nil.
func Parse(data []byte) (Block, Metadata, error) {
	block, err := Scan(data)
	if err != nil {
		return Block{}, nil, err
	}
	if block.Style == StyleNone {
		return block, Metadata{}, nil
	}

	meta, err := Decode(block.Content(data), block.Style)
	if err != nil {
		return Block{}, nil, err
	}
	return block, meta, nil
}

// Decode parses the text of a front matter block written in the given style.
func Decode(content []byte, style Style) (Metadata, error) {
	raw := map[string]any{}

	switch style {
	case StyleYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, newSyntaxError(style, err)
		}
		if doc.Kind != 0 {
			if err := doc.Decode(&raw); err != nil {
				return nil, newSyntaxError(style, err)
			}
		}
		if text, ok := yamlDateText(&doc); ok {
			raw[FieldDate] = text
		}
	case StyleTOML:
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, newSyntaxError(style, err)
		}
	default:
		return nil, errors.Newf("cannot decode front matter with style %s", style)
	}

	meta := make(Metadata, len(raw))
	for k, v := range raw {
		meta[k] = v
	}
	if err := normalize(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// yamlDateText returns the literal text of an unquoted timestamp stored
// under the date key. yaml.v3 decodes such scalars into time.Time, which
// cannot tell a date from a date-time at midnight UTC.
func yamlDateText(doc *yaml.Node) (string, bool) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Value != FieldDate {
			continue
		}
		if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!timestamp" {
			return val.Value, true
		}
		return "", false
	}
	return "", false
}

// normalize converts recognized fields to their canonical Go types in place.
// Values whose overall type is wrong for a list field are left for the
// validator to report.
func normalize(meta Metadata) error {
	if v, ok := meta[FieldDate]; ok {
		d, err := toDate(v)
		if err != nil {
			return &FieldValueError{Field: FieldDate, Value: v, Reason: err.Error()}
		}
		meta[FieldDate] = d
	}

	for _, field := range listFields {
		items, ok := meta[field].([]any)
		if !ok {
			continue
		}
		list, err := toStrings(items)
		if err != nil {
			return &FieldValueError{Field: field, Value: meta[field], Reason: err.Error()}
		}
		meta[field] = list
	}
	return nil
}

func toStrings(items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case nil:
			return nil, fmt.Errorf("element %d is empty", i)
		case []any, map[string]any, map[any]any:
			return nil, fmt.Errorf("element %d is not a scalar", i)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out, nil
}
