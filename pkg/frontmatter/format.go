package frontmatter

import (
	"bytes"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format writes meta as a front matter block in the given style, followed by
// body. The result has the form delimiter, serialized metadata, delimiter,
// body, so Parse recovers meta and body from it.
func Format(style Style, meta Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer
	delim := style.Delimiter()

	switch style {
	case StyleYAML:
		buf.WriteString(delim + "\n")
		if len(meta) > 0 {
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(yamlValues(meta)); err != nil {
				return nil, errors.Wrap(err, "encoding YAML front matter")
			}
			if err := enc.Close(); err != nil {
				return nil, errors.Wrap(err, "encoding YAML front matter")
			}
		}
	case StyleTOML:
		values, err := tomlValues(meta)
		if err != nil {
			return nil, err
		}
		buf.WriteString(delim + "\n")
		if err := toml.NewEncoder(&buf).Encode(values); err != nil {
			return nil, errors.Wrap(err, "encoding TOML front matter")
		}
	default:
		return nil, errors.Newf("cannot format front matter with style %s", style)
	}

	buf.WriteString(delim + "\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// yamlValues swaps TOML local dates for Date values so every date is
// written as a bare YAML date.
func yamlValues(meta Metadata) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		if ld, ok := v.(toml.LocalDate); ok {
			v = Date{Year: ld.Year, Month: time.Month(ld.Month), Day: ld.Day}
		}
		out[k] = v
	}
	return out
}

// tomlValues swaps Date values for TOML local dates so they are written as
// bare dates rather than quoted strings. TOML has no null, so a key holding
// one is refused rather than dropped.
func tomlValues(meta Metadata) (map[string]any, error) {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		if hasNull(v) {
			return nil, &FieldValueError{Field: k, Value: v, Reason: "TOML cannot hold an empty (null) value"}
		}
		if d, ok := v.(Date); ok {
			v = d.localDate()
		}
		out[k] = v
	}
	return out, nil
}

func hasNull(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case []any:
		for _, item := range val {
			if hasNull(item) {
				return true
			}
		}
	case map[string]any:
		for _, item := range val {
			if hasNull(item) {
				return true
			}
		}
	}
	return false
}
