package frontmatter

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// Style identifies the delimiter convention bracketing a front matter block.
type Style int

const (
	// StyleNone means the content has no front matter block.
	StyleNone Style = iota
	// StyleYAML is a block delimited by "---" lines holding YAML.
	StyleYAML
	// StyleTOML is a block delimited by "+++" lines holding TOML.
	StyleTOML
)

func (s Style) String() string {
	switch s {
	case StyleYAML:
		return "yaml"
	case StyleTOML:
		return "toml"
	default:
		return "none"
	}
}

// Delimiter returns the marker line for the style, or "" for StyleNone.
func (s Style) Delimiter() string {
	switch s {
	case StyleYAML:
		return "---"
	case StyleTOML:
		return "+++"
	default:
		return ""
	}
}

// ParseStyle maps a style name ("yaml" or "toml") to a Style.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "yaml", "yml":
		return StyleYAML, nil
	case "toml":
		return StyleTOML, nil
	default:
		return StyleNone, errors.Newf("unknown front matter style %q (want yaml or toml)", name)
	}
}

// Block holds the byte offsets of a front matter block within a document.
//
// For StyleNone all offsets are zero and the whole input is body.
type Block struct {
	Style Style
	// Start is the first byte after the opening delimiter line.
	Start int
	// End is the first byte of the closing delimiter line.
	End int
	// BodyStart is the first byte after the closing delimiter line.
	BodyStart int
}

// Content returns the text between the delimiter lines.
func (b Block) Content(data []byte) []byte {
	if b.Style == StyleNone {
		return nil
	}
	return data[b.Start:b.End]
}

// Scan locates the front matter block at the start of data.
//
// The opening delimiter must be the very first line. When it is absent, Scan
// returns a StyleNone block and a nil error. When an opening delimiter has no
// matching closing line, Scan fails with ErrMalformedDocument.
func Scan(data []byte) (Block, error) {
	first, next := readLine(data, 0)
	style := styleOf(first)
	if style == StyleNone {
		return Block{}, nil
	}

	delim := []byte(style.Delimiter())
	for pos := next; pos < len(data); {
		line, end := readLine(data, pos)
		if bytes.Equal(line, delim) {
			return Block{
				Style:     style,
				Start:     next,
				End:       pos,
				BodyStart: end,
			}, nil
		}
		pos = end
	}

	return Block{}, errors.Wrapf(ErrMalformedDocument, "no closing %q delimiter", delim)
}

func styleOf(line []byte) Style {
	switch string(line) {
	case "---":
		return StyleYAML
	case "+++":
		return StyleTOML
	default:
		return StyleNone
	}
}

// readLine returns the line starting at pos with its terminator and any
// trailing blanks removed, and the offset of the following line.
func readLine(data []byte, pos int) (line []byte, next int) {
	idx := bytes.IndexByte(data[pos:], '\n')
	if idx < 0 {
		line, next = data[pos:], len(data)
	} else {
		line, next = data[pos:pos+idx], pos+idx+1
	}
	return bytes.TrimRight(line, " \t\r"), next
}
