// Package document defines the normalized, read-only representation of a
// content file handed to renderers and tooling.
package document

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/thoreinstein/matter/pkg/frontmatter"
)

// fieldSlug is an optional front matter override for the document slug.
const fieldSlug = "slug"

// Document is one content file: its raw text, decoded front matter, and body.
//
// A Document is immutable. Accessors return copies of slices and maps so
// callers cannot modify the record handed to them.
type Document struct {
	path   string
	raw    []byte
	block  frontmatter.Block
	fields frontmatter.Metadata
}

// New assembles a Document from a file's raw bytes, the block found by
// frontmatter.Scan, and the decoded metadata. A nil fields map is treated
// as empty. New takes a copy of raw and fields.
func New(path string, raw []byte, block frontmatter.Block, fields frontmatter.Metadata) *Document {
	if fields == nil {
		fields = frontmatter.Metadata{}
	}
	return &Document{
		path:   path,
		raw:    bytes.Clone(raw),
		block:  block,
		fields: fields.Clone(),
	}
}

// Path returns the file path the document was loaded from.
func (d *Document) Path() string { return d.path }

// Raw returns a copy of the original file contents.
func (d *Document) Raw() []byte { return bytes.Clone(d.raw) }

// Style returns the delimiter style of the front matter block.
func (d *Document) Style() frontmatter.Style { return d.block.Style }

// Block returns the serialized front matter between the delimiter lines.
func (d *Document) Block() string { return string(d.block.Content(d.raw)) }

// Body returns the text following the front matter block.
func (d *Document) Body() string { return string(d.raw[d.block.BodyStart:]) }

// BodyLine returns the 1-based line number on which the body starts.
func (d *Document) BodyLine() int { return bytes.Count(d.raw[:d.block.BodyStart], []byte("\n")) + 1 }

// FrontMatter returns a copy of the decoded front matter.
func (d *Document) FrontMatter() frontmatter.Metadata { return d.fields.Clone() }

// Get returns the raw decoded value for key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.fields[key]
	if list, isList := v.([]string); isList {
		v = append([]string(nil), list...)
	}
	return v, ok
}

// Title returns the title field, or "" if it is absent or not a string.
func (d *Document) Title() string { return d.str(frontmatter.FieldTitle) }

// Description returns the description field, or "".
func (d *Document) Description() string { return d.str(frontmatter.FieldDescription) }

// Author returns the author field, or "".
func (d *Document) Author() string { return d.str(frontmatter.FieldAuthor) }

// Date returns the date field and whether it was set.
func (d *Document) Date() (frontmatter.Date, bool) {
	date, ok := d.fields[frontmatter.FieldDate].(frontmatter.Date)
	return date, ok
}

// Tags returns the tags in declared order. It never returns nil.
func (d *Document) Tags() []string { return d.list(frontmatter.FieldTags) }

// Aliases returns the aliases in declared order. It never returns nil.
func (d *Document) Aliases() []string { return d.list(frontmatter.FieldAliases) }

// Slug returns the URL slug for the document: an explicit slug field when
// present, otherwise the normalized title, otherwise the file name stem.
func (d *Document) Slug() string {
	if s := d.str(fieldSlug); s != "" {
		return s
	}
	if title := d.Title(); title != "" {
		if s, err := slug.Normalize(title); err == nil && s != "" {
			return s
		}
	}
	base := filepath.Base(d.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Equal reports whether d and other hold the same path, bytes, and fields.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.path == other.path &&
		d.block == other.block &&
		bytes.Equal(d.raw, other.raw) &&
		reflect.DeepEqual(d.fields, other.fields)
}

func (d *Document) str(key string) string {
	s, _ := d.fields[key].(string)
	return s
}

func (d *Document) list(key string) []string {
	list, _ := d.fields[key].([]string)
	return append([]string{}, list...)
}
