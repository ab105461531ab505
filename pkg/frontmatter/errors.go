package frontmatter

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for front matter failures.
var (
	// ErrMalformedDocument indicates an opening delimiter with no matching
	// closing delimiter before end of file.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMalformedFrontMatter indicates a syntax error inside the block.
	ErrMalformedFrontMatter = errors.New("malformed front matter")

	// ErrInvalidFieldValue indicates a recognized field does not have the
	// shape its name requires.
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// SyntaxError describes a YAML or TOML syntax error inside a front matter block.
type SyntaxError struct {
	Style Style
	// Line is the 1-based line within the block, or 0 when unknown.
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s front matter line %d: %v", e.Style, e.Line, e.Err)
	}
	return fmt.Sprintf("%s front matter: %v", e.Style, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedFrontMatter as a match.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedFrontMatter
}

// FieldValueError reports a field whose value has the wrong shape or cannot
// be written in the requested style.
type FieldValueError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldValueError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Is reports ErrInvalidFieldValue as a match.
func (e *FieldValueError) Is(target error) bool {
	return target == ErrInvalidFieldValue
}

// yamlLineRe matches the position prefix yaml.v3 puts in its messages.
var yamlLineRe = regexp.MustCompile(`line (\d+):`)

func newSyntaxError(style Style, err error) *SyntaxError {
	se := &SyntaxError{Style: style, Err: err}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, _ := decodeErr.Position()
		se.Line = row
		return se
	}

	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			se.Line = n
		}
	}
	return se
}
