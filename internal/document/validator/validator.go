// Package validator checks decoded front matter for required and
// well-typed fields.
package validator

import (
	"slices"
	"strings"

	"github.com/thoreinstein/matter/pkg/frontmatter"
)

// kind is the expected shape of a recognized field.
type kind int

const (
	kindString kind = iota
	kindList
	kindDate
)

// rule describes one recognized field.
type rule struct {
	field string
	kind  kind
}

// rules lists the recognized fields in reporting order.
var rules = []rule{
	{frontmatter.FieldTitle, kindString},
	{frontmatter.FieldDescription, kindString},
	{frontmatter.FieldAuthor, kindString},
	{frontmatter.FieldDate, kindDate},
	{frontmatter.FieldTags, kindList},
	{frontmatter.FieldAliases, kindList},
}

// Option configures a Validator.
type Option func(*Validator)

// Validator checks front matter against the recognized field rules.
// Title is always required.
type Validator struct {
	required []string
}

// New creates a new Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{
		required: []string{frontmatter.FieldTitle},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithRequired adds fields that must be present and non-blank.
func WithRequired(fields ...string) Option {
	return func(v *Validator) {
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f != "" && !slices.Contains(v.required, f) {
				v.required = append(v.required, f)
			}
		}
	}
}

// Required returns the required field names.
func (v *Validator) Required() []string {
	return slices.Clone(v.required)
}

// Validate inspects fields and returns every problem found, or nil.
// It never stops at the first problem and never modifies fields.
func (v *Validator) Validate(fields frontmatter.Metadata) []*FieldError {
	var errs []*FieldError

	for _, r := range rules {
		value, present := fields[r.field]
		required := slices.Contains(v.required, r.field)
		if fe := check(r.field, r.kind, value, present, required); fe != nil {
			errs = append(errs, fe)
		}
	}

	for _, field := range v.required {
		if isRecognized(field) {
			continue
		}
		value, present := fields[field]
		if fe := checkPresence(field, value, present); fe != nil {
			errs = append(errs, fe)
		}
	}

	return errs
}

// ValidateDocument validates the front matter of a loaded file and wraps
// any problems in a *ValidationError carrying path.
func (v *Validator) ValidateDocument(path string, fields frontmatter.Metadata) error {
	problems := v.Validate(fields)
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Path: path, Problems: problems}
}

// Advise returns optional recognized fields that are present but blank: a
// null, a whitespace-only string or an empty list. They pass Validate and are
// reported as warnings.
func (v *Validator) Advise(fields frontmatter.Metadata) []*FieldError {
	var notes []*FieldError
	for _, r := range rules {
		value, present := fields[r.field]
		if !present || slices.Contains(v.required, r.field) {
			continue
		}
		blank := false
		switch val := value.(type) {
		case nil:
			blank = true
		case string:
			blank = r.kind == kindString && strings.TrimSpace(val) == ""
		case []string:
			blank = r.kind == kindList && len(val) == 0
		}
		if blank {
			notes = append(notes, &FieldError{Field: r.field, Reason: ReasonEmpty})
		}
	}
	return notes
}

func check(field string, k kind, value any, present, required bool) *FieldError {
	if !present || value == nil {
		if required {
			return checkPresence(field, value, present)
		}
		return nil
	}

	switch k {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return &FieldError{Field: field, Reason: ReasonWrongType, Value: value}
		}
		if required && strings.TrimSpace(s) == "" {
			return &FieldError{Field: field, Reason: ReasonEmpty}
		}
	case kindList:
		list, ok := value.([]string)
		if !ok {
			return &FieldError{Field: field, Reason: ReasonWrongType, Value: value}
		}
		if required && len(list) == 0 {
			return &FieldError{Field: field, Reason: ReasonEmpty}
		}
	case kindDate:
		if _, ok := value.(frontmatter.Date); !ok {
			return &FieldError{Field: field, Reason: ReasonWrongType, Value: value}
		}
	}
	return nil
}

// checkPresence applies the generic required-field rules to fields with no
// known shape.
func checkPresence(field string, value any, present bool) *FieldError {
	if !present {
		return &FieldError{Field: field, Reason: ReasonMissing}
	}
	switch v := value.(type) {
	case nil:
		return &FieldError{Field: field, Reason: ReasonEmpty}
	case string:
		if strings.TrimSpace(v) == "" {
			return &FieldError{Field: field, Reason: ReasonEmpty}
		}
	case []string:
		if len(v) == 0 {
			return &FieldError{Field: field, Reason: ReasonEmpty}
		}
	case []any:
		if len(v) == 0 {
			return &FieldError{Field: field, Reason: ReasonEmpty}
		}
	}
	return nil
}

func isRecognized(field string) bool {
	for _, r := range rules {
		if r.field == field {
			return true
		}
	}
	return false
}
