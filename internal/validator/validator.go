package validator

import (
	"fmt"
	"strings"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so reports carry names, not numbers.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Issue represents a single validation problem.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity"`
	// File is the content file the issue was found in (optional).
	File string `json:"file,omitempty"`
	// Field identifies the field with the issue (optional).
	Field string `json:"field,omitempty"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
	// Value is the actual value that failed validation (optional).
	Value any `json:"value,omitempty"`
	// Context is additional detail such as a line number.
	Context map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.File != "" {
		sb.WriteString(i.File)
		sb.WriteString(": ")
	}
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues.
type Result struct {
	// Checked counts the files that were examined.
	Checked int     `json:"checked"`
	Issues  []Issue `json:"issues"`
}

// Add appends an issue to the result.
func (r *Result) Add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// AddError adds an error issue to the result.
func (r *Result) AddError(file, field, message string, value any) {
	r.Add(Issue{Severity: SeverityError, File: file, Field: field, Message: message, Value: value})
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(file, field, message string, value any) {
	r.Add(Issue{Severity: SeverityWarning, File: file, Field: field, Message: message, Value: value})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Files returns the distinct files with issues, in first-seen order.
func (r *Result) Files() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var files []string
	for _, i := range r.Issues {
		if !seen[i.File] {
			seen[i.File] = true
			files = append(files, i.File)
		}
	}
	return files
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
