package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

// reportJSON writes the result as JSON.
func (r *Reporter) reportJSON(result *Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

// reportText writes the result as human-readable text, grouped by file.
func (r *Reporter) reportText(result *Result) error {
	if !result.HasErrors() && !result.HasWarnings() {
		fmt.Fprintln(r.out, color.GreenString("✓ %d file(s) passed validation", result.Checked))
		return nil
	}

	errs := result.Errors()
	warnings := result.Warnings()

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	verdict := "Validation failed:"
	if len(errs) == 0 {
		verdict = "Validation passed with"
	}
	fmt.Fprintf(r.out, "%s %s in %d of %d file(s)\n\n",
		verdict, strings.Join(summary, ", "), len(result.Files()), result.Checked)

	for _, file := range result.Files() {
		name := file
		if name == "" {
			name = "(no file)"
		}
		fmt.Fprintln(r.out, color.New(color.Bold).Sprint(name))
		for _, i := range result.Issues {
			if i.File != file {
				continue
			}
			switch i.Severity {
			case SeverityError:
				r.printIssue(i, color.FgRed)
			case SeverityWarning:
				r.printIssue(i, color.FgYellow)
			}
		}
		fmt.Fprintln(r.out)
	}

	return nil
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • field: message (context) [value]

	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	} else {
		sb.WriteString(printer(i.Severity.String()))
		sb.WriteString(": ")
	}

	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		var ctxParts []string
		for k, v := range i.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%s", k, v))
		}
		// Sort for deterministic output
		sort.Strings(ctxParts)

		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(ctxParts, ", ")))
	}

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		// Truncate long values
		if len(valStr) > 50 {
			valStr = valStr[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
