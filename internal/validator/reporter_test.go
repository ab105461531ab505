package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestReporter_Report(t *testing.T) {
	result := &Result{Checked: 3}
	result.AddError("content/a.md", "title", "missing", nil)
	result.AddError("content/b.md", "", "malformed front matter", nil)
	result.AddWarning("content/a.md", "tags", "unknown type", "some val")
	result.Issues[1].Context = map[string]string{"line": "2"}

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"2 error(s)",
			"1 warning(s)",
			"in 2 of 3 file(s)",
			"content/a.md",
			"title: missing",
			"(line=2)",
			"[some val]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
		if strings.Index(output, "content/a.md") > strings.Index(output, "content/b.md") {
			t.Error("files should be reported in first-seen order")
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatJSON)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}

		if decoded.Checked != 3 {
			t.Errorf("decoded checked = %d, want 3", decoded.Checked)
		}
		if len(decoded.Issues) != 3 {
			t.Fatalf("decoded issues count = %d, want 3", len(decoded.Issues))
		}
		if decoded.Issues[0].Field != "title" || decoded.Issues[0].File != "content/a.md" {
			t.Errorf("first issue = %+v", decoded.Issues[0])
		}
		if decoded.Issues[2].Severity != SeverityWarning {
			t.Errorf("third issue severity = %v, want warning", decoded.Issues[2].Severity)
		}
		if !strings.Contains(buf.String(), `"severity": "error"`) {
			t.Error("severity should be encoded by name")
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(&Result{Checked: 2}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "2 file(s) passed validation") {
			t.Errorf("output missing success message: %q", buf.String())
		}
	})

	t.Run("warnings only text", func(t *testing.T) {
		warned := &Result{Checked: 2}
		warned.AddWarning("content/a.md", "tags", "optional field is blank", nil)

		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(warned); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "Validation passed with 1 warning(s) in 1 of 2 file(s)") {
			t.Errorf("output missing warning summary:\n%s", output)
		}
		if strings.Contains(output, "failed") {
			t.Errorf("warnings alone should not fail:\n%s", output)
		}
	})

	t.Run("nil result", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(nil); err != nil {
			t.Fatalf("Report(nil) error: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Report(nil) wrote %q", buf.String())
		}
	})
}
