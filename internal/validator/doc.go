// Package validator provides the shared reporting model for content checks.
//
// It defines types for representing validation issues (errors and warnings)
// across many files and a [Reporter] that renders them for humans or machines.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes between blocking errors and non-blocking warnings.
//   - [Issue]: Represents a single problem with file and field context.
//   - [Result]: Aggregates issues from a batch of files.
//
// # Basic Usage
//
//	result := &validator.Result{}
//	result.Add(validator.Issue{
//		Severity: validator.SeverityError,
//		File:     "content/post.md",
//		Field:    "title",
//		Message:  "missing",
//	})
//
//	if result.HasErrors() {
//		// handle validation failure
//	}
package validator
