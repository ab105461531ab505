package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/matter/internal/document/validator"
	"github.com/thoreinstein/matter/internal/logging"
	"github.com/thoreinstein/matter/pkg/fileutil"
	"github.com/thoreinstein/matter/pkg/frontmatter"
)

const sampleTOML = `+++
title = "Sample"
date = "2022-07-31"
tags = ["aws", "github"]
+++
Body text here.
`

func newLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	return New(append([]Option{WithLogger(logging.ForTest(t))}, opts...)...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBytes_Sample(t *testing.T) {
	doc, err := newLoader(t).LoadBytes([]byte(sampleTOML), "post/sample.md")
	require.NoError(t, err)

	assert.Equal(t, "Sample", doc.Title())
	date, ok := doc.Date()
	require.True(t, ok)
	assert.Equal(t, frontmatter.Date{Year: 2022, Month: time.July, Day: 31}, date)
	assert.Equal(t, []string{"aws", "github"}, doc.Tags())
	assert.Equal(t, "Body text here.\n", doc.Body())
	assert.Equal(t, frontmatter.StyleTOML, doc.Style())
	assert.Equal(t, "post/sample.md", doc.Path())
}

func TestLoadBytes_UnquotedYAMLDate(t *testing.T) {
	doc, err := newLoader(t).LoadBytes([]byte("---\ntitle: Dated\ndate: 2022-07-31\n---\nBody\n"), "post/dated.md")
	require.NoError(t, err)

	date, ok := doc.Date()
	require.True(t, ok)
	assert.Equal(t, frontmatter.Date{Year: 2022, Month: time.July, Day: 31}, date)
	assert.Equal(t, frontmatter.StyleYAML, doc.Style())
}

func TestLoadBytes_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{
			name:     "unclosed yaml block",
			input:    "---\ntitle: Hello\nBody without a closing delimiter\n",
			sentinel: frontmatter.ErrMalformedDocument,
		},
		{
			name:     "unclosed toml block",
			input:    "+++\ntitle = \"Hello\"\n",
			sentinel: frontmatter.ErrMalformedDocument,
		},
		{
			name:     "unterminated quote",
			input:    "---\ntitle: \"Unterminated\n---\nBody",
			sentinel: frontmatter.ErrMalformedFrontMatter,
		},
		{
			name:     "bad date",
			input:    "---\ntitle: Hello\ndate: 31/07/2022\n---\n",
			sentinel: frontmatter.ErrInvalidFieldValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newLoader(t).LoadBytes([]byte(tt.input), "bad.md")
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "bad.md", loadErr.Path)
			assert.True(t, strings.HasPrefix(err.Error(), "bad.md: "), err.Error())
		})
	}
}

func TestLoadBytes_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []validator.FieldError
	}{
		{
			name:  "no front matter",
			input: "Just a body.\n",
			want:  []validator.FieldError{{Field: "title", Reason: validator.ReasonMissing}},
		},
		{
			name:  "empty title",
			input: "+++\ntitle = \"\"\n+++\n",
			want:  []validator.FieldError{{Field: "title", Reason: validator.ReasonEmpty}},
		},
		{
			name:  "every problem reported",
			input: "---\ntitle: [a]\ntags: aws\n---\n",
			want: []validator.FieldError{
				{Field: "title", Reason: validator.ReasonWrongType, Value: []any{"a"}},
				{Field: "tags", Reason: validator.ReasonWrongType, Value: "aws"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newLoader(t).LoadBytes([]byte(tt.input), "post.md")
			require.Error(t, err)
			require.NotNil(t, doc, "validation failures still return the document")
			assert.True(t, errors.Is(err, validator.ErrValidation))

			var verr *validator.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "post.md", verr.Path)
			require.Len(t, verr.Problems, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, *verr.Problems[i])
			}
		})
	}
}

func TestLoadBytes_RequiredFields(t *testing.T) {
	l := newLoader(t, WithValidator(validator.New(validator.WithRequired("date", "author"))))

	_, err := l.LoadBytes([]byte("---\ntitle: Hello\n---\n"), "post.md")
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)

	var fields []string
	for _, p := range verr.Problems {
		fields = append(fields, p.Field)
		assert.Equal(t, validator.ReasonMissing, p.Reason)
	}
	assert.ElementsMatch(t, []string{"date", "author"}, fields)
}

func TestLoadBytes_Idempotent(t *testing.T) {
	inputs := []string{
		sampleTOML,
		"---\ntitle: Hello\ntags: [b, a, c]\nextra: {nested: true}\n---\n# Heading\n\nText.\n",
		"No front matter at all.\n",
	}
	l := newLoader(t)

	for _, in := range inputs {
		first, _ := l.LoadBytes([]byte(in), "doc.md")
		second, _ := l.LoadBytes([]byte(in), "doc.md")
		require.NotNil(t, first)
		assert.True(t, first.Equal(second), "loading twice differs for %q", in)
	}
}

func TestLoadBytes_ListOrderPreserved(t *testing.T) {
	doc, err := newLoader(t).LoadBytes([]byte("---\ntitle: T\ntags: [zeta, alpha, mid]\n---\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Tags())
}

func TestLoadBytes_RoundTrip(t *testing.T) {
	l := newLoader(t)
	orig, err := l.LoadBytes([]byte("---\ntitle: Round\ndate: 2023-01-02\ntags: [x, y]\nweight: 3\n---\nBody\n"), "a.md")
	require.NoError(t, err)

	out, err := frontmatter.Format(orig.Style(), orig.FrontMatter(), orig.Body())
	require.NoError(t, err)

	again, err := l.LoadBytes(out, "a.md")
	require.NoError(t, err)
	assert.Equal(t, orig.FrontMatter(), again.FrontMatter())
	assert.Equal(t, orig.Body(), again.Body())
}

func TestLoad_Reader(t *testing.T) {
	doc, err := newLoader(t).Load(strings.NewReader(sampleTOML), "stdin")
	require.NoError(t, err)
	assert.Equal(t, "Sample", doc.Title())

	_, err = newLoader(t, WithMaxFileSize(8)).Load(strings.NewReader(sampleTOML), "stdin")
	assert.True(t, errors.Is(err, fileutil.ErrFileTooLarge), "got %v", err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "post.md", sampleTOML)

	doc, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())
	assert.Equal(t, []byte(sampleTOML), doc.Raw())

	_, err = newLoader(t).LoadFile(filepath.Join(dir, "missing.md"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, os.IsNotExist(loadErr.Err))

	_, err = newLoader(t, WithMaxFileSize(16)).LoadFile(path)
	assert.True(t, errors.Is(err, fileutil.ErrFileTooLarge), "got %v", err)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.md", sampleTOML),
		writeFile(t, dir, "b.md", "---\ntitle: \"Unterminated\n---\n"),
		writeFile(t, dir, "c.md", "no front matter\n"),
		filepath.Join(dir, "missing.md"),
		writeFile(t, dir, "e.md", "---\ntitle: E\n---\n"),
	}

	results := newLoader(t, WithWorkers(2)).LoadAll(context.Background(), paths)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path, "results keep input order")
	}

	assert.True(t, results[0].Valid())
	assert.Equal(t, "Sample", results[0].Document.Title())

	assert.True(t, errors.Is(results[1].Err, frontmatter.ErrMalformedFrontMatter))
	assert.Nil(t, results[1].Document)

	assert.True(t, errors.Is(results[2].Err, validator.ErrValidation))
	assert.NotNil(t, results[2].Document)

	assert.Error(t, results[3].Err)

	assert.True(t, results[4].Valid(), "a bad neighbour does not affect later files")
	assert.Equal(t, "E", results[4].Document.Title())
}

func TestLoadAll_MatchesSequential(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 40 {
		name := filepath.Join("posts", strings.Repeat("x", i%5+1)+string(rune('a'+i%26))+".md")
		paths = append(paths, writeFile(t, dir, name, "---\ntitle: T\ntags: [a, b]\n---\nbody\n"))
	}

	l := newLoader(t, WithWorkers(8))
	parallel := l.LoadAll(context.Background(), paths)
	for i, p := range paths {
		doc, err := l.LoadFile(p)
		require.NoError(t, err)
		require.NoError(t, parallel[i].Err)
		assert.True(t, doc.Equal(parallel[i].Document), p)
	}
}

func TestLoadAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "a.md", sampleTOML), writeFile(t, dir, "b.md", sampleTOML)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range newLoader(t).LoadAll(ctx, paths) {
		assert.True(t, errors.Is(r.Err, context.Canceled), "got %v", r.Err)
	}
}

func TestLoadAll_Empty(t *testing.T) {
	assert.Nil(t, newLoader(t).LoadAll(context.Background(), nil))
}
