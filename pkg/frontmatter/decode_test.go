package frontmatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_YAML(t *testing.T) {
	content := `title: "Hello, World"
description: A first post
author: Jane
date: 2022-07-31
tags: ["aws", "iam", "oidc"]
aliases:
  - /old/hello
  - /older/hello
draft: true
`
	meta, err := Decode([]byte(content), StyleYAML)
	require.NoError(t, err)

	assert.Equal(t, "Hello, World", meta[FieldTitle])
	assert.Equal(t, "A first post", meta[FieldDescription])
	assert.Equal(t, "Jane", meta[FieldAuthor])
	assert.Equal(t, Date{Year: 2022, Month: time.July, Day: 31}, meta[FieldDate])
	assert.Equal(t, []string{"aws", "iam", "oidc"}, meta[FieldTags])
	assert.Equal(t, []string{"/old/hello", "/older/hello"}, meta[FieldAliases])
	assert.Equal(t, true, meta["draft"], "unknown keys pass through")
}

func TestDecode_UnquotedYAMLDate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain", "date: 2022-07-31\n"},
		{"quoted", "date: \"2022-07-31\"\n"},
		{"explicit tag", "date: !!timestamp 2022-07-31\n"},
		{"flow mapping", "{title: x, date: 2022-07-31}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := Decode([]byte(tt.content), StyleYAML)
			require.NoError(t, err)
			assert.Equal(t, Date{Year: 2022, Month: time.July, Day: 31}, meta[FieldDate])
		})
	}
}

func TestDecode_TOML(t *testing.T) {
	content := `title = "Sample"
date = 2022-07-31
tags = ["aws", "github"]
weight = 10
`
	meta, err := Decode([]byte(content), StyleTOML)
	require.NoError(t, err)

	assert.Equal(t, "Sample", meta[FieldTitle])
	assert.Equal(t, Date{Year: 2022, Month: time.July, Day: 31}, meta[FieldDate])
	assert.Equal(t, []string{"aws", "github"}, meta[FieldTags])
	assert.Equal(t, int64(10), meta["weight"])
}

func TestDecode_QuotedTOMLDate(t *testing.T) {
	meta, err := Decode([]byte("title = \"Sample\"\ndate = \"2022-07-31\"\n"), StyleTOML)
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2022, Month: time.July, Day: 31}, meta[FieldDate])
}

func TestDecode_ListOrderPreserved(t *testing.T) {
	for _, tc := range []struct {
		style   Style
		content string
	}{
		{StyleTOML, `tags = ["zeta", "alpha", "mu"]`},
		{StyleYAML, `tags: ["zeta", "alpha", "mu"]`},
		{StyleYAML, "tags:\n  - zeta\n  - alpha\n  - mu\n"},
	} {
		meta, err := Decode([]byte(tc.content), tc.style)
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mu"}, meta[FieldTags])
	}
}

func TestDecode_ScalarListElementsStringified(t *testing.T) {
	meta, err := Decode([]byte("tags: [go, 2022, true]\n"), StyleYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "2022", "true"}, meta[FieldTags])
}

func TestDecode_EmptyBlock(t *testing.T) {
	for _, style := range []Style{StyleYAML, StyleTOML} {
		meta, err := Decode(nil, style)
		require.NoError(t, err)
		assert.NotNil(t, meta)
		assert.Empty(t, meta)
	}
}

func TestDecode_NonListTagsLeftForValidator(t *testing.T) {
	meta, err := Decode([]byte("tags: solo\n"), StyleYAML)
	require.NoError(t, err)
	assert.Equal(t, "solo", meta[FieldTags])
}

func TestDecode_MalformedFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		content  string
		wantLine int
	}{
		{"unterminated yaml quote", StyleYAML, "title: \"Unterminated\n", 0},
		{"unbalanced yaml bracket", StyleYAML, "tags: [a, b\n", 0},
		{"yaml line without separator", StyleYAML, "title: ok\njust some words\nauthor: me\n", 0},
		{"yaml scalar block", StyleYAML, "just words\n", 0},
		{"yaml duplicate key", StyleYAML, "title: a\ntitle: b\n", 0},
		{"unterminated toml quote", StyleTOML, "title = \"Unterminated\n", 1},
		{"unbalanced toml bracket", StyleTOML, "title = \"x\"\ntags = [\"a\", \"b\"\n", 0},
		{"toml line without separator", StyleTOML, "title = \"x\"\njust words\n", 2},
		{"toml duplicate key", StyleTOML, "title = \"a\"\ntitle = \"b\"\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content), tt.style)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedFrontMatter), "got %v", err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.style, se.Style)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, se.Line)
			}
		})
	}
}

func TestDecode_InvalidFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		style   Style
		content string
		field   string
	}{
		{"slashed date", StyleYAML, "date: 2022/07/31\n", FieldDate},
		{"short month", StyleYAML, "date: \"2022-7-31\"\n", FieldDate},
		{"impossible date", StyleYAML, "date: 2022-02-30\n", FieldDate},
		{"numeric date", StyleYAML, "date: 20220731\n", FieldDate},
		{"empty date", StyleYAML, "date: \"\"\n", FieldDate},
		{"yaml datetime", StyleYAML, "date: 2022-07-31T10:00:00Z\n", FieldDate},
		{"yaml midnight datetime", StyleYAML, "date: 2022-07-31 00:00:00\n", FieldDate},
		{"toml datetime", StyleTOML, "date = 2022-07-31T10:00:00Z\n", FieldDate},
		{"toml local datetime", StyleTOML, "date = 2022-07-31T10:00:00\n", FieldDate},
		{"nested tag", StyleYAML, "tags: [a, [b, c]]\n", FieldTags},
		{"null alias", StyleYAML, "aliases: [a, null]\n", FieldAliases},
		{"table in toml tags", StyleTOML, "tags = [{name = \"a\"}]\n", FieldTags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.content), tt.style)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFieldValue), "got %v", err)
			assert.False(t, errors.Is(err, ErrMalformedFrontMatter))

			var fe *FieldValueError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestDecode_DateReason(t *testing.T) {
	_, err := Decode([]byte("date: 2022/07/31\n"), StyleYAML)
	var fe *FieldValueError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, "must be a calendar date in YYYY-MM-DD form", fe.Reason)
}

func TestDecode_UnsupportedStyle(t *testing.T) {
	_, err := Decode([]byte("title: x"), StyleNone)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	input := []byte("+++\ntitle = \"Sample\"\ndate = \"2022-07-31\"\ntags = [\"aws\", \"github\"]\n+++\nBody text here.\n")

	block, meta, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, StyleTOML, block.Style)
	assert.Equal(t, "Body text here.\n", string(input[block.BodyStart:]))
	assert.Equal(t, Metadata{
		FieldTitle: "Sample",
		FieldDate:  Date{Year: 2022, Month: time.July, Day: 31},
		FieldTags:  []string{"aws", "github"},
	}, meta)
}

func TestParse_NoFrontMatter(t *testing.T) {
	block, meta, err := Parse([]byte("Just a body.\n"))
	require.NoError(t, err)
	assert.Equal(t, StyleNone, block.Style)
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}

func TestParse_UnterminatedQuote(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: \"Unterminated\n---\nBody"))
	assert.True(t, errors.Is(err, ErrMalformedFrontMatter), "got %v", err)
}

func TestParse_Unclosed(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: x\nBody"))
	assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
}

func TestMetadata_Clone(t *testing.T) {
	orig := Metadata{FieldTags: []string{"a", "b"}, FieldTitle: "t"}
	clone := orig.Clone()

	clone[FieldTags].([]string)[0] = "changed"
	clone[FieldTitle] = "other"

	assert.Equal(t, []string{"a", "b"}, orig[FieldTags])
	assert.Equal(t, "t", orig[FieldTitle])
	assert.Nil(t, Metadata(nil).Clone())
}
