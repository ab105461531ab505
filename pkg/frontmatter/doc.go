// Package frontmatter locates, decodes, and writes the metadata block at the
// top of a Markdown content file.
//
// Two delimiter styles are supported. A block opened by a line containing
// only "---" holds YAML; a block opened by "+++" holds TOML. The opening line
// must be the first line of the file and the block ends at the next line
// consisting of the same marker. Everything after the closing line is the
// body.
//
// # Basic Usage
//
//	block, meta, err := frontmatter.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s: %v\n", block.Style, meta[frontmatter.FieldTitle])
//	body := data[block.BodyStart:]
//
// # Recognized Fields
//
// The decoder normalizes a small set of fields shared by both styles:
//
//   - date: a calendar date written as YYYY-MM-DD, decoded to [Date]
//   - tags, aliases: ordered lists, decoded to []string
//
// All other keys, including title, description, and author, are passed
// through as the underlying YAML or TOML library produced them.
//
// # Error Handling
//
// Failures are reported against three sentinels that can be checked with
// [errors.Is]:
//
//   - [ErrMalformedDocument]: an opening delimiter without a closing one
//   - [ErrMalformedFrontMatter]: the block is not valid YAML or TOML
//   - [ErrInvalidFieldValue]: a recognized field has the wrong shape
//
// Both Unix (LF) and Windows (CRLF) line endings are handled.
package frontmatter
