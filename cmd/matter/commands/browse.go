package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/matter/internal/config"
	"github.com/thoreinstein/matter/internal/document"
	"github.com/thoreinstein/matter/internal/editor"
	"github.com/thoreinstein/matter/internal/paths"
)

var browseEdit bool

func init() {
	browseCmd.Flags().BoolVarP(&browseEdit, "edit", "e", false,
		"open the chosen document in $EDITOR at the start of its body")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse [path...]",
	Short: "Pick a document interactively",
	Long: `Open a fuzzy finder over the titles of well-formed documents, with a
preview of their front matter. The chosen document's path is printed,
or with --edit the document is opened in your editor.`,
	Example: `  # Print the chosen post's path
  matter browse content/post

  # Open the chosen post in your editor
  matter browse --edit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context(), cmd.OutOrStdout(), settings(), args)
	},
}

// openEditor launches the editor; tests replace it.
var openEditor = editor.Open

// findDocument runs the interactive finder; tests replace it.
var findDocument = func(docs []*document.Document, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(docs, label, opts...)
}

func runBrowse(ctx context.Context, w io.Writer, c *config.Config, args []string) error {
	files, err := targets(c, args)
	if err != nil {
		return err
	}

	var docs []*document.Document
	for _, r := range newLoader(ctx, c).LoadAll(ctx, files) {
		if r.Document != nil {
			docs = append(docs, r.Document)
		}
	}
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	idx, err := findDocument(docs,
		func(i int) string { return browseLabel(c.ContentDir, docs[i]) },
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			return browsePreview(docs[i], width, height)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive browse failed")
	}

	doc := docs[idx]
	if browseEdit {
		return openEditor(ctx, doc.Path(), doc.BodyLine())
	}
	fmt.Fprintln(w, doc.Path())
	return nil
}

func browseLabel(root string, doc *document.Document) string {
	title := doc.Title()
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s  %s", title, paths.Display(root, doc.Path()))
}

// browsePreview renders the fields of doc, then as much of the body as
// fits in height lines of width columns.
func browsePreview(doc *document.Document, width, height int) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%-12s %s", label+":", value))
		}
	}
	add("Title", doc.Title())
	add("Description", doc.Description())
	add("Author", doc.Author())
	if d, ok := doc.Date(); ok {
		add("Date", d.String())
	}
	add("Tags", strings.Join(doc.Tags(), ", "))
	add("Aliases", strings.Join(doc.Aliases(), ", "))
	add("Slug", doc.Slug())
	lines = append(lines, "")
	lines = append(lines, strings.Split(strings.TrimRight(doc.Body(), "\n"), "\n")...)

	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	if width > 0 {
		for i, l := range lines {
			if r := []rune(l); len(r) > width {
				lines[i] = string(r[:width])
			}
		}
	}
	return strings.Join(lines, "\n")
}
