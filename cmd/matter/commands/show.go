package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/matter/internal/config"
	"github.com/thoreinstein/matter/internal/document"
	docvalidator "github.com/thoreinstein/matter/internal/document/validator"
	matterrors "github.com/thoreinstein/matter/internal/errors"
	"github.com/thoreinstein/matter/pkg/frontmatter"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the parsed front matter of a document",
	Long: `Show the decoded front matter, slug and body of a single document.

Field problems are listed after the fields and make the command exit 1.`,
	Example: `  matter show content/post/oidc.md
  matter show content/post/oidc.md --json | jq .front_matter.tags`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), cmd.OutOrStdout(), settings(), args[0])
	},
}

// showOutput is the JSON form of a shown document.
type showOutput struct {
	Path        string                     `json:"path"`
	Style       string                     `json:"style"`
	Slug        string                     `json:"slug"`
	FrontMatter frontmatter.Metadata       `json:"front_matter"`
	Body        string                     `json:"body"`
	Valid       bool                       `json:"valid"`
	Problems    []*docvalidator.FieldError `json:"problems,omitempty"`
}

func runShow(ctx context.Context, w io.Writer, c *config.Config, path string) error {
	doc, err := newLoader(ctx, c).LoadFile(path)
	var verr *docvalidator.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return matterrors.NewUserError(err, "Run 'matter validate' on the file for details")
	}

	out := showOutput{
		Path:        doc.Path(),
		Style:       doc.Style().String(),
		Slug:        doc.Slug(),
		FrontMatter: doc.FrontMatter(),
		Body:        doc.Body(),
		Valid:       verr == nil,
	}
	if verr != nil {
		out.Problems = verr.Problems
	}

	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		printDocument(w, doc, out.Problems)
	}

	if !out.Valid {
		return matterrors.NewExitError(errReported, matterrors.ExitUser)
	}
	return nil
}

// fieldOrder lists the recognized fields in display order.
var fieldOrder = []string{
	frontmatter.FieldTitle,
	frontmatter.FieldDescription,
	frontmatter.FieldAuthor,
	frontmatter.FieldDate,
	frontmatter.FieldTags,
	frontmatter.FieldAliases,
}

// orderedKeys returns recognized keys first, then the rest sorted.
func orderedKeys(meta frontmatter.Metadata) []string {
	keys := make([]string, 0, len(meta))
	for _, k := range fieldOrder {
		if _, ok := meta[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range meta {
		if !slices.Contains(fieldOrder, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func printDocument(w io.Writer, doc *document.Document, problems []*docvalidator.FieldError) {
	bold := color.New(color.Bold).SprintFunc()
	key := color.New(color.FgCyan).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintln(w, bold(doc.Path()))
	fmt.Fprintf(w, "  %s %s\n", gray("style:"), doc.Style())
	fmt.Fprintf(w, "  %s %s\n", gray("slug: "), doc.Slug())
	fmt.Fprintln(w)

	meta := doc.FrontMatter()
	if len(meta) == 0 {
		fmt.Fprintln(w, gray("  (no front matter)"))
	}
	for _, k := range orderedKeys(meta) {
		fmt.Fprintf(w, "  %s: %s\n", key(k), formatValue(meta[k]))
	}

	body := doc.Body()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %d line(s), %d byte(s)\n", gray("body:"), strings.Count(body, "\n"), len(body))

	if len(problems) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.RedString("  Problems:"))
		for _, p := range problems {
			fmt.Fprintf(w, "    - %s\n", p.Error())
		}
	}
}
