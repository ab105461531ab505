package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/matter/internal/config"
	docvalidator "github.com/thoreinstein/matter/internal/document/validator"
	matterrors "github.com/thoreinstein/matter/internal/errors"
	"github.com/thoreinstein/matter/internal/logging"
	"github.com/thoreinstein/matter/pkg/fileutil"
	"github.com/thoreinstein/matter/pkg/frontmatter"
)

var (
	convertTo    string
	convertWrite bool
)

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target style: yaml or toml (required)")
	convertCmd.Flags().BoolVar(&convertWrite, "write", false, "replace the file instead of printing")
	_ = convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Rewrite a document's front matter in another style",
	Long: `Rewrite the front matter of a document as YAML (---) or TOML (+++).

Field values and the body are preserved. Key order and comments are not.
TOML has no null, so a YAML document with an empty field is refused
rather than converted with the field missing.
The result is printed unless --write is given, in which case the file is
replaced atomically.`,
	Example: `  matter convert content/post/oidc.md --to yaml
  matter convert content/post/oidc.md --to toml --write`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), cmd.OutOrStdout(), settings(), args[0], convertTo, convertWrite)
	},
}

func runConvert(ctx context.Context, w io.Writer, c *config.Config, path, to string, write bool) error {
	style, err := frontmatter.ParseStyle(to)
	if err != nil {
		return matterrors.NewUserError(err, "Use --to yaml or --to toml")
	}

	doc, err := newLoader(ctx, c).LoadFile(path)
	if err != nil && !errors.Is(err, docvalidator.ErrValidation) {
		return matterrors.NewUserError(err, "Fix the document before converting it")
	}

	out, err := frontmatter.Format(style, doc.FrontMatter(), doc.Body())
	if err != nil {
		if errors.Is(err, frontmatter.ErrInvalidFieldValue) {
			return matterrors.NewUserError(err, "Give the field a value or remove it, then convert again")
		}
		return matterrors.NewUserError(err, "")
	}

	if !write {
		_, err := w.Write(out)
		return errors.Wrap(err, "writing output")
	}

	if err := fileutil.ReplaceFile(path, out); err != nil {
		return matterrors.NewSystemError(err, "Check file permissions")
	}
	logging.FromContext(ctx).Info("converted", "path", path, "from", doc.Style(), "to", style)
	fmt.Fprintf(w, "✓ %s now uses %s front matter\n", path, style)
	return nil
}
