package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/matter/internal/config"
	"github.com/thoreinstein/matter/internal/document/loader"
	matterrors "github.com/thoreinstein/matter/internal/errors"
	"github.com/thoreinstein/matter/internal/logging"
	"github.com/thoreinstein/matter/internal/paths"
	"github.com/thoreinstein/matter/internal/validator"
)

var (
	validateJSON  bool
	validateWatch bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output results as JSON")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false,
		"keep running and re-check files as they change")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Check the front matter of content files",
	Long: `Check the front matter of content files for syntax errors and field problems.

Paths may be files or directories. Directories are searched with the
configured patterns (default "**/*.md"). With no paths, content_dir is
checked. Every problem in every file is reported.

Blank optional fields (description, author, tags, aliases) are reported
as warnings and do not fail the run.

Exit codes:
  0 - All files valid (warnings allowed)
  1 - At least one file has errors`,
	Example: `  # Check the configured content tree
  matter validate

  # Check specific files and directories
  matter validate content/post/oidc.md content/notes

  # JSON output for CI
  matter validate --json

  # Re-check on every save
  matter validate content --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		if validateWatch {
			return runValidateWatch(cmd.Context(), cmd.OutOrStdout(), c, args)
		}
		return runValidate(cmd.Context(), cmd.OutOrStdout(), c, args)
	},
}

func reportFormat() validator.Format {
	if validateJSON {
		return validator.FormatJSON
	}
	return validator.FormatText
}

func runValidate(ctx context.Context, w io.Writer, c *config.Config, args []string) error {
	files, err := targets(c, args)
	if err != nil {
		return err
	}

	results := newLoader(ctx, c).LoadAll(ctx, files)

	v := fieldValidator(c)
	res := &validator.Result{}
	for _, r := range results {
		addResult(res, c.ContentDir, v, r)
	}

	if err := validator.NewReporter(w, reportFormat()).Report(res); err != nil {
		return matterrors.NewSystemError(err, "")
	}
	if res.HasErrors() {
		return matterrors.NewExitError(errReported, matterrors.ExitUser)
	}
	return nil
}

// runValidateWatch checks the tree once and then reports each file again
// whenever it changes, until ctx is cancelled.
func runValidateWatch(ctx context.Context, w io.Writer, c *config.Config, args []string) error {
	root := c.ContentDir
	switch len(args) {
	case 0:
	case 1:
		info, err := os.Stat(args[0])
		if err != nil || !info.IsDir() {
			return matterrors.NewUserError(errors.Newf("cannot watch %s", args[0]), "--watch takes a single directory")
		}
		root = args[0]
	default:
		return matterrors.NewUserError(errors.New("too many paths"), "--watch takes a single directory")
	}

	reporter := validator.NewReporter(w, reportFormat())
	v := fieldValidator(c)
	err := newLoader(ctx, c).Watch(ctx, root, c.Patterns, func(r loader.Result) {
		res := &validator.Result{}
		addResult(res, root, v, r)
		if len(res.Issues) == 0 && !validateJSON {
			fmt.Fprintln(w, color.GreenString("✓ %s", paths.Display(root, r.Path)))
			return
		}
		if err := reporter.Report(res); err != nil {
			logging.FromContext(ctx).Warn("report failed", "error", err)
		}
	})
	if err != nil {
		return matterrors.NewSystemError(err, "")
	}
	return nil
}
