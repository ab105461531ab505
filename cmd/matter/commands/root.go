// Package commands implements the CLI commands for matter.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/matter/cmd"
	"github.com/thoreinstein/matter/internal/config"
	matterrors "github.com/thoreinstein/matter/internal/errors"
	"github.com/thoreinstein/matter/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration, or nil when loading failed.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// errReported marks failures whose details were already printed.
var errReported = errors.New("problems reported")

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/matter/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("matter version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "matter",
	Short: "Load and lint front matter in Markdown content",
	Long: `matter reads the front matter block at the top of Markdown content files,
in YAML (---) or TOML (+++) form, and checks it against the fields a
static site expects: title, description, author, date, tags and aliases.

Every problem in a file is reported at once, and whole content trees are
checked in parallel.`,
	Example: `  # Check every document under the configured content_dir
  matter validate

  # Check a directory and a single file, as JSON
  matter validate content/post notes/draft.md --json

  # Show the parsed front matter of a document
  matter show content/post/oidc.md

  # Rewrite a document's front matter as TOML
  matter convert content/post/oidc.md --to toml --write`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if configLoadErr != nil {
			return matterrors.NewConfigError(configLoadErr)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return matterrors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("MATTER_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{
		logging.NewFormatHandler(cmd.ErrOrStderr(), logging.Format(logFormat), opts),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return matterrors.NewUserError(err, "failed to open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	logger := slog.New(logging.NewFanout(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	return exitCode(rootCmd.ErrOrStderr(), err)
}

// exitCode prints err unless it was already reported and maps it to an
// exit code. Errors that are not ExitErrors are usage mistakes.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return matterrors.ExitSuccess
	}

	var exitErr *matterrors.ExitError
	isExit := errors.As(err, &exitErr)

	if !errors.Is(err, errReported) {
		fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), err)
		if isExit && exitErr.Suggestion != "" {
			fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
		}
	}

	if isExit {
		return exitErr.Code
	}
	return matterrors.ExitUser
}
