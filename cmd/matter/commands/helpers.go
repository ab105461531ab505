package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/matter/internal/config"
	"github.com/thoreinstein/matter/internal/document/loader"
	docvalidator "github.com/thoreinstein/matter/internal/document/validator"
	matterrors "github.com/thoreinstein/matter/internal/errors"
	"github.com/thoreinstein/matter/internal/logging"
	"github.com/thoreinstein/matter/internal/paths"
	"github.com/thoreinstein/matter/internal/validator"
	"github.com/thoreinstein/matter/pkg/frontmatter"
)

// settings returns the loaded configuration, falling back to defaults for
// commands run without initConfig (tests).
func settings() *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		ContentDir:    config.DefaultContentDir,
		Patterns:      []string{config.DefaultPattern},
		WatchDebounce: config.DefaultWatchDebounce,
	}
}

func fieldValidator(c *config.Config) *docvalidator.Validator {
	return docvalidator.New(docvalidator.WithRequired(c.RequiredFields...))
}

func newLoader(ctx context.Context, c *config.Config) *loader.Loader {
	return loader.New(
		loader.WithLogger(logging.FromContext(ctx)),
		loader.WithValidator(fieldValidator(c)),
		loader.WithWorkers(c.Workers),
		loader.WithMaxFileSize(c.MaxFileSize),
		loader.WithDebounce(c.WatchDebounce),
	)
}

// targets resolves args against the configuration and refuses empty sets.
func targets(c *config.Config, args []string) ([]string, error) {
	files, err := loader.Targets(c.ContentDir, c.Patterns, args)
	if err != nil {
		if errors.Is(err, matterrors.ErrNotFound) {
			return nil, matterrors.NewUserError(err, "Check the path and try again")
		}
		return nil, matterrors.NewUserError(err, "Check the patterns setting in your config")
	}
	if len(files) == 0 {
		return nil, matterrors.NewUserError(matterrors.ErrNoContent, "Check content_dir and patterns in your config")
	}
	return files, nil
}

var reasonMessages = map[docvalidator.Reason]string{
	docvalidator.ReasonMissing:   "required field is missing",
	docvalidator.ReasonEmpty:     "required field is empty",
	docvalidator.ReasonWrongType: "field has the wrong type",
}

// addResult records the problems of one loaded file in res. Blank optional
// fields of a decoded document are added as warnings after any errors.
func addResult(res *validator.Result, root string, v *docvalidator.Validator, r loader.Result) {
	res.Checked++
	file := paths.Display(root, r.Path)
	if r.Err != nil {
		addError(res, file, r.Err)
	}
	if r.Document != nil {
		for _, p := range v.Advise(r.Document.FrontMatter()) {
			res.AddWarning(file, p.Field, "optional field is blank", nil)
		}
	}
}

func addError(res *validator.Result, file string, err error) {
	var verr *docvalidator.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			msg, ok := reasonMessages[p.Reason]
			if !ok {
				msg = string(p.Reason)
			}
			res.AddError(file, p.Field, msg, p.Value)
		}
		return
	}

	var fverr *frontmatter.FieldValueError
	if errors.As(err, &fverr) {
		res.AddError(file, fverr.Field, fverr.Reason, fverr.Value)
		return
	}

	var serr *frontmatter.SyntaxError
	if errors.As(err, &serr) {
		issue := validator.Issue{
			Severity: validator.SeverityError,
			File:     file,
			Message:  fmt.Sprintf("malformed %s front matter: %v", serr.Style, serr.Err),
		}
		if serr.Line > 0 {
			issue.Context = map[string]string{"line": strconv.Itoa(serr.Line)}
		}
		res.Add(issue)
		return
	}

	if errors.Is(err, frontmatter.ErrMalformedDocument) {
		res.AddError(file, "", "front matter block is never closed", nil)
		return
	}

	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		res.AddError(file, "", loadErr.Err.Error(), nil)
		return
	}
	res.AddError(file, "", err.Error(), nil)
}
