package config

import (
	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thoreinstein/matter/internal/paths"
)

var (
	errBadPattern = validation.NewError("validation_glob_pattern", "must be a valid glob pattern")
	errBadPath    = validation.NewError("validation_path", "must be a valid path")
)

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ContentDir, validation.Required, validation.By(validPath)),
		validation.Field(&c.Patterns,
			validation.Required,
			validation.Each(validation.Required, validation.By(validPattern)),
		),
		validation.Field(&c.RequiredFields, validation.Each(validation.Required)),
		validation.Field(&c.Workers, validation.Min(0)),
		validation.Field(&c.WatchDebounce, validation.Min(0)),
		validation.Field(&c.MaxFileSize, validation.Required, validation.Min(1)),
	)
}

func validPattern(value any) error {
	s, _ := value.(string)
	if !doublestar.ValidatePattern(s) {
		return errBadPattern
	}
	return nil
}

func validPath(value any) error {
	s, _ := value.(string)
	if paths.Check(s) != nil {
		return errBadPath
	}
	return nil
}
