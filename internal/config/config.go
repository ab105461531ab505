package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	matterrors "github.com/thoreinstein/matter/internal/errors"
	"github.com/thoreinstein/matter/internal/paths"
	"github.com/thoreinstein/matter/pkg/fileutil"
)

// EnvPrefix prefixes environment overrides, e.g. MATTER_CONTENT_DIR.
const EnvPrefix = "MATTER"

// Defaults applied by Init.
const (
	DefaultContentDir    = "."
	DefaultPattern       = "**/*.md"
	DefaultWatchDebounce = 200 * time.Millisecond
)

// Config represents the top-level configuration structure.
type Config struct {
	// ContentDir is the root that relative patterns are expanded against.
	ContentDir string `mapstructure:"content_dir" json:"content_dir" yaml:"content_dir"`
	// Patterns are doublestar globs selecting documents under ContentDir.
	Patterns []string `mapstructure:"patterns" json:"patterns" yaml:"patterns"`
	// RequiredFields are required in addition to title.
	RequiredFields []string `mapstructure:"required_fields" json:"required_fields" yaml:"required_fields"`
	// Workers bounds batch loading; 0 uses GOMAXPROCS.
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers"`
	// WatchDebounce coalesces bursts of file events in watch mode.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" json:"watch_debounce" yaml:"watch_debounce"`
	// MaxFileSize caps the bytes read from a single document.
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size" yaml:"max_file_size"`
}

// Init resets Viper and installs search paths, environment binding and
// defaults. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(configDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("content_dir", DefaultContentDir)
	viper.SetDefault("patterns", []string{DefaultPattern})
	viper.SetDefault("required_fields", []string{})
	viper.SetDefault("workers", 0)
	viper.SetDefault("watch_debounce", DefaultWatchDebounce)
	viper.SetDefault("max_file_size", fileutil.DefaultMaxFileSize)
}

func configDir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the search paths are tried and defaults
// are used when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// defaults only
		case os.IsNotExist(err) || errors.As(err, &notFound):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), matterrors.ErrNotFound)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if cfg.ContentDir != "" {
		dir, err := paths.Expand(cfg.ContentDir)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "validating config"), matterrors.ErrInvalidConfig)
		}
		cfg.ContentDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "validating config"), matterrors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when defaults were used.
func FileUsed() string {
	if f := viper.ConfigFileUsed(); f != "" {
		if abs, err := filepath.Abs(f); err == nil {
			return abs
		}
		return f
	}
	return ""
}
