// Package config provides configuration management for the matter CLI.
//
// Settings are read with Viper from config.yaml in the current directory,
// then from $MATTER_CONFIG_DIR or <XDG config home>/matter. Every key can
// be overridden by a MATTER_-prefixed environment variable:
//
//	content_dir: content
//	patterns:
//	  - "**/*.md"
//	required_fields: [title, date]
//	workers: 0          # 0 means GOMAXPROCS
//	watch_debounce: 200ms
//	max_file_size: 4194304
//
// Call [Init] once at startup, then [Load]. Loaded configuration is
// validated; failures match errors.ErrInvalidConfig.
package config
