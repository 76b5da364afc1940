// Package config loads shotredact configuration from YAML files and the
// environment. The CLI resolves precedence: flags, then an explicit
// --config file, then the local and global files, then SHOTREDACT_*
// variables (optionally from .env).
package config
