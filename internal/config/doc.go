// Package config loads freesscan settings from local and global YAML files
// and database settings from the environment. CLI code applies precedence
// (flags over local over global) when mapping these onto scan options.
package config
