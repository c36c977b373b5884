// Package config loads jabref configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// check options.
package config
