// Package config loads the build configuration from YAML or TOML files and
// converts it into transform options.
//
// Relative paths in a configuration file are resolved against the directory
// holding the file. Load only decodes and normalizes; call Validate once
// command line overrides are applied.
package config
