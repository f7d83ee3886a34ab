// Package config loads the settings mkr starts with: which build file to
// read, how to log and where to send build events. Values come from
// defaults, then an optional mkr.yaml or mkr.toml file, then MKR_*
// environment variables. Command line options applied later by the build
// itself take precedence over all of them.
package config
