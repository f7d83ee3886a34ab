package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/specialistvlad/mkr/internal/logging"
)

// DefaultBuildFile is read when nothing else is configured.
const DefaultBuildFile = "Mkrfile.hcl"

// Config holds the startup settings.
type Config struct {
	BuildFile string
	LogLevel  string
	LogFormat string
	Verbose   bool
	Vars      map[string]string
	// Notify is a socket.io URL receiving build events. Empty disables it.
	Notify string
	// Source is the file the settings were read from, if any.
	Source string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BuildFile: DefaultBuildFile,
		LogLevel:  "info",
		LogFormat: logging.FormatText,
		Vars:      map[string]string{},
	}
}

// ValidationError lists every invalid setting.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration:\n- %s", strings.Join(e.Problems, "\n- "))
}

// Diagnostics returns one line per problem.
func (e *ValidationError) Diagnostics() []string { return e.Problems }

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.BuildFile) == "" {
		problems = append(problems, "build_file must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("log_format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.LogFormat))
	}
	for name := range c.Vars {
		if name == "" || strings.Contains(name, "=") {
			problems = append(problems, fmt.Sprintf("invalid variable name %q", name))
		}
	}
	if c.Notify != "" {
		if u, err := url.Parse(c.Notify); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("notify must be an absolute URL, got %q", c.Notify))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ErrNoConfigFile is returned by Find when no candidate file exists.
var ErrNoConfigFile = errors.New("no config file found")
