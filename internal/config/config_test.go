package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(dir, env(nil))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultBuildFile), cfg.BuildFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Source)
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writeFile(t, dir, "mkr.yaml", `
build_file: build/Mkrfile.hcl
log_level: debug
log_format: json
verbose: true
notify: http://localhost:3000
vars:
  version: "1.2"
`)

	// --- Act ---
	cfg, err := Load(dir, env(nil))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "build", "Mkrfile.hcl"), cfg.BuildFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "http://localhost:3000", cfg.Notify)
	assert.Equal(t, map[string]string{"version": "1.2"}, cfg.Vars)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "mkr.toml", `
log_level = "warn"

[vars]
name = "mkr"
`)

	// --- Act ---
	cfg, err := Load(dir, env(nil))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, DefaultBuildFile), cfg.BuildFile)
	assert.Equal(t, "mkr", cfg.Vars["name"])
}

func TestLoad_YAMLPreferredOverTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "mkr.toml", `log_level = "error"`)
	writeFile(t, dir, "mkr.yaml", `log_level: debug`)

	cfg, err := Load(dir, env(nil))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "mkr.yaml", "log_level: debug\n")
	custom := writeFile(t, dir, "custom.toml", `log_format = "json"`)

	// --- Act ---
	cfg, err := Load(dir, env(map[string]string{
		EnvConfig:    custom,
		EnvBuildFile: "other.hcl",
		EnvLogLevel:  "ERROR",
		EnvVerbose:   "true",
	}))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, custom, cfg.Source)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "other.hcl"), cfg.BuildFile)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		file    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown yaml key", file: "mkr.yaml", content: "workers: 4\n", wantErr: "field workers not found"},
		{name: "unknown toml key", file: "mkr.toml", content: "workers = 4\n", wantErr: "unknown key workers"},
		{name: "malformed toml", file: "mkr.toml", content: "log_level = \n", wantErr: "error loading config"},
		{name: "bad verbose env", env: map[string]string{EnvVerbose: "sometimes"}, wantErr: "invalid MKR_VERBOSE value"},
		{name: "missing explicit file", env: map[string]string{EnvConfig: "absent.yaml"}, wantErr: "failed to read config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if tc.file != "" {
				writeFile(t, dir, tc.file, tc.content)
			}

			_, err := Load(dir, env(tc.env))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_AggregatesProblems(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := Config{
		BuildFile: " ",
		LogLevel:  "loud",
		LogFormat: "xml",
		Vars:      map[string]string{"": "x"},
		Notify:    "localhost",
	}

	// --- Act ---
	err := cfg.Validate()

	// --- Assert ---
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Diagnostics(), 5)
	assert.Contains(t, err.Error(), "build_file must not be empty")
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
	assert.Contains(t, err.Error(), `log_format must be "text" or "json", got "xml"`)
	assert.Contains(t, err.Error(), "notify must be an absolute URL")
}
