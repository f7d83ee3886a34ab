package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_DisabledStillCountsAsUsed(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer
	sink := NewSink(New(&buf, FormatText, slog.LevelInfo), "verbose", slog.LevelDebug, false)

	// --- Act ---
	sink.Log(context.Background(), "hidden detail")

	// --- Assert ---
	assert.True(t, sink.Used())
	assert.EqualValues(t, 1, sink.Uses())
	assert.EqualValues(t, 0, sink.Written())
	assert.Empty(t, buf.String())
}

func TestSink_EnabledWritesBelowHandlerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, FormatText, slog.LevelError)
	sink := NewSink(logger, "verbose", slog.LevelDebug, false)

	sink.SetEnabled(true).Log(context.Background(), "Processing parameters", "params", "[-verbose]")

	assert.EqualValues(t, 1, sink.Written())
	out := buf.String()
	assert.Contains(t, out, `msg="Processing parameters"`)
	assert.Contains(t, out, "sink=verbose")
	assert.Contains(t, out, "level=DEBUG")
}

func TestSink_NotUsedUntilLogged(t *testing.T) {
	t.Parallel()

	sinks := NewSinks(New(&bytes.Buffer{}, FormatJSON, slog.LevelInfo), false)

	assert.False(t, sinks.Error.Used())
	assert.True(t, sinks.Error.Enabled())
	assert.True(t, sinks.Warn.Enabled())
	assert.True(t, sinks.Info.Enabled())
	assert.False(t, sinks.Verbose.Enabled())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
