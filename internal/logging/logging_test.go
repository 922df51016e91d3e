package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel zerolog.Level
		wantFile  bool
		fallback  bool
	}{
		{
			name:      "stderr defaults to info",
			cfg:       Config{Output: OutputStderr},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "level parsed case-insensitively",
			cfg:       Config{Level: "DEBUG", Output: OutputDiscard},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name:      "bad level falls back to info",
			cfg:       Config{Level: "loud", Output: OutputDiscard},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "file output",
			cfg:       Config{Level: "warn", Output: OutputFile, File: filepath.Join(t.TempDir(), "logs", "vgrid.log")},
			wantLevel: zerolog.WarnLevel,
			wantFile:  true,
		},
		{
			name:      "file output without a path falls back",
			cfg:       Config{Output: OutputFile},
			wantLevel: zerolog.InfoLevel,
			fallback:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewLoggerWithPath(tt.cfg)
			t.Cleanup(func() { _ = result.Close() })

			assert.Equal(t, tt.wantLevel, result.Logger.GetLevel())
			assert.Equal(t, tt.wantFile, result.UsingFile)
			assert.Equal(t, tt.fallback, result.FallbackUsed)
			if tt.fallback {
				assert.NotEmpty(t, result.FallbackReason)
			}
			if tt.wantFile {
				assert.Equal(t, tt.cfg.File, result.FilePath)
				_, err := os.Stat(tt.cfg.File)
				require.NoError(t, err)
			}
		})
	}
}

func TestLogPathResult_CloseTwice(t *testing.T) {
	result := NewLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(t.TempDir(), "a.log")})
	require.True(t, result.UsingFile)
	require.NoError(t, result.Close())
	require.NoError(t, result.Close())

	var nilResult *LogPathResult
	assert.NoError(t, nilResult.Close())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(zerolog.New(&buf), "grid")
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"grid"`)
}

func TestFromContext(t *testing.T) {
	//nolint:staticcheck // A nil context must not panic.
	assert.NotNil(t, FromContext(nil))

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26, "ULID")

	ctx = ContextWithTraceID(ctx, "trace-1")
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.Equal(t, "trace-1", GetOrGenerateTraceID(ctx))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/vgrid.log")
	PrintFallbackWarning(&buf, "permission denied")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Logging to /tmp/vgrid.log", lines[0])
	assert.Contains(t, lines[1], "permission denied")
}
