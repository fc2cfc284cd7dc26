package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// ── construction ──────────────────────────────────────────────────────────────

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("legacyshield-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "legacyshield-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewLogger_BecomesDefaultContextLogger(t *testing.T) {
	l := NewLogger("default-role")
	t.Cleanup(func() { zerolog.DefaultContextLogger = nil })

	require.NotNil(t, zerolog.DefaultContextLogger)
	assert.Equal(t, l.Logger, *zerolog.DefaultContextLogger)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestSetLevel(t *testing.T) {
	NewLogger("level-role")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{level: "warn", want: zerolog.WarnLevel},
		{level: "", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "loud", want: zerolog.ErrorLevel, wantErr: true},
	}

	for _, tt := range tests {
		err := SetLevel(tt.level)
		if tt.wantErr {
			assert.Error(t, err, tt.level)
		} else {
			assert.NoError(t, err, tt.level)
		}
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), tt.level)
	}
}

// ── scoped children ───────────────────────────────────────────────────────────

func TestScopedLoggers(t *testing.T) {
	tests := []struct {
		name  string
		scope func(*Logger) *Logger
		key   string
		want  any
	}{
		{name: "user", scope: func(l *Logger) *Logger { return l.WithUser(42) }, key: "user_id", want: float64(42)},
		{name: "file", scope: func(l *Logger) *Logger { return l.WithFile("f-1") }, key: "file_id", want: "f-1"},
		{name: "rotation", scope: func(l *Logger) *Logger { return l.WithRotation("r-9") }, key: "rotation_id", want: "r-9"},
		{name: "child", scope: func(l *Logger) *Logger { return l.GetChildLogger() }, key: "role", want: "parent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			parent := &Logger{zerolog.New(&buf).With().Str("role", "parent").Logger()}

			child := tt.scope(parent)
			require.NotSame(t, parent, child)
			child.Info().Msg("scoped")

			entry := decodeEntry(t, &buf)
			assert.Equal(t, tt.want, entry[tt.key])
		})
	}
}

func TestScopedLoggers_DoNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf)}

	_ = parent.WithRotation("r-1").WithFile("f-1")
	parent.Info().Msg("plain")

	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "rotation_id")
	assert.NotContains(t, entry, "file_id")
}

// ── context lookup ────────────────────────────────────────────────────────────

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	FromContext(zl.WithContext(context.Background())).Info().Msg("from context")

	assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req").Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req", decodeEntry(t, &buf)["trace_id"])
	assert.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
