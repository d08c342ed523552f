package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	antsv2 "github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) entries(t *testing.T) []map[string]any {
	b.lock.Lock()
	defer b.lock.Unlock()
	res := make([]map[string]any, 0, 8)
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		res = append(res, entry)
	}
	return res
}

func newTestLogger(t *testing.T, out *syncBuffer, opts ...XLoggerOption) XLogger {
	base := []XLoggerOption{
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerEncoder(JSON),
		WithXLoggerWriter(out),
		WithXLoggerTimeEncoder(zapcore.ISO8601TimeEncoder),
		WithXLoggerLevelEncoder(zapcore.CapitalLevelEncoder),
	}
	return NewXLogger(append(base, opts...)...)
}

func TestXLogger_LevelChange(t *testing.T) {
	out := &syncBuffer{}
	logger := newTestLogger(t, out)
	require.Equal(t, "debug", logger.Level())

	logger.Debug("first", zap.Int("n", 1))
	logger.IncreaseLogLevel(zapcore.InfoLevel)
	logger.Debug("dropped")
	logger.Info("second")
	logger.Warn("third")
	logger.Error(errors.New("boom"), "fourth")
	require.NoError(t, logger.Sync())

	entries := out.entries(t)
	require.Len(t, entries, 4)
	require.Equal(t, "first", entries[0]["msg"])
	require.Equal(t, "DEBUG", entries[0]["lvl"])
	require.Equal(t, float64(1), entries[0]["n"])
	require.Equal(t, "second", entries[1]["msg"])
	require.Equal(t, "WARN", entries[2]["lvl"])
	require.Equal(t, "boom", entries[3]["error"])
	require.Contains(t, entries[3]["callAt"], "xlog_test.go")
}

func TestXLogger_ErrorStack(t *testing.T) {
	out := &syncBuffer{}
	logger := newTestLogger(t, out)
	err := multierr.Combine(errors.New("close a"), errors.New("close b"))
	logger.ErrorStack(err, "purge")
	logger.ErrorStack(nil, "nothing")

	entries := out.entries(t)
	require.Len(t, entries, 2)
	errs, ok := entries[0]["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 2)
	_, ok = entries[1]["errors"]
	require.False(t, ok)
}

func TestXLogger_ContextFields(t *testing.T) {
	out := &syncBuffer{}
	logger := newTestLogger(t, out,
		WithXLoggerContextFieldExtract("traceId"),
		WithXLoggerContextFieldExtract("service", "svc"),
		WithXLoggerContextFieldExtract("secret", ContextKeyMapToOmitempty),
	)
	ctx := context.WithValue(context.Background(), ContextKey("traceId"), "abc")
	ctx = context.WithValue(ctx, ContextKey("secret"), "xyz")
	logger.InfoContext(ctx, "ctx")
	logger.ErrorContext(ctx, errors.New("bad"), "ctx error")

	entries := out.entries(t)
	require.Len(t, entries, 2)
	require.Equal(t, "abc", entries[0]["traceId"])
	require.Equal(t, "nil", entries[0]["svc"])
	_, ok := entries[0]["secret"]
	require.False(t, ok)
	require.Equal(t, "bad", entries[1]["error"])
}

func TestXLogger_Options(t *testing.T) {
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(nil))
	})

	testcases := []struct {
		in       string
		expected zapcore.Level
	}{
		{"", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{" WARN ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.DebugLevel},
	}
	for _, tc := range testcases {
		require.Equal(t, tc.expected, getLogLevelOrDefault(tc.in), tc.in)
	}

	t.Setenv("XLOG_LVL", "warn")
	out := &syncBuffer{}
	logger := NewXLogger(WithXLoggerWriter(out), WithXLoggerEncoder(PlainText))
	require.Equal(t, "warn", logger.Level())
	logger.Logf(zapcore.InfoLevel, "dropped %d", 1)
	logger.Logf(zapcore.WarnLevel, "kept %d", 2)
	require.Contains(t, out.buf.String(), "kept 2")
	require.NotContains(t, out.buf.String(), "dropped")

	require.Equal(t, "error", NewXLogger(WithXLoggerLevelText("error")).Level())
}

func TestAntsXLogger_ParentLogLevelChanged(t *testing.T) {
	var logger *AntsXLogger
	logger.Printf("test %d", 123)

	out := &syncBuffer{}
	parentLogger := newTestLogger(t, out)
	logger = NewAntsXLogger(parentLogger)
	parentLogger.IncreaseLogLevel(zapcore.FatalLevel)
	logger.Printf("test %d", 1)
	parentLogger.IncreaseLogLevel(zapcore.DebugLevel)
	logger.Printf("test %d", 2)
	_ = parentLogger.Sync()

	entries := out.entries(t)
	require.Len(t, entries, 1)
	require.Equal(t, "test 2", entries[0]["msg"])
	require.Equal(t, "Ants", entries[0]["component"])
	_, ok := entries[0]["callAt"]
	require.False(t, ok)
}

func TestAntsXLogger_AntsPool(t *testing.T) {
	out := &syncBuffer{}
	parentLogger := newTestLogger(t, out)
	logger := NewAntsXLogger(parentLogger)

	p, err := antsv2.NewPool(10, antsv2.WithLogger(logger))
	require.NoError(t, err)
	defer p.Release()
	err = p.Submit(func() {
		panic("xlogger panic in ants pool")
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(func() string {
			out.lock.Lock()
			defer out.lock.Unlock()
			return out.buf.String()
		}(), "Ants")
	}, time.Second, 10*time.Millisecond)
}
