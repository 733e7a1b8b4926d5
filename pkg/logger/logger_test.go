package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(WithLevel("loud"), WithOutputPaths([]string{"stdout"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse log level")
}

func TestNewLoggerCreatesLogDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.log")

	log, err := NewLogger(
		WithEncoding("console"),
		WithOutputPaths([]string{path}),
		WithErrorPaths([]string{"stderr"}),
	)
	require.NoError(t, err)
	log.Named("test").Info("hello", String("k", "v"))
	assert.DirExists(t, filepath.Dir(path))
}

func TestFromContextAddsRequestID(t *testing.T) {
	tl := NewTestLogger()
	ctx := WithRequestID(context.Background(), "req-1")

	FromContext(ctx, tl).Info("handled")
	FromContext(context.Background(), tl).Info("bare")

	entries := tl.GetEntries()
	require.Len(t, entries, 2)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "request_id", entries[0].Fields[0].Key)
	assert.Equal(t, "req-1", entries[0].Fields[0].String)
	assert.Empty(t, entries[1].Fields)
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestTestLoggerChildrenShareEntries(t *testing.T) {
	tl := NewTestLogger()
	tl.Named("api").Named("upload").Warn("slow")
	tl.Error("boom")

	entries := tl.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "api.upload", entries[0].Logger)
	assert.Equal(t, []string{"boom"}, tl.Messages("ERROR"))

	tl.Clear()
	assert.Empty(t, tl.GetEntries())
}
