package telemetry

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thaumlab/aspecter/pkg/types"
)

func newTestParquetHandler(t *testing.T) (*ParquetHandler, string) {
	t.Helper()

	dir := t.TempDir()
	h, err := NewParquetHandler(slog.NewTextHandler(io.Discard, nil), dir)
	require.NoError(t, err)
	return h, dir
}

func TestParquetHandlerCloseFlushes(t *testing.T) {
	h, dir := newTestParquetHandler(t)
	logger := slog.New(h)

	ctx := context.WithValue(context.Background(), types.ContextKeyRequestID, "req-42")
	ctx = context.WithValue(ctx, types.ContextKeyRequestSource, "http")
	logger.ErrorContext(ctx, "graph load failed", "aspect", "Lux")

	// The batch is smaller than the flush threshold, so nothing is on disk
	// until Close.
	files, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, h.Close())

	files, err = filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	records, err := parquet.ReadFile[LogRecord](files[0])
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "graph load failed", records[0].Message)
	assert.Equal(t, "ERROR", records[0].Level)
	assert.Equal(t, "req-42", records[0].RequestID)
	assert.Equal(t, "http", records[0].RequestSource)
	assert.Contains(t, records[0].Attributes, "Lux")
}

func TestParquetHandlerSkipsBelowError(t *testing.T) {
	h, dir := newTestParquetHandler(t)
	logger := slog.New(h)

	logger.Info("loaded aspect graph")
	logger.Warn("rejected recipe")

	require.NoError(t, h.Close())

	files, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
