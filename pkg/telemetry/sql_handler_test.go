package telemetry

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thaumlab/aspecter/pkg/types"
)

func newTestSQLHandler(t *testing.T) (*SQLHandler, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "telemetry.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h, err := NewSQLHandler(slog.NewTextHandler(io.Discard, nil), db)
	require.NoError(t, err)
	return h, db
}

func TestSQLHandlerPersistsErrors(t *testing.T) {
	h, db := newTestSQLHandler(t)
	logger := slog.New(h)

	ctx := context.WithValue(context.Background(), types.ContextKeyRequestID, "req-7")
	logger.ErrorContext(ctx, "store write failed", "aspect", "Ignis")

	var message, level, requestID, attributes string
	row := db.QueryRow("SELECT message, level, request_id, attributes FROM telemetry_logs")
	require.NoError(t, row.Scan(&message, &level, &requestID, &attributes))
	assert.Equal(t, "store write failed", message)
	assert.Equal(t, "ERROR", level)
	assert.Equal(t, "req-7", requestID)
	assert.Contains(t, attributes, "Ignis")
}

func TestSQLHandlerSkipsBelowError(t *testing.T) {
	h, db := newTestSQLHandler(t)
	logger := slog.New(h)

	logger.Info("loaded aspect graph")
	logger.Warn("rejected recipe")
	logger.Error("graph load failed")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM telemetry_logs").Scan(&count))
	assert.Equal(t, 1, count)
}
