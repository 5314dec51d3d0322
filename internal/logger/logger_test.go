package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWithWriter(&buf, "production", level)
	t.Cleanup(func() { Init("development", "") })
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestCtxLoggingCarriesRequestFields(t *testing.T) {
	buf := capture(t, "")

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "u-1")
	ctx = WithProfileID(ctx, "p-1")
	CtxWithError(ctx, "dispatch failed", errors.New("boom"), "kind", "email")

	line := lastLine(t, buf)
	assert.Equal(t, "dispatch failed", line["msg"])
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "u-1", line["user_id"])
	assert.Equal(t, "p-1", line["profile_id"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "email", line["kind"])
	assert.Equal(t, "collabex", line["service"])
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestLevelOverride(t *testing.T) {
	buf := capture(t, "warn")

	Info("hidden")
	assert.Zero(t, buf.Len())

	WorkerLog("outbox", "deliver", errors.New("smtp timeout"), "attempts", 2)
	line := lastLine(t, buf)
	assert.Equal(t, "worker operation failed", line["msg"])
	assert.Equal(t, "outbox", line["worker"])
	assert.Equal(t, "smtp timeout", line["error"])
}

func TestFromContextWithoutFields(t *testing.T) {
	assert.Same(t, GetLogger(), FromContext(context.Background()))
	assert.Empty(t, RequestID(context.Background()))
}
