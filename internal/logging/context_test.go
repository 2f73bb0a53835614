package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID_Explicit(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}

func TestWithRequestID_Generated(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	id := RequestIDFromContext(ctx)
	require.NotEmpty(t, id)

	// A second call gets a different ID.
	other := RequestIDFromContext(WithRequestID(context.Background(), ""))
	assert.NotEqual(t, id, other)
}

func TestContextFields_Empty(t *testing.T) {
	assert.Empty(t, ContextFields(context.Background()))
}

func TestContextFields_WithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")
	fields := ContextFields(ctx)
	require.Len(t, fields, 1)
	assert.Equal(t, "request.id", fields[0].Key)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "console")
	require.Error(t, err)
}

func TestNew_ValidLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		l, err := New(lvl, "json")
		require.NoError(t, err, lvl)
		require.NotNil(t, l)
	}
}
