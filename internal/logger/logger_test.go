package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func swapObserved(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, observed := observer.New(zapcore.DebugLevel)

	original := L()
	Set(zap.New(core))
	t.Cleanup(func() { Set(original) })

	return observed
}

func TestInit(t *testing.T) {
	original := L()
	defer Set(original)

	t.Run("Production", func(t *testing.T) {
		Init("production", "warn")
		assert.NotNil(t, L())
		assert.False(t, L().Core().Enabled(zapcore.InfoLevel))
		assert.True(t, L().Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Development", func(t *testing.T) {
		Init("development", "")
		assert.NotNil(t, L())
		assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Unknown level keeps default", func(t *testing.T) {
		Init("production", "chatty")
		assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
	})
}

func TestL_LazyInit(t *testing.T) {
	original := L()
	defer Set(original)

	Set(nil)
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
}

func TestRequestIDFrom(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	observed := swapObserved(t)

	t.Run("WithRequestAndProfile", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")
		ctx = WithProfileID(ctx, 42)

		FromCtx(ctx).Info("tagged")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, uint64(42), fields["profile_id"])
	})

	t.Run("Bare", func(t *testing.T) {
		FromCtx(context.Background()).Info("bare")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, Sync)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "test-id-123", seen)
	})

	t.Run("Replaces unsafe ID", func(t *testing.T) {
		for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("x", 65)} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, bad)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.NotEqual(t, bad, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		}
	})
}
