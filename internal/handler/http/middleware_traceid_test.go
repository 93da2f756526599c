package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleasistemi/botmanager/internal/logger"
)

// newTestHandler builds a Handler with a nop logger for middleware unit
// tests; no services are wired.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func executeWithTraceID(h *Handler, incomingID string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if incomingID != "" {
		req.Header.Set(traceIDHeader, incomingID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantGenerated  bool // response header must be a fresh valid UUID
	}{
		{
			name:           "trace ID from request header is reused",
			requestTraceID: "my-custom-trace-id",
		},
		{
			name:          "no trace ID in request generates a UUID",
			wantGenerated: true,
		},
		{
			name:           "incoming UUID is preserved verbatim",
			requestTraceID: "550e8400-e29b-41d4-a716-446655440000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := executeWithTraceID(newTestHandler(), tt.requestTraceID)

			responseTraceID := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, responseTraceID, "X-Trace-ID header must be set in response")

			if tt.wantGenerated {
				_, err := uuid.Parse(responseTraceID)
				assert.NoError(t, err, "generated trace ID should be a valid UUID, got: %s", responseTraceID)
				return
			}
			assert.Equal(t, tt.requestTraceID, responseTraceID)
		})
	}
}

func TestWithTraceID_GeneratesUniqueIDs(t *testing.T) {
	h := newTestHandler()
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		rr := executeWithTraceID(h, "")
		id := rr.Header().Get(traceIDHeader)
		require.NotEmpty(t, id)

		_, duplicate := seen[id]
		assert.False(t, duplicate, "duplicate trace ID generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerReachesNextHandler(t *testing.T) {
	h := newTestHandler()
	var ctxLogger *logger.Logger

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromRequest(r)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)

	require.NotNil(t, ctxLogger)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
