package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus string
		wantSize   string
	}{
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte("hello"))
			},
			wantStatus: "status 201",
			wantSize:   "size 5",
		},
		{
			name: "implicit ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("hi"))
				w.Write([]byte("!"))
			},
			wantStatus: "status 200",
			wantSize:   "size 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			h := WithLogging(tt.handler, zap.New(core).Sugar())

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/?x=1", nil))

			entries := logs.All()
			require.Len(t, entries, 1)
			msg := entries[0].Message
			assert.Contains(t, msg, "uri /?x=1")
			assert.Contains(t, msg, "method POST")
			assert.Contains(t, msg, tt.wantStatus)
			assert.Contains(t, msg, tt.wantSize)
		})
	}
}

func TestLoggingResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	data := &responseData{}
	lw := &loggingResponseWriter{ResponseWriter: rec, data: data}

	lw.WriteHeader(http.StatusTeapot)
	n, err := lw.Write([]byte("short and stout"))
	require.NoError(t, err)

	assert.Equal(t, 15, n)
	assert.Equal(t, http.StatusTeapot, data.status)
	assert.Equal(t, 15, data.size)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
