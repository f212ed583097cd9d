package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func GetLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.data.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.data.status = statusCode
}

// WithLogging logs method, uri, status, size and duration of every request.
func WithLogging(h http.Handler, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		data := &responseData{status: http.StatusOK}
		lw := loggingResponseWriter{ResponseWriter: w, data: data}
		h.ServeHTTP(&lw, r)
		log.Infoln(
			"uri", r.RequestURI,
			"method", r.Method,
			"status", data.status,
			"size", data.size,
			"duration", time.Since(start),
		)
	}
}
