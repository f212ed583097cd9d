package compress

import (
	"compress/gzip"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type GzipWriter struct {
	OldW        http.ResponseWriter
	Writer      *gzip.Writer
	Log         *zap.SugaredLogger
	wroteHeader bool
	passthrough bool
}

func (w *GzipWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	h := w.OldW.Header()
	if h.Get("Content-Encoding") != "" {
		// already encoded by the handler, e.g. promhttp
		w.passthrough = true
		w.OldW.WriteHeader(statusCode)
		return
	}
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
	w.OldW.WriteHeader(statusCode)
}

func (w *GzipWriter) Header() http.Header {
	return w.OldW.Header()
}

func (w *GzipWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.passthrough {
		return w.OldW.Write(b)
	}
	return w.Writer.Write(b)
}

// GzipHandle compresses responses for clients that accept gzip.
func GzipHandle(next http.Handler, log *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			log.Errorf("Problem with gzip writer: %s", err.Error())
			next.ServeHTTP(w, r)
			return
		}
		gw := &GzipWriter{OldW: w, Writer: gz, Log: log}
		defer func() {
			if gw.wroteHeader && !gw.passthrough {
				gz.Close()
			}
		}()
		next.ServeHTTP(gw, r)
	})
}
