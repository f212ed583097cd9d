package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Srv *http.Server
	Log *zap.SugaredLogger
}

func NewServer(addr string, handler http.Handler, log *zap.SugaredLogger) (*Server, error) {
	if handler == nil {
		return nil, errors.New("Server needs a handler")
	}
	return &Server{
		Log: log,
		Srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// RunServer serves until done is closed or signalled, then shuts down
// gracefully so in-flight token requests can finish.
func (s *Server) RunServer(done chan struct{}, w *sync.WaitGroup) {
	defer w.Done()
	errCh := make(chan error, 1)
	go func() {
		s.Log.Infof("Server is listening on %s", s.Srv.Addr)
		errCh <- s.Srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			s.Log.Errorf("Server is stopped: %s", err.Error())
		}
		return
	case <-done:
	}

	s.Log.Infof("Server is stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Srv.Shutdown(ctx); err != nil {
		s.Log.Errorf("Problem with shutdown: %s", err.Error())
	}
	<-errCh
	s.Log.Infof("Server is stopped")
}
