package server

import (
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewServer(t *testing.T) {
	type args struct {
		addr    string
		handler http.Handler
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{name: "with handler", args: args{"127.0.0.1:0", http.NotFoundHandler()}, wantErr: false},
		{name: "without handler", args: args{"127.0.0.1:0", nil}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewServer(tt.args.addr, tt.args.handler, zap.NewNop().Sugar())
			assert.Equal(t, tt.wantErr, err != nil)
			if err != nil {
				return
			}
			assert.NotNil(t, got.Log)
			assert.Equal(t, tt.args.addr, got.Srv.Addr)
		})
	}
}

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServer_RunServer(t *testing.T) {
	addr := freeAddr(t)
	srv, err := NewServer(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}), zap.NewNop().Sugar())
	require.NoError(t, err)

	done := make(chan struct{})
	var w sync.WaitGroup
	w.Add(1)
	go srv.RunServer(done, &w)

	client := resty.New().SetRetryCount(20).SetRetryWaitTime(50 * time.Millisecond)
	res, err := client.R().Get("http://" + addr + "/")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.String())

	close(done)
	w.Wait()
	_, err = resty.New().R().Get("http://" + addr + "/")
	assert.Error(t, err)
}
