package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestVerifier(t *testing.T, body string, status int) (*Verifier, *int) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-key", r.PostForm.Get("secret"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	v := NewVerifier(Config{
		VerifyURL:  srv.URL,
		Secret:     "secret-key",
		Timeout:    time.Second,
		ReplaySize: 16,
		ReplayTTL:  time.Minute,
	}, zap.NewNop().Sugar())
	return v, &calls
}

func TestVerifier_Verify(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		body    string
		status  int
		wantErr error
		calls   int
	}{
		{name: "pass", token: "t1", body: `{"success":true,"score":0.9}`, status: http.StatusOK, calls: 1},
		{name: "threshold is inclusive", token: "t1", body: `{"success":true,"score":0.5}`, status: http.StatusOK, calls: 1},
		{name: "low score", token: "t1", body: `{"success":true,"score":0.3}`, status: http.StatusOK, wantErr: ErrCaptchaRejected, calls: 1},
		{name: "not success", token: "t1", body: `{"success":false,"error-codes":["invalid-input-response"]}`, status: http.StatusOK, wantErr: ErrCaptchaRejected, calls: 1},
		{name: "missing token", token: "", body: `{"success":true,"score":1}`, status: http.StatusOK, wantErr: ErrCaptchaRejected, calls: 0},
		{name: "verifier down", token: "t1", body: ``, status: http.StatusInternalServerError, wantErr: ErrCaptchaUnavailable, calls: 1},
		{name: "garbage", token: "t1", body: `nope`, status: http.StatusOK, wantErr: ErrCaptchaUnavailable, calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, calls := newTestVerifier(t, tt.body, tt.status)
			err := v.Verify(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.calls, *calls)
		})
	}
}

func TestVerifier_Replay(t *testing.T) {
	v, calls := newTestVerifier(t, `{"success":true,"score":0.9}`, http.StatusOK)
	assert.NoError(t, v.Verify(context.Background(), "same"))
	assert.ErrorIs(t, v.Verify(context.Background(), "same"), ErrCaptchaRejected)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, v.Verify(context.Background(), "other"))
}

func TestNewVerifierDefaults(t *testing.T) {
	v := NewVerifier(Config{Secret: "s"}, zap.NewNop().Sugar())
	assert.Equal(t, DefaultVerifyURL, v.verifyURL)
	assert.Equal(t, DefaultMinScore, v.minScore)
	assert.Nil(t, v.seen)
}

func TestVerifier_ReplayAfterOutage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "status 503", status: http.StatusServiceUnavailable, body: ``},
		{name: "garbage body", status: http.StatusOK, body: `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					w.WriteHeader(tt.status)
					w.Write([]byte(tt.body))
					return
				}
				w.Write([]byte(`{"success":true,"score":0.9}`))
			}))
			defer srv.Close()

			v := NewVerifier(Config{
				VerifyURL:  srv.URL,
				Secret:     "secret-key",
				Timeout:    time.Second,
				ReplaySize: 16,
				ReplayTTL:  time.Minute,
			}, zap.NewNop().Sugar())

			assert.ErrorIs(t, v.Verify(context.Background(), "retry-me"), ErrCaptchaUnavailable)
			assert.NoError(t, v.Verify(context.Background(), "retry-me"))
			assert.ErrorIs(t, v.Verify(context.Background(), "retry-me"), ErrCaptchaRejected)
			assert.Equal(t, int32(2), calls.Load())
		})
	}
}

func TestVerifier_TransportOutageReleasesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	v := NewVerifier(Config{VerifyURL: url, Secret: "s", Timeout: time.Second, ReplaySize: 16, ReplayTTL: time.Minute}, zap.NewNop().Sugar())
	assert.ErrorIs(t, v.Verify(context.Background(), "tok"), ErrCaptchaUnavailable)
	assert.False(t, v.seen.Contains("tok"))
}
