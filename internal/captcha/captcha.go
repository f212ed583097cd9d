// Package captcha verifies reCAPTCHA v3 tokens before a donation is charged.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	DefaultMinScore  = 0.5
)

var (
	ErrCaptchaRejected    = errors.New("reCAPTCHA verification score too low")
	ErrCaptchaUnavailable = errors.New("reCAPTCHA verification unavailable")
)

type Checker interface {
	Verify(ctx context.Context, token string) error
}

type Config struct {
	VerifyURL  string
	Secret     string
	MinScore   float64
	Timeout    time.Duration
	ReplaySize int
	ReplayTTL  time.Duration
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

type Verifier struct {
	http      *resty.Client
	verifyURL string
	secret    string
	minScore  float64
	seen      *expirable.LRU[string, struct{}]
	Log       *zap.SugaredLogger
}

func NewVerifier(cfg Config, log *zap.SugaredLogger) *Verifier {
	cl := resty.New()
	if cfg.Timeout > 0 {
		cl.SetTimeout(cfg.Timeout)
	}
	v := &Verifier{
		http:      cl,
		verifyURL: cfg.VerifyURL,
		secret:    cfg.Secret,
		minScore:  cfg.MinScore,
		Log:       log,
	}
	if v.verifyURL == "" {
		v.verifyURL = DefaultVerifyURL
	}
	if v.minScore == 0 {
		v.minScore = DefaultMinScore
	}
	if cfg.ReplaySize > 0 && cfg.ReplayTTL > 0 {
		v.seen = expirable.NewLRU[string, struct{}](cfg.ReplaySize, nil, cfg.ReplayTTL)
	}
	return v
}

// Verify passes only when the verifier reports success with a score at or
// above the configured threshold. A token is checked at most once while it
// is remembered by the replay guard.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrCaptchaRejected)
	}
	if v.seen != nil {
		if v.seen.Contains(token) {
			return fmt.Errorf("%w: token already used", ErrCaptchaRejected)
		}
		v.seen.Add(token, struct{}{})
	}

	resp, err := v.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   v.secret,
			"response": token,
		}).
		Post(v.verifyURL)
	if err != nil {
		v.forget(token)
		return fmt.Errorf("%w: %w", ErrCaptchaUnavailable, err)
	}
	if resp.IsError() {
		v.forget(token)
		return fmt.Errorf("%w: status %d", ErrCaptchaUnavailable, resp.StatusCode())
	}

	var out verifyResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		v.forget(token)
		return fmt.Errorf("%w: %w", ErrCaptchaUnavailable, err)
	}
	if !out.Success || out.Score < v.minScore {
		v.Log.Infof("reCAPTCHA rejected: success=%t score=%.2f codes=%v", out.Success, out.Score, out.ErrorCodes)
		return ErrCaptchaRejected
	}
	return nil
}

// forget releases a token the verifier never answered for, so the client
// can retry it after an outage.
func (v *Verifier) forget(token string) {
	if v.seen != nil {
		v.seen.Remove(token)
	}
}
