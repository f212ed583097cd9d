package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akashipov/donation-gateway/internal/arguments"
	"github.com/akashipov/donation-gateway/internal/captcha"
	"github.com/akashipov/donation-gateway/internal/environment"
	customerrors "github.com/akashipov/donation-gateway/internal/errors"
	"github.com/akashipov/donation-gateway/internal/events"
	"github.com/akashipov/donation-gateway/internal/form"
	"github.com/akashipov/donation-gateway/internal/gateway"
	"github.com/akashipov/donation-gateway/internal/payment"
	"github.com/akashipov/donation-gateway/internal/pkg/middleware/compress"
	"github.com/akashipov/donation-gateway/internal/pkg/middleware/logger"
	"github.com/akashipov/donation-gateway/internal/pkg/middleware/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type DonationHandler struct {
	Donation  arguments.DonationConfig
	Endpoints environment.Endpoints
	Form      form.Renderer
	Captcha   captcha.Checker // nil when reCAPTCHA is not configured
	Gateway   gateway.TokenRequester
	Events    events.Publisher
	Log       *zap.SugaredLogger
}

type TokenResponse struct {
	Token string `json:"token"`
}

func ServerRouter(h *DonationHandler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/", h.RenderForm)
	r.Post("/", h.CreateDonation)
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = logger.WithLogging(r, h.Log)
	if len(corsOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		}).Handler(handler)
	}
	return compress.GzipHandle(handler, h.Log)
}

func (h *DonationHandler) RenderForm(w http.ResponseWriter, request *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Form.Render(w); err != nil {
		customerrors.New(http.StatusInternalServerError, "Problem with rendering of donation form", err).ReportError(w, h.Log)
	}
}

// CreateDonation runs the POST pipeline: captcha gate, charge computation,
// token request. Every failure ends in a reported error without a token.
func (h *DonationHandler) CreateDonation(w http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	f, err := readForm(request)
	if err != nil {
		h.report(w, err)
		return
	}

	if h.Captcha != nil {
		if err := h.Captcha.Verify(ctx, f.RecaptchaToken); err != nil {
			h.report(w, err)
			return
		}
	}

	if err := f.check(request.PostForm.Get("amount"), h.Donation); err != nil {
		h.report(w, err)
		return
	}
	method, err := payment.ParseMethod(f.PaymentMethod)
	if err != nil {
		h.report(w, err)
		return
	}
	charges, err := payment.NewBreakdown(f.Amount, method, payment.VatPolicy{Percent: h.Donation.CountryVAT})
	if err != nil {
		h.report(w, err)
		return
	}

	tx, err := h.Gateway.RequestToken(ctx, f.Name, f.Email, charges.Gross, method, charges.Items)
	if err != nil {
		metrics.IncToken(method.String(), "failed")
		h.report(w, err)
		return
	}
	metrics.IncToken(method.String(), "issued")
	metrics.AddGross(method.String(), charges.Gross)
	h.Log.Infof("Order %s: token issued for %s, gross %.2f (fee %.2f, vat %.2f)",
		tx.OrderID, method, charges.Gross, charges.Fee, charges.VAT)

	h.publish(tx, charges)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TokenResponse{Token: tx.Token}); err != nil {
		h.Log.Infof("Problem with writing token response: %s", err.Error())
	}
}

func (h *DonationHandler) publish(tx *gateway.Transaction, charges payment.Breakdown) {
	if h.Events == nil {
		return
	}
	err := h.Events.Publish(events.DonationInitiated{
		OrderID:       tx.OrderID,
		PaymentMethod: charges.Method.String(),
		Donation:      charges.Donation,
		Fee:           charges.Fee,
		VAT:           charges.VAT,
		GrossAmount:   charges.Gross,
		Sandbox:       h.Endpoints.Sandbox,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		h.Log.Errorf("Order %s: problem with publishing event: %s", tx.OrderID, err.Error())
	}
}

func (h *DonationHandler) Health(w http.ResponseWriter, request *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"ok":      true,
		"sandbox": h.Endpoints.Sandbox,
		"captcha": h.Captcha != nil,
		"ts":      time.Now().UTC(),
	})
	if err != nil {
		h.Log.Infof("Problem with writing health response: %s", err.Error())
	}
}

func (h *DonationHandler) report(w http.ResponseWriter, err error) {
	cErr := toCustomError(err)
	if cErr.Status >= http.StatusInternalServerError {
		h.Log.Errorf("Donation failed: %s", cErr.Error())
	} else {
		h.Log.Infof("Donation refused: %s", cErr.Error())
	}
	cErr.ReportError(w, h.Log)
}

func toCustomError(err error) *customerrors.CustomError {
	var rejected *gateway.RejectedError
	switch {
	case errors.Is(err, customerrors.ErrMalformedRequest):
		return customerrors.New(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, payment.ErrUnsupportedPaymentMethod):
		return customerrors.New(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, captcha.ErrCaptchaRejected):
		return customerrors.New(http.StatusForbidden, captcha.ErrCaptchaRejected.Error(), err)
	case errors.Is(err, captcha.ErrCaptchaUnavailable):
		return customerrors.New(http.StatusServiceUnavailable, captcha.ErrCaptchaUnavailable.Error(), err)
	case errors.Is(err, gateway.ErrGatewayTransport):
		return customerrors.New(http.StatusServiceUnavailable, gateway.ErrGatewayTransport.Error(), err)
	case errors.As(err, &rejected):
		return customerrors.New(http.StatusBadGateway, rejected.Error(), err)
	case errors.Is(err, gateway.ErrGatewayMalformed):
		return customerrors.New(http.StatusBadGateway, gateway.ErrGatewayMalformed.Error(), err)
	default:
		return customerrors.New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
	}
}
