package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akashipov/donation-gateway/internal/environment"
	"github.com/akashipov/donation-gateway/internal/payment"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type TokenRequester interface {
	RequestToken(ctx context.Context, name, email string, total float64, method payment.PaymentMethod, items []payment.ItemDetail) (*Transaction, error)
}

type Client struct {
	http       *resty.Client
	serverKey  string
	endpoint   string
	Log        *zap.SugaredLogger
	NewOrderID func() string
}

// NewClient builds a Snap client posting to endpoint with Basic auth derived
// from the server key. A zero timeout leaves the call unbounded except by ctx.
func NewClient(creds environment.Credentials, endpoint string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	cl := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		cl.SetTimeout(timeout)
	}
	return &Client{
		http:       cl,
		serverKey:  creds.ServerKey,
		endpoint:   endpoint,
		Log:        log,
		NewOrderID: NewOrderID,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// RequestToken issues one transaction request and returns the token the
// checkout UI needs. No retry is attempted.
func (c *Client) RequestToken(ctx context.Context, name, email string, total float64, method payment.PaymentMethod, items []payment.ItemDetail) (*Transaction, error) {
	orderID := c.NewOrderID()
	body := NewTransactionRequest(orderID, name, email, total, method, items)

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.serverKey, "").
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		c.Log.Errorf("Order %s: gateway call failed after %s: %s", orderID, time.Since(start), err.Error())
		return nil, fmt.Errorf("%w: %w", ErrGatewayTransport, err)
	}
	c.Log.Infof("Order %s: gateway answered %d in %s", orderID, resp.StatusCode(), time.Since(start))

	var out TransactionResponse
	decodeErr := json.Unmarshal(resp.Body(), &out)

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &RejectedError{Status: resp.StatusCode(), Messages: out.ErrorMessages}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatewayMalformed, decodeErr)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrGatewayMalformed)
	}

	return &Transaction{
		OrderID:     orderID,
		GrossAmount: total,
		Token:       out.Token,
		RedirectURL: out.RedirectURL,
	}, nil
}
