// Package events announces issued donation tokens on NATS.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const DefaultSubject = "donations.created"

type DonationInitiated struct {
	OrderID       string    `json:"order_id"`
	PaymentMethod string    `json:"payment_method"`
	Donation      float64   `json:"donation"`
	Fee           float64   `json:"fee"`
	VAT           float64   `json:"vat"`
	GrossAmount   float64   `json:"gross_amount"`
	Sandbox       bool      `json:"sandbox"`
	CreatedAt     time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(ev DonationInitiated) error
	Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(DonationInitiated) error { return nil }
func (NopPublisher) Close()                          {}

type NatsPublisher struct {
	Conn    *nats.Conn
	Subject string
	Log     *zap.SugaredLogger
}

// NewPublisher connects to url. An empty url yields a NopPublisher.
func NewPublisher(url, subject string, log *zap.SugaredLogger) (Publisher, error) {
	if url == "" {
		return NopPublisher{}, nil
	}
	nc, err := nats.Connect(url, nats.Name("donation-gateway"))
	if err != nil {
		return nil, fmt.Errorf("Problem with connection to nats %s: %w", url, err)
	}
	if subject == "" {
		subject = DefaultSubject
	}
	log.Infof("Publishing donation events to %s on %s", subject, url)
	return &NatsPublisher{Conn: nc, Subject: subject, Log: log}, nil
}

func (p *NatsPublisher) Publish(ev DonationInitiated) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("Problem with event data: %w", err)
	}
	return p.Conn.Publish(p.Subject, data)
}

func (p *NatsPublisher) Close() {
	if err := p.Conn.Drain(); err != nil {
		p.Log.Infof("Problem with draining nats connection: %s", err.Error())
	}
}

// Decode parses an event received from the subject.
func Decode(data []byte) (DonationInitiated, error) {
	var ev DonationInitiated
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("Problem with event data: %w", err)
	}
	return ev, nil
}
