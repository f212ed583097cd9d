package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akashipov/donation-gateway/internal/arguments"
	"github.com/akashipov/donation-gateway/internal/captcha"
	"github.com/akashipov/donation-gateway/internal/environment"
	"github.com/akashipov/donation-gateway/internal/events"
	"github.com/akashipov/donation-gateway/internal/form"
	"github.com/akashipov/donation-gateway/internal/gateway"
	"github.com/akashipov/donation-gateway/internal/handlers"
	"github.com/akashipov/donation-gateway/internal/pkg/middleware/logger"
	"github.com/akashipov/donation-gateway/internal/server"
)

func SignalWorker(done chan struct{}) {
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigint
	fmt.Printf("\nSignal: %v\n", sig)
	close(done)
}

func main() {
	cfg, err := arguments.ParseArgsServer(os.Args[1:])
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	log, err := logger.GetLogger()
	if err != nil {
		fmt.Println("Log creation problem " + err.Error())
		os.Exit(1)
	}
	defer log.Sync()

	creds := environment.Credentials{ClientKey: cfg.Midtrans.ClientKey, ServerKey: cfg.Midtrans.ServerKey}
	endpoints := environment.Resolve(creds)
	if creds.Mismatched() {
		log.Warnf("Midtrans keys disagree on the %s prefix, using production endpoints", environment.SandboxPrefix)
	}
	transactionURL := endpoints.TransactionURL
	if cfg.Midtrans.GatewayURL != "" {
		transactionURL = cfg.Midtrans.GatewayURL
	}
	log.Infof("Sandbox: %t, transactions endpoint: %s", endpoints.Sandbox, transactionURL)

	page, err := form.NewPage(cfg, endpoints)
	if err != nil {
		log.Errorf("Problem with form template: %s", err.Error())
		return
	}

	publisher, err := events.NewPublisher(cfg.NatsURL, cfg.NatsSubject, log)
	if err != nil {
		log.Error(err.Error())
		return
	}
	defer publisher.Close()

	h := &handlers.DonationHandler{
		Donation:  cfg.Donation,
		Endpoints: endpoints,
		Form:      page,
		Gateway:   gateway.NewClient(creds, transactionURL, cfg.GatewayTimeout, log),
		Events:    publisher,
		Log:       log,
	}
	if cfg.Recaptcha.Enabled() {
		h.Captcha = captcha.NewVerifier(captcha.Config{
			VerifyURL:  cfg.Recaptcha.VerifyURL,
			Secret:     cfg.Recaptcha.SecretKey,
			MinScore:   cfg.Recaptcha.Score,
			Timeout:    cfg.GatewayTimeout,
			ReplaySize: cfg.Recaptcha.ReplaySize,
			ReplayTTL:  cfg.Recaptcha.ReplayTTL,
		}, log)
		log.Infof("reCAPTCHA enabled with minimal score %.2f", cfg.Recaptcha.Score)
	}

	srv, err := server.NewServer(cfg.HPServer, handlers.ServerRouter(h, cfg.CorsOrigins), log)
	if err != nil {
		log.Error(err.Error())
		return
	}

	done := make(chan struct{})
	go SignalWorker(done)
	var w sync.WaitGroup
	w.Add(1)
	go srv.RunServer(done, &w)
	w.Wait()
}
