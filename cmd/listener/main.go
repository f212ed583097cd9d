package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akashipov/donation-gateway/internal/events"
	"github.com/akashipov/donation-gateway/internal/pkg/middleware/logger"
	"github.com/nats-io/nats.go"
)

func main() {
	url := flag.String("n", nats.DefaultURL, "Nats <host>:<port> to subscribe to")
	subject := flag.String("subj", events.DefaultSubject, "Subject with donation events")
	flag.Parse()

	log, err := logger.GetLogger()
	if err != nil {
		fmt.Println("Log creation problem " + err.Error())
		return
	}
	sc, err := nats.Connect(*url)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer sc.Close()

	var total float64
	_, err = sc.Subscribe(*subject, func(m *nats.Msg) {
		ev, err := events.Decode(m.Data)
		if err != nil {
			log.Errorf("Problem with message: %s", err.Error())
			return
		}
		total += ev.GrossAmount
		log.Infof("Order %s via %s: donation %.2f, fee %.2f, vat %.2f, gross %.2f (sandbox=%t), running gross %.2f",
			ev.OrderID, ev.PaymentMethod, ev.Donation, ev.Fee, ev.VAT, ev.GrossAmount, ev.Sandbox, total)
	})
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	log.Infof("Listening for donation events on %s", *subject)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint
	fmt.Println("Subscription was closed!")
}
