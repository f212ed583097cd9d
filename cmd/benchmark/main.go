package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akashipov/donation-gateway/internal/payment"
	"github.com/go-resty/resty/v2"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func main() {
	url := flag.String("u", "http://localhost:8000/", "Donation endpoint")
	n := flag.Int("c", 100, "Number of concurrent donations")
	flag.Parse()

	var ok, failed atomic.Int64
	var mu sync.Mutex
	tokens := make(map[string]struct{}, *n)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			method := payment.Methods[rand.Intn(len(payment.Methods))]
			amount := 5000 * (1 + rand.Intn(20))
			resp, err := resty.New().R().SetFormData(map[string]string{
				"name":          fmt.Sprintf("bench-%d", i),
				"email":         fmt.Sprintf("bench-%d@example.com", i),
				"amount":        fmt.Sprint(amount),
				"paymentMethod": method.String(),
			}).Post(*url)
			if err != nil {
				failed.Add(1)
				fmt.Printf("Number of gorutine is %d. Error is: %s\n", i, err.Error())
				return
			}
			if resp.IsError() {
				failed.Add(1)
				fmt.Printf("Number of gorutine is %d. Status is: %d %s\n", i, resp.StatusCode(), resp.String())
				return
			}
			var out tokenResponse
			if err := json.Unmarshal(resp.Body(), &out); err != nil {
				failed.Add(1)
				return
			}
			ok.Add(1)
			mu.Lock()
			tokens[out.Token] = struct{}{}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	fmt.Printf("Done in %s: %d ok, %d failed, %d distinct tokens\n", time.Since(start), ok.Load(), failed.Load(), len(tokens))
}
