package gateway

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGatewayTransport = errors.New("payment gateway unreachable")
	ErrGatewayRejected  = errors.New("payment gateway rejected transaction")
	ErrGatewayMalformed = errors.New("malformed payment gateway response")
)

// RejectedError carries the status and messages of a non-2xx gateway response.
type RejectedError struct {
	Status   int
	Messages []string
}

func (e *RejectedError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s: status %d", ErrGatewayRejected, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrGatewayRejected, e.Status, strings.Join(e.Messages, "; "))
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrGatewayRejected
}
