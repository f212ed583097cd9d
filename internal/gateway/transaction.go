package gateway

import (
	"github.com/akashipov/donation-gateway/internal/payment"
	"github.com/google/uuid"
)

const OrderIDPrefix = "support-"

type TransactionDetails struct {
	OrderID     string  `json:"order_id"`
	GrossAmount float64 `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

// TransactionRequest is the Snap transaction payload.
type TransactionRequest struct {
	TransactionDetails TransactionDetails   `json:"transaction_details"`
	CustomerDetails    CustomerDetails      `json:"customer_details"`
	EnabledPayments    []string             `json:"enabled_payments"`
	ItemDetails        []payment.ItemDetail `json:"item_details"`
}

type TransactionResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// Transaction is the outcome of a successful token request.
type Transaction struct {
	OrderID     string
	GrossAmount float64
	Token       string
	RedirectURL string
}

// NewOrderID returns a fresh order id. A random UUID keeps ids unique
// across concurrent requests issued in the same millisecond.
func NewOrderID() string {
	return OrderIDPrefix + uuid.NewString()
}

func NewTransactionRequest(orderID, name, email string, total float64, method payment.PaymentMethod, items []payment.ItemDetail) TransactionRequest {
	return TransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: orderID, GrossAmount: total},
		CustomerDetails:    CustomerDetails{FirstName: name, Email: email},
		EnabledPayments:    []string{method.String()},
		ItemDetails:        items,
	}
}
