package payment

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")

type PaymentMethod string

const (
	GoPay      PaymentMethod = "gopay"
	ShopeePay  PaymentMethod = "shopeepay"
	OtherQRIS  PaymentMethod = "other_qris"
	CreditCard PaymentMethod = "credit_card"
	EChannel   PaymentMethod = "echannel"
	BRIVA      PaymentMethod = "bri_va"
	CIMBVA     PaymentMethod = "cimb_va"
	BNIVA      PaymentMethod = "bni_va"
	PermataVA  PaymentMethod = "permata_va"
	OtherVA    PaymentMethod = "other_va"
	Indomaret  PaymentMethod = "indomaret"
	Alfamart   PaymentMethod = "alfamart"
	Alfamidi   PaymentMethod = "alfamidi"
	DanDan     PaymentMethod = "dan_dan"
	Akulaku    PaymentMethod = "akulaku"
	Kredivo    PaymentMethod = "kredivo"
)

// Methods lists every supported method in the order the form shows them.
var Methods = []PaymentMethod{
	GoPay, ShopeePay, OtherQRIS,
	CreditCard,
	EChannel, BRIVA, CIMBVA, BNIVA, PermataVA, OtherVA,
	Indomaret, Alfamart, Alfamidi, DanDan,
	Akulaku, Kredivo,
}

var displayNames = map[PaymentMethod]string{
	GoPay:      "Gopay",
	ShopeePay:  "ShopeePay",
	OtherQRIS:  "QRIS Lainnya",
	CreditCard: "Credit Card",
	EChannel:   "Bank Transfer (Mandiri)",
	BRIVA:      "BRI",
	CIMBVA:     "CIMB Niaga",
	BNIVA:      "BNI",
	PermataVA:  "Permata Bank",
	OtherVA:    "Others Bank",
	Indomaret:  "Indomaret",
	Alfamart:   "Alfamart",
	Alfamidi:   "Alfamidi",
	DanDan:     "Dan Dan",
	Akulaku:    "Akulaku",
	Kredivo:    "Kredivo",
}

// ParseMethod looks up the incoming form code in the closed set of methods.
func ParseMethod(code string) (PaymentMethod, error) {
	m := PaymentMethod(strings.TrimSpace(code))
	if _, ok := feeRules[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, code)
	}
	return m, nil
}

func (m PaymentMethod) String() string {
	return string(m)
}

// DisplayName is the human label used in the gateway item breakdown.
func (m PaymentMethod) DisplayName() string {
	if name, ok := displayNames[m]; ok {
		return name
	}
	return string(m)
}
