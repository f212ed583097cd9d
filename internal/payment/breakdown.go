package payment

import (
	"fmt"
	"strconv"
)

const (
	DonationItemID = "donation"
	FeeItemID      = "fee"
	VATItemID      = "vat"
)

// ItemDetail is one line of the itemized breakdown sent to the gateway.
type ItemDetail struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
}

// Breakdown holds the charges of one donation. Items always has three lines:
// donation, fee and vat, the vat line being zero valued when VAT does not apply.
type Breakdown struct {
	Method   PaymentMethod
	Donation float64
	Fee      float64
	VAT      float64
	Gross    float64
	Items    []ItemDetail
}

// NewBreakdown computes fee and VAT for amount and builds the item lines.
// Gross is the sum of the item prices.
func NewBreakdown(amount float64, method PaymentMethod, policy VatPolicy) (Breakdown, error) {
	fee, err := ComputeFee(amount, method)
	if err != nil {
		return Breakdown{}, err
	}
	vat := policy.Compute(amount, method)

	items := []ItemDetail{
		{ID: DonationItemID, Price: amount, Quantity: 1, Name: "Donation Amount"},
		{ID: FeeItemID, Price: fee, Quantity: 1, Name: fmt.Sprintf("%s Payment Fee", method.DisplayName())},
		{ID: VATItemID, Price: vat, Quantity: 1, Name: fmt.Sprintf("VAT %s%%", strconv.FormatFloat(policy.Percent, 'f', -1, 64))},
	}

	return Breakdown{
		Method:   method,
		Donation: amount,
		Fee:      fee,
		VAT:      vat,
		Gross:    SumItems(items),
		Items:    items,
	}, nil
}

func SumItems(items []ItemDetail) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
