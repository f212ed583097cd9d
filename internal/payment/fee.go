package payment

import "fmt"

type RuleKind int

const (
	Percentage RuleKind = iota
	Flat
	PercentagePlusFlat
)

// FeeRule is a charge formula. Rate is a fraction of the amount (0.02 is 2%),
// Amount is in currency units.
type FeeRule struct {
	Kind   RuleKind
	Rate   float64
	Amount float64
}

func percentage(rate float64) FeeRule {
	return FeeRule{Kind: Percentage, Rate: rate}
}

func flat(amount float64) FeeRule {
	return FeeRule{Kind: Flat, Amount: amount}
}

func percentagePlusFlat(rate, amount float64) FeeRule {
	return FeeRule{Kind: PercentagePlusFlat, Rate: rate, Amount: amount}
}

// Apply evaluates the formula for amount.
func (r FeeRule) Apply(amount float64) float64 {
	switch r.Kind {
	case Percentage:
		return amount * r.Rate
	case Flat:
		return r.Amount
	case PercentagePlusFlat:
		return amount*r.Rate + r.Amount
	default:
		panic(fmt.Sprintf("unknown fee rule kind %d", r.Kind))
	}
}

var feeRules = map[PaymentMethod]FeeRule{
	// wallets
	GoPay:     percentage(0.02),
	ShopeePay: percentage(0.02),
	OtherQRIS: percentage(0.007),

	CreditCard: percentagePlusFlat(0.029, 2000),

	// bank transfer / virtual accounts
	EChannel:  flat(4000),
	BRIVA:     flat(4000),
	CIMBVA:    flat(4000),
	BNIVA:     flat(4000),
	PermataVA: flat(4000),
	OtherVA:   flat(4000),

	// over the counter
	Indomaret: flat(5000),
	Alfamart:  flat(5000),
	Alfamidi:  flat(5000),
	DanDan:    flat(5000),

	// buy now pay later
	Akulaku: percentage(0.02),
	Kredivo: percentage(0.02),
}

// RuleFor returns the fee rule registered for method.
func RuleFor(method PaymentMethod) (FeeRule, error) {
	rule, ok := feeRules[method]
	if !ok {
		return FeeRule{}, fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, string(method))
	}
	return rule, nil
}

// ComputeFee returns the transaction fee charged on top of amount.
func ComputeFee(amount float64, method PaymentMethod) (float64, error) {
	rule, err := RuleFor(method)
	if err != nil {
		return 0, err
	}
	return rule.Apply(amount), nil
}
