package payment

var vatApplicable = map[PaymentMethod]struct{}{
	CreditCard: {},
	Akulaku:    {},
	Kredivo:    {},
	EChannel:   {},
	BRIVA:      {},
	CIMBVA:     {},
	BNIVA:      {},
	PermataVA:  {},
	OtherVA:    {},
}

// VatPolicy applies Percent uniformly to the VAT applicable methods.
type VatPolicy struct {
	Percent float64
}

func (p VatPolicy) Applies(method PaymentMethod) bool {
	_, ok := vatApplicable[method]
	return ok
}

func (p VatPolicy) Compute(amount float64, method PaymentMethod) float64 {
	return ComputeVAT(amount, method, p.Percent)
}

// ComputeVAT returns amount*vatPercent/100 for VAT applicable methods and 0 otherwise.
func ComputeVAT(amount float64, method PaymentMethod, vatPercent float64) float64 {
	if _, ok := vatApplicable[method]; !ok {
		return 0
	}
	return amount * vatPercent / 100
}
