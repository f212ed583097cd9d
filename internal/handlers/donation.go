package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/akashipov/donation-gateway/internal/arguments"
	customerrors "github.com/akashipov/donation-gateway/internal/errors"
	"github.com/go-playground/validator/v10"
)

// DonationForm is the url-encoded body of POST /.
type DonationForm struct {
	Name           string  `validate:"required,max=100"`
	Email          string  `validate:"required,email"`
	Amount         float64 `validate:"gt=0"`
	PaymentMethod  string  `validate:"required"`
	RecaptchaToken string
}

var formValidator = validator.New()

func readForm(r *http.Request) (DonationForm, error) {
	if err := r.ParseForm(); err != nil {
		return DonationForm{}, fmt.Errorf("%w: %w", customerrors.ErrMalformedRequest, err)
	}
	return DonationForm{
		Name:           strings.TrimSpace(r.PostForm.Get("name")),
		Email:          strings.TrimSpace(r.PostForm.Get("email")),
		PaymentMethod:  strings.TrimSpace(r.PostForm.Get("paymentMethod")),
		RecaptchaToken: r.PostForm.Get("recaptchaToken"),
	}, nil
}

// check parses the amount and validates the form against the configured bounds.
func (f *DonationForm) check(raw string, bounds arguments.DonationConfig) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: amount is required", customerrors.ErrMalformedRequest)
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount %q is not a number", customerrors.ErrMalformedRequest, raw)
	}
	f.Amount = amount

	if err := formValidator.Struct(f); err != nil {
		return fmt.Errorf("%w: %s", customerrors.ErrMalformedRequest, fieldErrors(err))
	}
	if bounds.MinAmount > 0 && amount < bounds.MinAmount {
		return fmt.Errorf("%w: the minimum value is %s. %s", customerrors.ErrMalformedRequest, bounds.Currency, formatAmount(bounds.MinAmount))
	}
	if bounds.MaxAmount > 0 && amount > bounds.MaxAmount {
		return fmt.Errorf("%w: the maximum value is %s. %s", customerrors.ErrMalformedRequest, bounds.Currency, formatAmount(bounds.MaxAmount))
	}
	return nil
}

func fieldErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, ", ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
