package arguments

import (
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type MidtransConfig struct {
	ClientKey  string `env:"CLIENT_KEY"`
	ServerKey  string `env:"SERVER_KEY"`
	GatewayURL string `env:"GATEWAY_URL"`
}

type RecaptchaConfig struct {
	SiteKey    string        `env:"SITE_KEY"`
	SecretKey  string        `env:"SECRET_KEY"`
	Score      float64       `env:"SCORE" envDefault:"0.5"`
	VerifyURL  string        `env:"VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	ReplaySize int           `env:"REPLAY_SIZE" envDefault:"1024"`
	ReplayTTL  time.Duration `env:"REPLAY_TTL" envDefault:"2m"`
}

// Enabled reports whether both reCAPTCHA keys are configured.
func (c RecaptchaConfig) Enabled() bool {
	return c.SiteKey != "" && c.SecretKey != ""
}

type DonationConfig struct {
	Name           string  `env:"NAME" envDefault:"Support Platform"`
	ItemName       string  `env:"ITEM_NAME" envDefault:"Coffee"`
	ItemThumbnail  string  `env:"ITEM_THUMBNAIL"`
	Currency       string  `env:"CURRENCY" envDefault:"Rp"`
	MinAmount      float64 `env:"MIN_AMOUNT" envDefault:"5000"`
	MaxAmount      float64 `env:"MAX_AMOUNT" envDefault:"10000000"`
	StepAmount     float64 `env:"STEP_AMOUNT" envDefault:"5000"`
	CountryVAT     float64 `env:"COUNTRY_VAT" envDefault:"0"`
	SuccessMessage string  `env:"SUCCESS_TEXT" envDefault:"Thank you for your support!"`
}

type SEOConfig struct {
	Title       string `env:"TITLE" envDefault:"Support Platform"`
	Description string `env:"DESCRIPTION"`
	URL         string `env:"URL"`
}

// Config is built once at startup and passed by value to every component.
type Config struct {
	HPServer       string          `env:"HTTP_URL" envDefault:"0.0.0.0:8000"`
	GatewayTimeout time.Duration   `env:"GATEWAY_TIMEOUT" envDefault:"30s"`
	NatsURL        string          `env:"NATS_URL"`
	NatsSubject    string          `env:"NATS_SUBJECT" envDefault:"donations.created"`
	CorsOrigins    []string        `env:"CORS_ORIGINS" envSeparator:","`
	Midtrans       MidtransConfig  `envPrefix:"MIDTRANS_"`
	Recaptcha      RecaptchaConfig `envPrefix:"RECAPTCHA_"`
	Donation       DonationConfig  `envPrefix:"DONATION_"`
	SEO            SEOConfig       `envPrefix:"SEO_"`
}

// ParseArgsServer loads .env (if present), then the environment, then the
// command line flags in args.
func ParseArgsServer(args []string) (Config, error) {
	var cfg Config
	if err := godotenv.Load(); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return cfg, fmt.Errorf("Problem with loading of .env file: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("Problem with parsing of env variables: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	s := fs.String("s", "", "Http <host>:<port> to listen on")
	t := fs.Duration("t", 0, "Payment gateway request timeout")
	n := fs.String("n", "", "Nats <host>:<port> to publish donation events to")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("Problem with parsing of flags: %w", err)
	}
	if *s != "" {
		cfg.HPServer = *s
	}
	if *t != 0 {
		cfg.GatewayTimeout = *t
	}
	if *n != "" {
		cfg.NatsURL = *n
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Midtrans.ServerKey == "" {
		errs = append(errs, errors.New("MIDTRANS_SERVER_KEY is required"))
	}
	if c.Midtrans.ClientKey == "" {
		errs = append(errs, errors.New("MIDTRANS_CLIENT_KEY is required"))
	}
	if c.Donation.CountryVAT < 0 {
		errs = append(errs, fmt.Errorf("DONATION_COUNTRY_VAT must not be negative, got %v", c.Donation.CountryVAT))
	}
	if c.Donation.MinAmount < 0 || (c.Donation.MaxAmount > 0 && c.Donation.MinAmount > c.Donation.MaxAmount) {
		errs = append(errs, fmt.Errorf("invalid donation bounds [%v, %v]", c.Donation.MinAmount, c.Donation.MaxAmount))
	}
	if c.Recaptcha.Score < 0 || c.Recaptcha.Score > 1 {
		errs = append(errs, fmt.Errorf("RECAPTCHA_SCORE must be within [0, 1], got %v", c.Recaptcha.Score))
	}
	if len(errs) > 0 {
		return fmt.Errorf("Problem with configuration: %w", errors.Join(errs...))
	}
	return nil
}
