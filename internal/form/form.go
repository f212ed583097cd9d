// Package form renders the donation page served on GET /.
package form

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/akashipov/donation-gateway/internal/arguments"
	"github.com/akashipov/donation-gateway/internal/environment"
	"github.com/akashipov/donation-gateway/internal/payment"
)

//go:embed templates/donation.html
var templates embed.FS

type Renderer interface {
	Render(w io.Writer) error
}

type methodOption struct {
	Code string
	Name string
}

type page struct {
	Title            string
	Description      string
	SEOURL           string
	Name             string
	ItemName         string
	ItemThumbnail    string
	Currency         string
	MinAmount        string
	MaxAmount        string
	StepAmount       string
	SuccessMessage   string
	SnapScriptURL    string
	ClientKey        string
	RecaptchaSiteKey string
	Methods          []methodOption
}

type Page struct {
	tmpl *template.Template
	data page
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func NewPage(cfg arguments.Config, endpoints environment.Endpoints) (*Page, error) {
	tmpl, err := template.ParseFS(templates, "templates/donation.html")
	if err != nil {
		return nil, err
	}
	methods := make([]methodOption, 0, len(payment.Methods))
	for _, m := range payment.Methods {
		methods = append(methods, methodOption{Code: m.String(), Name: m.DisplayName()})
	}
	data := page{
		Title:          cfg.SEO.Title,
		Description:    cfg.SEO.Description,
		SEOURL:         cfg.SEO.URL,
		Name:           cfg.Donation.Name,
		ItemName:       cfg.Donation.ItemName,
		ItemThumbnail:  cfg.Donation.ItemThumbnail,
		Currency:       cfg.Donation.Currency,
		MinAmount:      formatAmount(cfg.Donation.MinAmount),
		MaxAmount:      formatAmount(cfg.Donation.MaxAmount),
		StepAmount:     formatAmount(cfg.Donation.StepAmount),
		SuccessMessage: cfg.Donation.SuccessMessage,
		SnapScriptURL:  endpoints.SnapScriptURL,
		ClientKey:      cfg.Midtrans.ClientKey,
		Methods:        methods,
	}
	if cfg.Recaptcha.Enabled() {
		data.RecaptchaSiteKey = cfg.Recaptcha.SiteKey
	}
	return &Page{tmpl: tmpl, data: data}, nil
}

// Render executes into a buffer first so a template error never leaves a
// half written page.
func (p *Page) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, p.data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
