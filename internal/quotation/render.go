package quotation

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
)

//go:embed templates/quotation.html.tmpl
var templateFS embed.FS

// Document is a priced quotation ready to be rendered.
type Document struct {
	Reference string    `json:"reference"`
	IssuedAt  time.Time `json:"issuedAt"`
	Summary   Summary   `json:"summary"`
}

// Renderer turns a Document into the printable HTML summary.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("quotation.html.tmpl").Funcs(template.FuncMap{
		"clp": FormatCLP,
		"label": func(name string) string {
			return Label(enums.QuotationField(name))
		},
	}).ParseFS(templateFS, "templates/quotation.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template. Buyer input is HTML-escaped.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render quotation: %w", err)
	}
	return buf.Bytes(), nil
}
