// Package invoice renders the checkout invoice as a printable plain-text
// document. The invoice itself lives on the checkout flow; this package only
// owns its presentation.
package invoice

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/streetcaps511-a11y/gmcaps-backend/internal/checkout"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/money"
)

// Renderer turns an invoice into a display document.
type Renderer interface {
	Render(inv *checkout.Invoice) (string, error)
}

const documentTemplate = `GM CAPS
FACTURA {{.Number}}
Fecha: {{.Date}}
Cliente: {{.CustomerEmail}}

{{range .Items -}}
{{printf "%-40s" .Name}} x{{.Quantity}}  {{price .UnitPrice}}
{{end}}
Subtotal: {{price .Subtotal}}
IVA (19%): {{price .Tax}}
TOTAL: {{price .Total}}

¡Gracias por su compra!
`

type textRenderer struct {
	tmpl *template.Template
}

// NewTextRenderer builds the plain-text renderer. The template is parsed once
// at construction.
func NewTextRenderer() (Renderer, error) {
	tmpl, err := template.New("invoice").
		Funcs(template.FuncMap{"price": money.Format}).
		Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing invoice template: %w", err)
	}
	return &textRenderer{tmpl: tmpl}, nil
}

func (r *textRenderer) Render(inv *checkout.Invoice) (string, error) {
	if inv == nil {
		return "", fmt.Errorf("invoice required")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, inv); err != nil {
		return "", fmt.Errorf("rendering invoice %s: %w", inv.Number, err)
	}
	return buf.String(), nil
}
