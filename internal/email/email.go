// Package email composes the outbound digest message. Pure templating, no
// I/O, no delivery.
package email

import (
	"fmt"
	"strings"
	"text/template"

	"mailmix/internal/core"
)

// DefaultSubjectTemplate is the original mailing subject line.
const DefaultSubjectTemplate = `iDoklad blog – strategický mix článků ({{.Month}} {{.Year}})`

// DefaultBodyTemplate is the original mailing body, links one per line.
const DefaultBodyTemplate = `Ahoj Martine,

dal bys prosím dohromady statistiky za iDoklad a připravil mailing.

Články bych tam dala tyto:
{{range .Links}}{{.}}
{{end}}
S pozdravem
A`

// Composer renders the subject and body for a confirmed selection.
type Composer struct {
	subject *template.Template
	body    *template.Template
}

// messageData is the template input for both subject and body.
type messageData struct {
	Month string
	Year  int
	Links []string
}

// NewComposer parses the given template sources. Empty strings select the
// built-in defaults.
func NewComposer(subjectTmpl, bodyTmpl string) (*Composer, error) {
	if subjectTmpl == "" {
		subjectTmpl = DefaultSubjectTemplate
	}
	if bodyTmpl == "" {
		bodyTmpl = DefaultBodyTemplate
	}

	subject, err := template.New("subject").Parse(subjectTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subject template: %w", err)
	}
	body, err := template.New("body").Parse(bodyTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse body template: %w", err)
	}

	return &Composer{subject: subject, body: body}, nil
}

// Compose renders (subject, body) for the given links and period. The link
// order is the caller's order and is preserved verbatim.
func (c *Composer) Compose(links []string, p core.Period) (string, string, error) {
	data := messageData{
		Month: p.MonthName(),
		Year:  p.Year,
		Links: links,
	}

	var subject strings.Builder
	if err := c.subject.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	var body strings.Builder
	if err := c.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}

	return subject.String(), body.String(), nil
}
