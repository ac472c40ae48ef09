package templates

import (
	"fmt"
	"regexp"

	"fjacquet/sms-categorizer/internal/models"
)

// Registry is an ordered collection of templates. Registration order is the
// precedence order: the first template that applies wins.
type Registry struct {
	templates []Template
}

// NewRegistry creates a registry from templates, in the given order.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{}
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a template. It must only be called while building a
// registry, before it is shared between goroutines.
func (r *Registry) Register(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if !t.Direction.IsKnown() {
		return fmt.Errorf("template %s: direction must be debit or credit, got %q", t.Name, t.Direction)
	}
	if t.Pattern == nil {
		return fmt.Errorf("template %s: pattern is required", t.Name)
	}
	if t.Extract == nil {
		return fmt.Errorf("template %s: extract function is required", t.Name)
	}
	for _, existing := range r.templates {
		if existing.Name == t.Name {
			return fmt.Errorf("template %s already registered", t.Name)
		}
	}
	r.templates = append(r.templates, t)
	return nil
}

// Templates returns the templates for direction in registration order.
func (r *Registry) Templates(direction models.TransactionDirection) []Template {
	var out []Template
	for _, t := range r.templates {
		if t.Direction == direction {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

// Names returns all template names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.templates))
	for i, t := range r.templates {
		names[i] = t.Name
	}
	return names
}

// DefaultRegistry returns the built-in registry of Indian bank SMS templates.
//
// Amount groups only admit digits and dots: amounts written with thousands
// separators do not match and fall through to the classifier.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultTemplates()...)
	if err != nil {
		panic(err)
	}
	return r
}

func defaultTemplates() []Template {
	return []Template{
		// Debit
		newTemplate("HDFC_DEBIT", "HDFC", models.DirectionDebit, "HDFC",
			`(?i)Spent Rs\.([\d.]+) On HDFC Bank Card \d+ At (.+?) On ([\d:-]+)\.`,
			Fields{Amount: 1, Counterparty: 2, Date: 3}),
		newTemplate("ICICI_DEBIT", "ICICI", models.DirectionDebit, "ICICI",
			`(?i)ICICI Bank Acct .*? debited for Rs ([\d.]+) on (\d{2}-[A-Za-z]{3}-\d{2}); (.*?) credited`,
			Fields{Amount: 1, Date: 2, Counterparty: 3}),
		newTemplate("SBI_DEBIT", "SBI", models.DirectionDebit, "SBI",
			`(?i)Dear UPI user A/C .*? debited by ([\d.]+) on date (\d{2}[A-Za-z]{3}\d{2}) trf to (.+?) Refno`,
			Fields{Amount: 1, Date: 2, Counterparty: 3}),

		// Credit
		newTemplate("ICICI_CREDIT", "ICICI", models.DirectionCredit, "ICICI",
			`(?i)credited with Rs ([\d.]+) on (\d{2}-[A-Za-z]{3}-\d{2}) from (.+?)\. UPI:`,
			Fields{Amount: 1, Date: 2, Counterparty: 3}),
		newTemplate("HDFC_CREDIT", "HDFC", models.DirectionCredit, "HDFC",
			`(?i)Credit Alert!\s*Rs\.([\d.]+) credited to HDFC Bank A/c .*? on ([\d-]+) from VPA (.+?) \(UPI`,
			Fields{Amount: 1, Date: 2, Counterparty: 3}),
		newTemplate("SBI_CREDIT", "SBI", models.DirectionCredit, "SBI",
			`(?i)Dear SBI User, your A/c .*?-credited by Rs\.([\d.]+) on (\d{2}[A-Za-z]{3}\d{2}) transfer from (.+?) Ref No`,
			Fields{Amount: 1, Date: 2, Counterparty: 3}),
	}
}

func newTemplate(name, source string, dir models.TransactionDirection, keyword, pattern string, fields Fields) Template {
	return Template{
		Name:      name,
		Source:    source,
		Direction: dir,
		Keyword:   keyword,
		Pattern:   regexp.MustCompile(pattern),
		Extract:   fields.Extractor(name),
	}
}
