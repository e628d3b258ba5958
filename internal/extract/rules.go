package extract

import (
	"regexp"
	"strings"
)

// FieldRule describes how a single header field is recognized in extracted
// document text. Patterns are tried in order; the first match wins. A pattern
// with a capture group yields the group, otherwise the whole match.
type FieldRule struct {
	Field       string
	Patterns    []string
	Clean       func(string) string
	Description string

	compiled []*regexp.Regexp
}

// compile prepares the rule's patterns. Must be called before Apply.
func (fr *FieldRule) compile() error {
	fr.compiled = make([]*regexp.Regexp, 0, len(fr.Patterns))
	for _, p := range fr.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return err
		}
		fr.compiled = append(fr.compiled, re)
	}
	return nil
}

// Apply runs the rule against the document text and returns the extracted
// value, or the empty string when nothing matched.
func (fr *FieldRule) Apply(text string) string {
	for _, re := range fr.compiled {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		value = strings.TrimSpace(value)
		if fr.Clean != nil {
			value = fr.Clean(value)
		}
		if value != "" {
			return value
		}
	}
	return ""
}

// defaultHeaderRules returns the recognition rules for the PO header fields.
// The label variants cover documents that spell the field out ("PO Number:
// 12345"); the bare patterns cover layouts without labels (a lone "PO12345"
// token, the first d/m/yyyy date on the page).
func defaultHeaderRules() []FieldRule {
	return []FieldRule{
		{
			Field: FieldPONumber,
			Patterns: []string{
				`(?i)\bPO\s*Number\s*:?\s*([A-Za-z0-9][\w\-/]*)`,
				`(?i)\bPO\d+\b`,
			},
			Description: "Purchase order number, labeled or as a bare PO token",
		},
		{
			Field: FieldVendor,
			Patterns: []string{
				`(?im)\bVendor\s*:\s*(.+)$`,
			},
			Description: "Vendor name following a Vendor label",
		},
		{
			Field: FieldReference,
			Patterns: []string{
				`(?i)Your Reference\s+([\w\-\./]*)`,
			},
			// The sample layout sometimes wraps so that the word following
			// "Your Reference" is the "Your" of the next label.
			Clean: func(v string) string {
				if strings.EqualFold(v, "your") {
					return ""
				}
				return v
			},
			Description: "Customer reference following the Your Reference label",
		},
		{
			Field: FieldPOIssueDate,
			Patterns: []string{
				`\b\d{1,2}/\d{1,2}/\d{4}\b`,
			},
			Description: "First d/m/yyyy date in the document",
		},
		{
			Field: FieldPaymentTerm,
			Patterns: []string{
				`(?i)Payment Term:\s*(.+)`,
			},
			Description: "Payment term, rest of the labeled line",
		},
	}
}
