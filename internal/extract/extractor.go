// Package extract maps raw PDF text onto the fixed purchase-order schema.
//
// Extraction is a fixed, ordered set of recognition rules, one per header
// field, plus a line-item parser for the PO item table. A field that cannot
// be matched stays empty; extraction itself never fails.
package extract

import "fmt"

// Extractor applies the field-recognition rules to document text.
type Extractor struct {
	rules []FieldRule
}

// NewExtractor creates an extractor with the default PO rule set.
func NewExtractor() (*Extractor, error) {
	return NewExtractorWithRules(defaultHeaderRules())
}

// NewExtractorWithRules creates an extractor with a custom rule set.
func NewExtractorWithRules(rules []FieldRule) (*Extractor, error) {
	for i := range rules {
		if err := rules[i].compile(); err != nil {
			return nil, fmt.Errorf("invalid pattern for field %q: %w", rules[i].Field, err)
		}
	}
	return &Extractor{rules: rules}, nil
}

// Extract produces exactly one Record for the document text: the header
// fields from the recognition rules, and the item fields from the first
// detected item block, when the item table is present. Empty text yields an
// all-empty Record.
func (e *Extractor) Extract(text string) Record {
	rec := e.extractHeader(text)

	if items, found := parseItems(text); found && len(items) > 0 {
		rec.merge(items[0], itemFields)
	}

	return rec
}

// ExtractAll produces one Record per item block, each carrying the shared
// header fields. Item rows are dropped when the document has no PO issue
// date. When no item table is detected the single header Record is returned
// instead.
func (e *Extractor) ExtractAll(text string) []Record {
	header := e.extractHeader(text)

	items, found := parseItems(text)
	if !found || len(items) == 0 {
		return []Record{e.Extract(text)}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if header[FieldPOIssueDate] == "" {
			continue
		}
		rec := header.clone()
		rec.merge(item, itemFields)
		records = append(records, rec)
	}
	if len(records) == 0 {
		return []Record{e.Extract(text)}
	}
	return records
}

// extractHeader applies the header rules in schema order.
func (e *Extractor) extractHeader(text string) Record {
	rec := NewRecord()
	if text == "" {
		return rec
	}
	for i := range e.rules {
		rec[e.rules[i].Field] = e.rules[i].Apply(text)
	}
	return rec
}

// Rules exposes the configured rule set, mainly for diagnostics.
func (e *Extractor) Rules() []FieldRule {
	return e.rules
}
