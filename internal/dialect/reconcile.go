package dialect

import (
	"conciliador/internal/core"

	"github.com/shopspring/decimal"
)

// SignCorrector is implemented by dialects whose text markers do not
// distinguish inbound from outbound movements. Classification assigns
// the dialect default; the raw amounts settle the direction afterwards.
type SignCorrector interface {
	CorrectSign(fields core.ClassifiedFields, description string, debit decimal.Decimal) core.DocumentType
}

// ReconcileSign returns the final document type for a classified line.
// Dialects with unambiguous markers skip this step entirely.
func ReconcileSign(d Dialect, fields core.ClassifiedFields, description string, debit decimal.Decimal) core.DocumentType {
	if c, ok := d.(SignCorrector); ok {
		return c.CorrectSign(fields, description, debit)
	}
	return fields.DocumentType
}
