package dialect

import (
	"regexp"
	"strings"

	"conciliador/internal/core"

	"github.com/shopspring/decimal"
)

// Banregio statement descriptions come in six shapes: period-segmented
// SPEI transfers, "(NB)" internal receipts, cash and third-party
// deposits, "(BE)" outbound charges, and plain credits. The SPEI marker
// appears on both inbound and outbound transfers, so this dialect also
// implements sign correction.
type Banregio struct {
	ruleSet
}

const banregioName = "banregio"

var (
	banregioCuentaRe     = regexp.MustCompile(`(?i)cuenta:\s*(\d+)`)
	banregioFolioRe      = regexp.MustCompile(`FOLIO:(\d+)`)
	banregioFolioStrip   = regexp.MustCompile(`DEPOSITO EFECTIVO PRACTIC/\*+\d+|\s*FOLIO:\d+`)
	banregioRefbntcRe    = regexp.MustCompile(`REFBNTC(\d+)`)
	banregioTerceroStrip = regexp.MustCompile(`DEPOSITO DE TERCERO/REFBNTC\d+|BMRCASH`)

	longNumericRe = regexp.MustCompile(`^\d{10,}$`)
	upperRe       = regexp.MustCompile(`[A-Z]`)
	digitRe       = regexp.MustCompile(`\d`)
	uuidRe        = regexp.MustCompile(`(?i)^[A-F0-9]{8}-[A-F0-9]{4}-[A-F0-9]{4}-[A-F0-9]{4}-[A-F0-9]{12}$`)
)

// NewBanregio builds the Banregio rule set, ordered by priority.
func NewBanregio() *Banregio {
	d := &Banregio{ruleSet{
		name:     banregioName,
		fallback: core.DocAbonoBancario,
		docTypes: []core.DocumentType{
			core.DocAbonoBancario,
			core.DocCargoBancario,
			core.DocDeposito,
			core.DocDepositoTercero,
		},
	}}
	d.rules = []rule{
		{name: "spei_transfer", match: isBanregioSPEI, extract: d.extractSPEI},
		{name: "nb_receipt", match: prefixMatch("(NB)"), extract: d.extractNB},
		{name: "cash_deposit", match: prefixMatch("DEPOSITO EFECTIVO"), extract: d.extractCashDeposit},
		{name: "third_party_deposit", match: prefixMatch("DEPOSITO DE TERCERO"), extract: d.extractThirdPartyDeposit},
		{name: "be_charge", match: prefixMatch("(BE)"), extract: d.extractCharge},
	}
	return d
}

func prefixMatch(prefix string) func(string) bool {
	return func(desc string) bool { return strings.HasPrefix(desc, prefix) }
}

// isBanregioSPEI validates the structural marker: the description is
// period-segmented and the first segment carries the SPEI suffix.
func isBanregioSPEI(desc string) bool {
	if !strings.Contains(desc, ".") {
		return false
	}
	parts := splitSegments(desc)
	return len(parts) > 0 && strings.HasSuffix(parts[0], "SPEI")
}

// splitSegments splits on the period delimiter, trimming and dropping
// empty segments.
func splitSegments(desc string) []string {
	var parts []string
	for _, p := range strings.Split(desc, ".") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// isReferenceShaped reports whether a segment looks like a transaction
// reference: a long numeric run, a long alphanumeric token mixing
// letters and digits, or a UUID. Length and composition only, no
// checksum validation.
func isReferenceShaped(p string) bool {
	p = strings.TrimSpace(p)
	if longNumericRe.MatchString(p) {
		return true
	}
	if len(p) >= 10 && upperRe.MatchString(p) && digitRe.MatchString(p) {
		return true
	}
	return uuidRe.MatchString(p)
}

// extractSPEI positionally decodes a segmented transfer: segment 2 is the
// origin bank, segment 3 the origin account, the first reference-shaped
// segment after that is the reference, everything in between is the
// counterparty name, and the last segment is always the comment.
func (d *Banregio) extractSPEI(desc string) core.ClassifiedFields {
	parts := splitSegments(desc)
	cf := core.ClassifiedFields{DocumentType: core.DocAbonoBancario}

	if len(parts) > 1 {
		cf.OriginBank = parts[1]
	}
	if len(parts) > 2 {
		cf.OriginAccount = parts[2]
	}

	refIdx := -1
	for i := 3; i < len(parts); i++ {
		if isReferenceShaped(parts[i]) {
			refIdx = i
			break
		}
	}

	if refIdx > 3 {
		cf.CounterpartyName = strings.Join(parts[3:refIdx], " ")
	} else if len(parts) > 3 {
		cf.CounterpartyName = parts[3]
	}
	if refIdx >= 0 {
		cf.Reference = parts[refIdx]
	}

	cf.Comment = parts[len(parts)-1]
	return cf
}

// extractNB handles internal receipts: the origin bank is the reporting
// bank itself and the account is embedded behind a "cuenta:" label.
func (d *Banregio) extractNB(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{
		DocumentType: core.DocAbonoBancario,
		OriginBank:   "BANREGIO",
	}
	if m := banregioCuentaRe.FindStringSubmatch(desc); m != nil {
		cf.OriginAccount = m[1]
	}
	if _, rest, ok := strings.Cut(desc, "."); ok {
		cf.Comment = strings.TrimSpace(rest)
	}
	return cf
}

func (d *Banregio) extractCashDeposit(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{
		DocumentType: core.DocDeposito,
		OriginBank:   "EFECTIVO",
	}
	if m := banregioFolioRe.FindStringSubmatch(desc); m != nil {
		cf.Reference = m[1]
	}
	cf.Comment = strings.TrimSpace(banregioFolioStrip.ReplaceAllString(desc, ""))
	return cf
}

func (d *Banregio) extractThirdPartyDeposit(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{
		DocumentType: core.DocDepositoTercero,
		OriginBank:   "TERCERO",
	}
	if m := banregioRefbntcRe.FindStringSubmatch(desc); m != nil {
		cf.Reference = m[1]
	}
	cf.Comment = strings.TrimSpace(banregioTerceroStrip.ReplaceAllString(desc, ""))
	return cf
}

func (d *Banregio) extractCharge(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{DocumentType: core.DocCargoBancario}
	if _, rest, ok := strings.Cut(desc, "."); ok {
		cf.Comment = strings.TrimSpace(rest)
	} else {
		cf.Comment = desc
	}
	return cf
}

// CorrectSign implements SignCorrector. The SPEI marker does not encode
// direction, so a transfer-shaped line is a charge when the debit side is
// positive and a credit otherwise. Other shapes keep their classified
// type.
func (d *Banregio) CorrectSign(fields core.ClassifiedFields, description string, debit decimal.Decimal) core.DocumentType {
	if !isBanregioSPEI(strings.TrimSpace(description)) {
		return fields.DocumentType
	}
	if debit.IsPositive() {
		return core.DocCargoBancario
	}
	return core.DocAbonoBancario
}
