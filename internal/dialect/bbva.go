package dialect

import (
	"regexp"
	"strings"

	"conciliador/internal/core"
)

// BBVA descriptions are label-prefixed rather than segmented: a fixed
// literal opens the line and the interesting fields hide behind slashes
// and inline labels. Direction is unambiguous per marker, so BBVA needs
// no sign correction.
type BBVA struct {
	ruleSet
}

const bbvaName = "bbva"

var (
	bbvaSlashRefRe   = regexp.MustCompile(`/\s*(\d+)`)
	bbvaBnetRe       = regexp.MustCompile(`BNET\s+(\d+)`)
	bbvaRecibidoRe   = regexp.MustCompile(`^(?:SPEI RECIBIDO|TEF RECIBIDO)([A-Z]+)`)
	bbvaTightRefRe   = regexp.MustCompile(`/(\d+)`)
	bbvaFolioRe      = regexp.MustCompile(`FOLIO:(\d+)`)
	bbvaFolioStrip   = regexp.MustCompile(`DEPOSITO EFECTIVO PRACTIC/\*+\d+\s*|FOLIO:\d+`)
	bbvaRefbntcRe    = regexp.MustCompile(`REFBNTC(\d+)`)
	bbvaTerceroStrip = regexp.MustCompile(`DEPOSITO DE TERCERO/REFBNTC\d+\s*|BMRCASH`)
)

// NewBBVA builds the BBVA rule set, ordered by priority.
func NewBBVA() *BBVA {
	d := &BBVA{ruleSet{
		name:     bbvaName,
		fallback: core.DocCargoBancario,
		docTypes: []core.DocumentType{
			core.DocCargoBancario,
			core.DocPagoCuentaTercero,
			core.DocSpeiRecibido,
			core.DocTefRecibido,
			core.DocDeposito,
			core.DocDepositoTercero,
		},
	}}
	d.rules = []rule{
		{name: "third_party_payment", match: prefixMatch("PAGO CUENTA DE TERCERO"), extract: d.extractThirdPartyPayment},
		{name: "transfer_received", match: isBBVARecibido, extract: d.extractRecibido},
		{name: "cash_deposit", match: prefixMatch("DEPOSITO EFECTIVO"), extract: d.extractCashDeposit},
		{name: "third_party_deposit", match: prefixMatch("DEPOSITO DE TERCERO"), extract: d.extractThirdPartyDeposit},
	}
	return d
}

func isBBVARecibido(desc string) bool {
	return strings.HasPrefix(desc, "SPEI RECIBIDO") || strings.HasPrefix(desc, "TEF RECIBIDO")
}

// extractThirdPartyPayment pulls the reference from the first slashed
// numeric token and the origin account from the BNET label; the comment
// is whatever follows the account number.
func (d *BBVA) extractThirdPartyPayment(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{
		DocumentType: core.DocPagoCuentaTercero,
		OriginBank:   "BBVA",
	}
	if m := bbvaSlashRefRe.FindStringSubmatch(desc); m != nil {
		cf.Reference = m[1]
	}
	if m := bbvaBnetRe.FindStringSubmatch(desc); m != nil {
		cf.OriginAccount = m[1]
		if _, rest, ok := strings.Cut(desc, m[1]); ok {
			cf.Comment = rest
		}
	}
	return cf
}

// extractRecibido handles labelled inbound transfers. The document type
// is the first token of the description plus the RECIBIDO suffix, and
// the origin bank is the run of capitals glued right after the marker.
func (d *BBVA) extractRecibido(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{DocumentType: core.DocSpeiRecibido}
	if strings.HasPrefix(desc, "TEF") {
		cf.DocumentType = core.DocTefRecibido
	}
	if m := bbvaRecibidoRe.FindStringSubmatch(desc); m != nil {
		cf.OriginBank = m[1]
	}
	if m := bbvaTightRefRe.FindStringSubmatch(desc); m != nil {
		cf.Reference = m[1]
		if _, rest, ok := strings.Cut(desc, m[1]); ok {
			cf.Comment = rest
		}
	}
	return cf
}

func (d *BBVA) extractCashDeposit(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{
		DocumentType: core.DocDeposito,
		OriginBank:   "DEPOSITO",
	}
	if m := bbvaFolioRe.FindStringSubmatch(desc); m != nil {
		cf.Reference = m[1]
	}
	cf.Comment = strings.TrimSpace(bbvaFolioStrip.ReplaceAllString(desc, ""))
	return cf
}

func (d *BBVA) extractThirdPartyDeposit(desc string) core.ClassifiedFields {
	cf := core.ClassifiedFields{
		DocumentType: core.DocDepositoTercero,
		OriginBank:   "DEPOSITO",
	}
	if m := bbvaRefbntcRe.FindStringSubmatch(desc); m != nil {
		cf.Reference = m[1]
	}
	cf.Comment = strings.TrimSpace(bbvaTerceroStrip.ReplaceAllString(desc, ""))
	return cf
}
