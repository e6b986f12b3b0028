package dialect

import (
	"testing"

	"conciliador/internal/core"
)

func TestBanregioSPEITransfer(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("036SPEI.BANXICO.012345678.JUAN PEREZ.BNET00012345.PAGO")

	if cf.DocumentType != core.DocAbonoBancario {
		t.Fatalf("document type = %s", cf.DocumentType)
	}
	if cf.OriginBank != "BANXICO" {
		t.Errorf("origin bank = %q", cf.OriginBank)
	}
	if cf.OriginAccount != "012345678" {
		t.Errorf("origin account = %q", cf.OriginAccount)
	}
	if cf.CounterpartyName != "JUAN PEREZ" {
		t.Errorf("counterparty = %q", cf.CounterpartyName)
	}
	if cf.Reference != "BNET00012345" {
		t.Errorf("reference = %q", cf.Reference)
	}
	if cf.Comment != "PAGO" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

func TestBanregioSPEIMultiWordCounterparty(t *testing.T) {
	d := NewBanregio()

	// Counterparty split across segments: everything between the account
	// and the reference joins with spaces.
	cf := d.Classify("RECIBIDO SPEI.STP.646180123456789012.COMERCIAL.DEL NORTE SA.2025120912345678.ABONO FACTURA 81")

	if cf.CounterpartyName != "COMERCIAL DEL NORTE SA" {
		t.Errorf("counterparty = %q", cf.CounterpartyName)
	}
	if cf.Reference != "2025120912345678" {
		t.Errorf("reference = %q", cf.Reference)
	}
	if cf.Comment != "ABONO FACTURA 81" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

func TestBanregioSPEIWithoutReference(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("036SPEI.BANORTE.112233.MARIA LOPEZ.TRASPASO")

	if cf.Reference != "" {
		t.Errorf("reference = %q, want unset", cf.Reference)
	}
	// First segment after the account becomes the counterparty.
	if cf.CounterpartyName != "MARIA LOPEZ" {
		t.Errorf("counterparty = %q", cf.CounterpartyName)
	}
	if cf.Comment != "TRASPASO" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

func TestBanregioUUIDReference(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("036SPEI.BANXICO.012345678.JUAN PEREZ.a1b2c3d4-e5f6-7890-abcd-ef1234567890.PAGO")

	if cf.Reference != "a1b2c3d4-e5f6-7890-abcd-ef1234567890" {
		t.Errorf("reference = %q", cf.Reference)
	}
}

func TestBanregioNBReceipt(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("(NB) RECEPCION DE CUENTA cuenta: 00551234. PAGO NOMINA DICIEMBRE")

	if cf.DocumentType != core.DocAbonoBancario {
		t.Fatalf("document type = %s", cf.DocumentType)
	}
	if cf.OriginBank != "BANREGIO" {
		t.Errorf("origin bank = %q", cf.OriginBank)
	}
	if cf.OriginAccount != "00551234" {
		t.Errorf("origin account = %q", cf.OriginAccount)
	}
	if cf.Comment != "PAGO NOMINA DICIEMBRE" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

func TestBanregioCashDeposit(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("DEPOSITO EFECTIVO PRACTIC/***1234 SUC CENTRO FOLIO:998877")

	if cf.DocumentType != core.DocDeposito {
		t.Fatalf("document type = %s", cf.DocumentType)
	}
	if cf.OriginBank != "EFECTIVO" {
		t.Errorf("origin bank = %q", cf.OriginBank)
	}
	if cf.Reference != "998877" {
		t.Errorf("reference = %q", cf.Reference)
	}
	if cf.Comment != "SUC CENTRO" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

func TestBanregioThirdPartyDeposit(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("DEPOSITO DE TERCERO/REFBNTC445566 ABARROTES LUPITA BMRCASH")

	if cf.DocumentType != core.DocDepositoTercero {
		t.Fatalf("document type = %s", cf.DocumentType)
	}
	if cf.OriginBank != "TERCERO" {
		t.Errorf("origin bank = %q", cf.OriginBank)
	}
	if cf.Reference != "445566" {
		t.Errorf("reference = %q", cf.Reference)
	}
	if cf.Comment != "ABARROTES LUPITA" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

func TestBanregioCharge(t *testing.T) {
	d := NewBanregio()

	t.Run("with delimiter", func(t *testing.T) {
		cf := d.Classify("(BE) COMISION MEMBRESIA. MANEJO DE CUENTA")
		if cf.DocumentType != core.DocCargoBancario {
			t.Fatalf("document type = %s", cf.DocumentType)
		}
		if cf.Comment != "MANEJO DE CUENTA" {
			t.Errorf("comment = %q", cf.Comment)
		}
	})

	t.Run("without delimiter", func(t *testing.T) {
		cf := d.Classify("(BE) IVA COMISIONES")
		if cf.Comment != "(BE) IVA COMISIONES" {
			t.Errorf("comment = %q", cf.Comment)
		}
	})
}

func TestBanregioFallback(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("  TRASPASO ENTRE CUENTAS PROPIAS  ")

	if cf.DocumentType != core.DocAbonoBancario {
		t.Fatalf("document type = %s", cf.DocumentType)
	}
	if cf.Comment != "TRASPASO ENTRE CUENTAS PROPIAS" {
		t.Errorf("comment = %q", cf.Comment)
	}
	if cf.OriginBank != "" || cf.Reference != "" {
		t.Errorf("fallback should leave optional fields empty: %+v", cf)
	}
}

func TestBanregioCommentStripsLeadingDigits(t *testing.T) {
	d := NewBanregio()

	cf := d.Classify("036SPEI.BANXICO.012345678.JUAN PEREZ.BNET00012345.0045 HONORARIOS")

	if cf.Comment != "HONORARIOS" {
		t.Errorf("comment = %q", cf.Comment)
	}
}

// A deposit line that happens to contain a period must still hit the
// deposit rule: the transfer rule requires the SPEI marker on the first
// segment, not just the delimiter.
func TestBanregioRulePriority(t *testing.T) {
	d := NewBanregio()

	t.Run("deposit with period stays deposit", func(t *testing.T) {
		cf := d.Classify("DEPOSITO EFECTIVO PRACTIC/***1234 SUC. CENTRO FOLIO:998877")
		if cf.DocumentType != core.DocDeposito {
			t.Fatalf("document type = %s", cf.DocumentType)
		}
	})

	t.Run("transfer marker beats deposit literal", func(t *testing.T) {
		cf := d.Classify("036SPEI.DEPOSITO EFECTIVO.012345678.JUAN PEREZ.BNET00012345.PAGO")
		if cf.OriginBank != "DEPOSITO EFECTIVO" {
			t.Fatalf("transfer rule did not win: %+v", cf)
		}
	})
}

func TestBanregioClassifyIsDeterministic(t *testing.T) {
	d := NewBanregio()

	inputs := []string{
		"036SPEI.BANXICO.012345678.JUAN PEREZ.BNET00012345.PAGO",
		"(NB) RECEPCION DE CUENTA cuenta: 123. X",
		"DEPOSITO EFECTIVO PRACTIC/***9 FOLIO:1",
		"algo sin estructura",
		"",
	}
	for _, in := range inputs {
		first := d.Classify(in)
		second := d.Classify(in)
		if first != second {
			t.Fatalf("classification of %q not deterministic:\n%+v\n%+v", in, first, second)
		}
	}
}

func TestBanregioClosedDocumentTypeSet(t *testing.T) {
	d := NewBanregio()

	allowed := make(map[core.DocumentType]bool)
	for _, dt := range d.DocumentTypes() {
		allowed[dt] = true
	}

	inputs := []string{
		"036SPEI.BANXICO.1.2.3",
		"(NB) X. Y",
		"(BE) X. Y",
		"DEPOSITO EFECTIVO FOLIO:1",
		"DEPOSITO DE TERCERO/REFBNTC1",
		"texto libre",
		"",
		"....",
	}
	for _, in := range inputs {
		cf := d.Classify(in)
		if cf.DocumentType == "" {
			t.Fatalf("%q produced empty document type", in)
		}
		if !allowed[cf.DocumentType] {
			t.Fatalf("%q produced %s, outside the dialect's set", in, cf.DocumentType)
		}
	}
}
