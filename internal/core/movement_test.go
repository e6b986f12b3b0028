package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewMovementNetInvariant(t *testing.T) {
	cases := []struct {
		name   string
		credit string
		debit  string
		net    string
	}{
		{"credit only", "1250.00", "0", "1250.00"},
		{"debit only", "0", "310.55", "-310.55"},
		{"both zero", "0", "0", "0.00"},
		{"fractional", "10.10", "0.35", "9.75"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := RawLine{
				Date:        date("2025-12-19"),
				Description: "  SPEI RECIBIDOBANAMEX / 0012345 PAGO  ",
				Credit:      decimal.RequireFromString(tc.credit),
				Debit:       decimal.RequireFromString(tc.debit),
				Bank:        "BBVA",
			}
			m := NewMovement(line, ClassifiedFields{DocumentType: DocSpeiRecibido}, "MXN")

			if got := m.Net.StringFixed(2); got != tc.net {
				t.Fatalf("net = %s, want %s", got, tc.net)
			}
			if !m.Net.Equal(m.Credit.Sub(m.Debit)) {
				t.Fatalf("net invariant violated: %s != %s - %s", m.Net, m.Credit, m.Debit)
			}
		})
	}
}

func TestNewMovementTrimsDescription(t *testing.T) {
	line := RawLine{Date: date("2025-01-02"), Description: "  ABONO X  "}
	m := NewMovement(line, ClassifiedFields{DocumentType: DocAbonoBancario}, "MXN")
	if m.Description != "ABONO X" {
		t.Fatalf("description = %q", m.Description)
	}
}

func TestNaturalKeyFixedScale(t *testing.T) {
	base := RawLine{
		Date:        date("2025-12-19"),
		Description: "DEPOSITO EFECTIVO PRACTIC/***1234 SUC CENTRO FOLIO:998877",
		Bank:        "BANREGIO",
	}
	fields := ClassifiedFields{
		DocumentType: DocDeposito,
		Reference:    "998877",
		Comment:      "SUC CENTRO",
	}

	a := base
	a.Credit = decimal.RequireFromString("1250")
	b := base
	b.Credit = decimal.RequireFromString("1250.00")

	ka := NewMovement(a, fields, "MXN").NaturalKey()
	kb := NewMovement(b, fields, "MXN").NaturalKey()
	if ka != kb {
		t.Fatalf("keys differ for equal amounts at different scales:\n%s\n%s", ka, kb)
	}

	c := base
	c.Credit = decimal.RequireFromString("1250.01")
	if kc := NewMovement(c, fields, "MXN").NaturalKey(); kc == ka {
		t.Fatalf("distinct amounts collapsed to one key: %s", kc)
	}
}

func TestNaturalKeyDistinguishesReference(t *testing.T) {
	line := RawLine{Date: date("2025-12-19"), Description: "X", Bank: "BANREGIO"}
	a := NewMovement(line, ClassifiedFields{DocumentType: DocAbonoBancario, Reference: "111"}, "MXN")
	b := NewMovement(line, ClassifiedFields{DocumentType: DocAbonoBancario, Reference: "222"}, "MXN")
	if a.NaturalKey() == b.NaturalKey() {
		t.Fatal("reference not part of the natural key")
	}
}
