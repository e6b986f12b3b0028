package statement

import (
	"errors"
	"strings"
	"testing"
)

const banregioSample = `BANREGIO,Estado de cuenta,,,
Cuenta,0123456789,,,
,,,,
Fecha,Descripción,Cargo,Abonos,Saldo
01-12-2025,Saldo inicial,,,"8,000.00"
02-12-2025,036SPEI.BANXICO.012345678.JUAN PEREZ.BNET00012345.PAGO,,"1,250.00","9,250.00"
03-12-2025,(BE) COMISION MEMBRESIA. MANEJO DE CUENTA,145.00,,"9,105.00"
,,,,
`

func TestBanregioReaderParsesRows(t *testing.T) {
	p := &BanregioReader{}

	rows, err := p.Read(strings.NewReader(banregioSample))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (saldo inicial and blanks skipped)", len(rows))
	}

	if rows[0].Date != "02-12-2025" {
		t.Errorf("date = %q", rows[0].Date)
	}
	if rows[0].Credit != "1,250.00" {
		t.Errorf("credit = %q", rows[0].Credit)
	}
	if rows[0].Debit != "" {
		t.Errorf("debit = %q", rows[0].Debit)
	}
	if rows[1].Debit != "145.00" {
		t.Errorf("debit = %q", rows[1].Debit)
	}
	if rows[1].Balance != "9,105.00" {
		t.Errorf("balance = %q", rows[1].Balance)
	}
}

func TestBanregioReaderHeaderNotFound(t *testing.T) {
	p := &BanregioReader{}

	in := "a,b,c\n1,2,3\n"
	_, err := p.Read(strings.NewReader(in))
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("err = %v, want ErrMissingColumns", err)
	}
}

func TestBanregioReaderMissingAmountColumns(t *testing.T) {
	p := &BanregioReader{}

	in := "Fecha,Descripción\n02-12-2025,algo\n"
	_, err := p.Read(strings.NewReader(in))
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("err = %v, want ErrMissingColumns", err)
	}
	if !strings.Contains(err.Error(), "cargo") {
		t.Errorf("error should name the missing columns: %v", err)
	}
}
