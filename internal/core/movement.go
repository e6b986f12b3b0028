package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the bank-assigned category of a statement line. Each
// dialect classifies into its own closed subset of these values.
type DocumentType string

const (
	DocAbonoBancario     DocumentType = "ABONO BANCARIO"
	DocCargoBancario     DocumentType = "CARGO BANCARIO"
	DocDeposito          DocumentType = "DEPOSITO"
	DocDepositoTercero   DocumentType = "DEPOSITO DE TERCERO"
	DocPagoCuentaTercero DocumentType = "PAGO CUENTA DE TERCERO"
	DocSpeiRecibido      DocumentType = "SPEI RECIBIDO"
	DocTefRecibido       DocumentType = "TEF RECIBIDO"
)

type (
	// RawLine is one statement row after column extraction and amount
	// normalization, before description classification. It lives only for
	// the duration of a single ingest run.
	RawLine struct {
		Date        time.Time
		Description string
		Credit      decimal.Decimal
		Debit       decimal.Decimal
		Balance     decimal.Decimal
		Bank        string
		Account     string
	}

	// ClassifiedFields is the sub-structure a dialect recognizes inside a
	// raw description. Optional fields are empty when the description does
	// not carry them.
	ClassifiedFields struct {
		DocumentType     DocumentType
		OriginBank       string
		OriginAccount    string
		CounterpartyName string
		Reference        string
		Comment          string
	}

	// Movement is the canonical, dialect-independent record handed to the
	// store. Description keeps the original text verbatim (trimmed).
	Movement struct {
		Date             time.Time
		Bank             string
		Account          string
		OriginBank       string
		OriginAccount    string
		PayerID          string // reserved, unused by the supported dialects
		CounterpartyName string
		DocumentType     DocumentType
		Currency         string
		Description      string
		Comment          string
		Reference        string
		Credit           decimal.Decimal
		Debit            decimal.Decimal
		Balance          decimal.Decimal
		Net              decimal.Decimal
	}
)

// NewMovement assembles the canonical record from a raw line and its
// classification. Net is always derived here, never taken from input.
func NewMovement(line RawLine, fields ClassifiedFields, currency string) Movement {
	return Movement{
		Date:             line.Date,
		Bank:             line.Bank,
		Account:          line.Account,
		OriginBank:       fields.OriginBank,
		OriginAccount:    fields.OriginAccount,
		CounterpartyName: fields.CounterpartyName,
		DocumentType:     fields.DocumentType,
		Currency:         currency,
		Description:      strings.TrimSpace(line.Description),
		Comment:          fields.Comment,
		Reference:        fields.Reference,
		Credit:           line.Credit,
		Debit:            line.Debit,
		Balance:          line.Balance,
		Net:              line.Credit.Sub(line.Debit),
	}
}

// keyScale is the decimal scale at which amounts participate in the
// natural key. Comparing at a fixed scale keeps duplicate detection
// stable across runs regardless of how the source file formats numbers.
const keyScale = 2

// NaturalKey renders the deduplication identity of the movement. Two
// movements with equal keys are the same physical transaction.
func (m Movement) NaturalKey() string {
	return strings.Join([]string{
		m.Date.Format("2006-01-02"),
		m.Bank,
		m.Account,
		string(m.DocumentType),
		m.Description,
		m.Comment,
		m.Reference,
		m.Credit.StringFixed(keyScale),
		m.Debit.StringFixed(keyScale),
		m.Balance.StringFixed(keyScale),
	}, "|")
}
