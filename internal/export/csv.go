// Package export renders stored movements as read-only projections; it
// never writes back to the store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"conciliador/internal/core"
)

var csvHeader = []string{
	"fecha", "banco", "cuenta", "banco_origen", "cuenta_origen",
	"rut_pagador", "nombre_contraparte", "tipo_documento", "moneda",
	"descripcion", "comentario_movimiento", "referencia_movimiento",
	"abonos", "cargos", "saldo", "neto",
}

// WriteCSV writes movements in their given order with every canonical
// field visible. Callers pass the store's listing, which is already
// ordered by date and insertion.
func WriteCSV(w io.Writer, movements []core.Movement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range movements {
		rec := []string{
			m.Date.Format("2006-01-02"),
			m.Bank,
			m.Account,
			m.OriginBank,
			m.OriginAccount,
			m.PayerID,
			m.CounterpartyName,
			string(m.DocumentType),
			m.Currency,
			m.Description,
			m.Comment,
			m.Reference,
			m.Credit.StringFixed(2),
			m.Debit.StringFixed(2),
			m.Balance.StringFixed(2),
			m.Net.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write movement: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
