package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// BanregioReader parses the Banregio movements export (the CSV rendering
// of their xlsx download). The file opens with several metadata lines, so
// the header row is located by scanning for the row that carries both the
// date and description labels.
type BanregioReader struct{}

// Format returns the reader name.
func (p *BanregioReader) Format() string { return "banregio" }

// Read parses the export. "Saldo inicial" carry rows are informational
// and skipped here; everything else flows through, including rows with
// zero amounts.
func (p *BanregioReader) Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading Banregio export: %w", err)
	}

	headerIdx := -1
	for i, rec := range records {
		if isBanregioHeader(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: header row with fecha and descripción not found", ErrMissingColumns)
	}

	header := make([]string, len(records[headerIdx]))
	for i, h := range records[headerIdx] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	dateCol := columnIndex(header, "fecha")
	descCol := firstColumnIndex(header, "descripción", "descripcion")
	debitCol := columnIndex(header, "cargo")
	creditCol := columnIndex(header, "abonos")
	balanceCol := columnIndex(header, "saldo")

	var missing []string
	if dateCol < 0 {
		missing = append(missing, "fecha")
	}
	if descCol < 0 {
		missing = append(missing, "descripción")
	}
	if debitCol < 0 {
		missing = append(missing, "cargo")
	}
	if creditCol < 0 {
		missing = append(missing, "abonos")
	}
	if balanceCol < 0 {
		missing = append(missing, "saldo")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []Row
	for _, rec := range records[headerIdx+1:] {
		if blankRecord(rec) {
			continue
		}
		desc := cell(rec, descCol)
		if strings.Contains(strings.ToLower(desc), "saldo inicial") {
			continue
		}
		rows = append(rows, Row{
			Date:        cell(rec, dateCol),
			Description: desc,
			Credit:      cell(rec, creditCol),
			Debit:       cell(rec, debitCol),
			Balance:     cell(rec, balanceCol),
		})
	}
	return rows, nil
}

func isBanregioHeader(rec []string) bool {
	hasFecha, hasDesc := false, false
	for _, c := range rec {
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "fecha":
			hasFecha = true
		case "descripción", "descripcion":
			hasDesc = true
		}
	}
	return hasFecha && hasDesc
}

func firstColumnIndex(header []string, names ...string) int {
	for _, n := range names {
		if idx := columnIndex(header, n); idx >= 0 {
			return idx
		}
	}
	return -1
}
