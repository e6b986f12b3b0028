package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// BBVAReader parses the BBVA movements export, a tab-separated text file
// with a single header line. The export lists newest movements first, so
// rows are reversed before returning.
type BBVAReader struct{}

const bbvaConceptCol = "concepto / referencia"

var bbvaDateShapeRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// Format returns the reader name.
func (p *BBVAReader) Format() string { return "bbva" }

// Read parses the export. The date column carries a bank-dependent label,
// so it is detected by shape: the column whose leading values all look
// like dd-mm-yyyy.
func (p *BBVAReader) Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading BBVA export: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: BBVA export has no data rows", ErrMissingColumns)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	data := records[1:]

	dateCol := detectDateColumn(header, data)
	conceptCol := columnIndex(header, bbvaConceptCol)
	debitCol := columnIndex(header, "cargo")
	creditCol := columnIndex(header, "abono")
	balanceCol := columnIndex(header, "saldo")

	var missing []string
	if dateCol < 0 {
		missing = append(missing, "fecha")
	}
	if conceptCol < 0 {
		missing = append(missing, bbvaConceptCol)
	}
	if debitCol < 0 {
		missing = append(missing, "cargo")
	}
	if creditCol < 0 {
		missing = append(missing, "abono")
	}
	if balanceCol < 0 {
		missing = append(missing, "saldo")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	rows := make([]Row, 0, len(data))
	for _, rec := range data {
		if blankRecord(rec) {
			continue
		}
		rows = append(rows, Row{
			Date:        cell(rec, dateCol),
			Description: cell(rec, conceptCol),
			Credit:      cell(rec, creditCol),
			Debit:       cell(rec, debitCol),
			Balance:     cell(rec, balanceCol),
		})
	}

	// Oldest first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// detectDateColumn returns the index of the first column whose leading
// data values (up to five) all match the dd-mm-yyyy shape.
func detectDateColumn(header []string, data [][]string) int {
	for col := range header {
		sample := 0
		matched := 0
		for _, rec := range data {
			if sample == 5 {
				break
			}
			v := strings.TrimSpace(cell(rec, col))
			if v == "" {
				continue
			}
			sample++
			if bbvaDateShapeRe.MatchString(v) {
				matched++
			}
		}
		if sample > 0 && matched == sample {
			return col
		}
	}
	return -1
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
