// Package services orchestrates the ingest pipeline: statement rows are
// normalized, classified per dialect, sign-reconciled and handed to the
// idempotent store, with per-run counts of inserted, skipped and dropped
// rows.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"conciliador/internal/core"
	"conciliador/internal/dialect"
	"conciliador/internal/log"
	"conciliador/internal/statement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// BatchStore is what the ingest pipeline needs from persistence: atomic
// insert-or-ignore per row, batched per run.
type BatchStore interface {
	core.MovementStore
	InsertBatch(ctx context.Context, movements []core.Movement) (inserted, skipped int, err error)
}

// Summary reports one ingest run. Dropped counts rows with unparseable
// dates; Skipped counts natural-key duplicates.
type Summary struct {
	RunID    string
	File     string
	Bank     string
	Rows     int
	Inserted int
	Skipped  int
	Dropped  int
}

func (s Summary) String() string {
	return fmt.Sprintf("%s [%s]: %d rows, %d inserted, %d duplicates skipped, %d dropped",
		s.File, s.Bank, s.Rows, s.Inserted, s.Skipped, s.Dropped)
}

// ErrUnknownBank means no reader/dialect pair is registered for the
// requested bank identifier.
var ErrUnknownBank = errors.New("unknown bank")

// IngestService wires readers, dialects and the store together.
type IngestService struct {
	store    BatchStore
	readers  *statement.Registry
	dialects *dialect.Registry
	currency string
	account  string
	logger   *log.Logger
}

func NewIngestService(store BatchStore, readers *statement.Registry, dialects *dialect.Registry, currency, account string, logger *log.Logger) *IngestService {
	return &IngestService{
		store:    store,
		readers:  readers,
		dialects: dialects,
		currency: currency,
		account:  account,
		logger:   logger.WithComponent(log.ComponentIngest),
	}
}

// IngestFile processes one statement file for one bank. Structural
// problems (unknown bank, unreadable file, missing columns) abort before
// any write; data-quality problems are absorbed into the counts.
func (s *IngestService) IngestFile(ctx context.Context, path, bank string) (Summary, error) {
	runID := uuid.NewString()
	summary := Summary{RunID: runID, File: path, Bank: strings.ToUpper(bank)}

	reader := s.readers.Get(bank)
	d := s.dialects.Get(bank)
	if reader == nil || d == nil {
		return summary, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	f, err := os.Open(path)
	if err != nil {
		return summary, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	rows, err := reader.Read(f)
	if err != nil {
		return summary, fmt.Errorf("read statement %s: %w", path, err)
	}
	summary.Rows = len(rows)

	movements := make([]core.Movement, 0, len(rows))
	for _, row := range rows {
		m, ok := s.normalize(ctx, runID, row, summary.Bank, d)
		if !ok {
			summary.Dropped++
			continue
		}
		movements = append(movements, m)
	}

	inserted, skipped, err := s.store.InsertBatch(ctx, movements)
	if err != nil {
		return summary, fmt.Errorf("store movements: %w", err)
	}
	summary.Inserted = inserted
	summary.Skipped = skipped

	s.logger.InfoContext(ctx, "Ingest run finished",
		log.FieldRunID, runID,
		log.FieldFile, path,
		log.FieldBank, summary.Bank,
		log.FieldRows, summary.Rows,
		log.FieldInserted, summary.Inserted,
		log.FieldSkipped, summary.Skipped,
		log.FieldDropped, summary.Dropped)

	return summary, nil
}

// normalize turns one raw row into a canonical movement. A row is lost
// only when its date does not parse; unparseable amounts default to
// zero, since statements routinely contain blank cells.
func (s *IngestService) normalize(ctx context.Context, runID string, row statement.Row, bank string, d dialect.Dialect) (core.Movement, bool) {
	date, err := statement.ParseDate(row.Date)
	if err != nil {
		s.logger.WarnContext(ctx, "Dropping row with unparseable date",
			log.FieldRunID, runID,
			"date", row.Date,
			log.FieldDescription, row.Description)
		return core.Movement{}, false
	}

	credit := s.amount(ctx, runID, "credit", row.Credit)
	debit := s.amount(ctx, runID, "debit", row.Debit)
	balance := s.amount(ctx, runID, "balance", row.Balance)

	raw := core.RawLine{
		Date:        date,
		Description: row.Description,
		Credit:      credit,
		Debit:       debit,
		Balance:     balance,
		Bank:        bank,
		Account:     s.account,
	}

	fields := d.Classify(raw.Description)
	fields.DocumentType = dialect.ReconcileSign(d, fields, raw.Description, raw.Debit)

	return core.NewMovement(raw, fields, s.currency), true
}

func (s *IngestService) amount(ctx context.Context, runID, field, text string) decimal.Decimal {
	v, err := core.ParseAmount(text)
	if err != nil {
		s.logger.WarnContext(ctx, "Defaulting unparseable amount to zero",
			log.FieldRunID, runID,
			"field", field,
			"value", text)
	}
	return v
}

// IngestFiles processes several statement files for one bank
// concurrently. Classification is pure and the store's uniqueness
// constraint serializes writers, so runs are independent.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string, bank string, concurrency int) ([]Summary, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	summaries := make([]Summary, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			summary, err := s.IngestFile(ctx, path, bank)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
