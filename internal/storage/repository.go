// Package storage persists canonical movements in SQLite. The natural
// key is enforced as a UNIQUE constraint in the schema, so deduplication
// holds across concurrent and repeated runs without application-level
// locking: every write is a single INSERT OR IGNORE.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"conciliador/internal/core"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// amountScale matches the scale of the natural key: amounts are written
// as fixed two-decimal text so the UNIQUE constraint compares values,
// not driver-dependent float encodings.
const amountScale = 2

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// avoids busy errors when ingest runs execute concurrently.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const insertMovementSQL = `
	INSERT OR IGNORE INTO movimientos_bancarios (
		fecha, banco, cuenta, banco_origen, cuenta_origen,
		rut_pagador, nombre_contraparte, tipo_documento, moneda,
		descripcion, comentario_movimiento, referencia_movimiento,
		abonos, cargos, saldo, neto
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertIfAbsent implements core.MovementStore. A duplicate natural key
// is an expected outcome, reported through the bool and never an error.
func (r *SQLiteRepository) InsertIfAbsent(ctx context.Context, m core.Movement) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertMovementSQL, movementArgs(m)...)
	if err != nil {
		return false, fmt.Errorf("insert movement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// InsertBatch writes a run's movements inside one transaction while
// keeping each row's insert-or-ignore outcome independent. Returns the
// inserted and skipped counts.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, movements []core.Movement) (inserted, skipped int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertMovementSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movements {
		res, err := stmt.ExecContext(ctx, movementArgs(m)...)
		if err != nil {
			return 0, 0, fmt.Errorf("insert movement: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("rows affected: %w", err)
		}
		if n == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit batch: %w", err)
	}

	slog.InfoContext(ctx, "Movement batch stored",
		"inserted", inserted,
		"skipped", skipped)

	return inserted, skipped, nil
}

func movementArgs(m core.Movement) []any {
	return []any{
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
		m.Credit.StringFixed(amountScale),
		m.Debit.StringFixed(amountScale),
		m.Balance.StringFixed(amountScale),
		m.Net.StringFixed(amountScale),
	}
}

// ListMovements implements core.MovementLister: date ascending, then
// insertion order.
func (r *SQLiteRepository) ListMovements(ctx context.Context) ([]core.Movement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT fecha, banco, cuenta, banco_origen, cuenta_origen,
		       rut_pagador, nombre_contraparte, tipo_documento, moneda,
		       descripcion, comentario_movimiento, referencia_movimiento,
		       abonos, cargos, saldo, neto
		FROM movimientos_bancarios
		ORDER BY fecha ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()

	var movements []core.Movement
	for rows.Next() {
		var (
			m                           core.Movement
			fecha                       string
			tipo                        string
			abonos, cargos, saldo, neto string
		)
		if err := rows.Scan(&fecha, &m.Bank, &m.Account, &m.OriginBank, &m.OriginAccount,
			&m.PayerID, &m.CounterpartyName, &tipo, &m.Currency,
			&m.Description, &m.Comment, &m.Reference,
			&abonos, &cargos, &saldo, &neto); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if m.Date, err = time.Parse("2006-01-02", fecha); err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", fecha, err)
		}
		m.DocumentType = core.DocumentType(tipo)
		if m.Credit, err = decimal.NewFromString(abonos); err != nil {
			return nil, fmt.Errorf("parse stored credit %q: %w", abonos, err)
		}
		if m.Debit, err = decimal.NewFromString(cargos); err != nil {
			return nil, fmt.Errorf("parse stored debit %q: %w", cargos, err)
		}
		if m.Balance, err = decimal.NewFromString(saldo); err != nil {
			return nil, fmt.Errorf("parse stored balance %q: %w", saldo, err)
		}
		if m.Net, err = decimal.NewFromString(neto); err != nil {
			return nil, fmt.Errorf("parse stored net %q: %w", neto, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return movements, nil
}

// CountMovements returns the number of stored movements.
func (r *SQLiteRepository) CountMovements(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movimientos_bancarios`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
