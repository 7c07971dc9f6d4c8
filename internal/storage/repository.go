package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// busyTimeoutMillis bounds how long a writer waits on the SQLite file lock.
const busyTimeoutMillis = 5000

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// NewSQLiteRepository opens (creating if needed) the database file at dbPath
// and applies pending migrations before returning.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", dbPath, busyTimeoutMillis)

	if _, err := RunMigrations(dsn); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements ports.Pinger
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create implements ports.TransactionWriter
func (r *SQLiteRepository) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Date:            t.Date.String(),
		Category:        t.Category,
		Amount:          t.Amount,
		TransactionType: t.Type.String(),
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"id", row.ID,
		"date", row.Date,
		"category", row.Category,
		"transaction_type", row.TransactionType)

	return toCore(row)
}

// List implements ports.TransactionLister
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := toCore(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Summary implements ports.SummaryReader
func (r *SQLiteRepository) Summary(ctx context.Context) (core.Summary, error) {
	rows, err := r.queries.SumByTypeAndCategory(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("sum by type and category: %w", err)
	}

	totals := make([]core.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = core.CategoryTotal{
			Type:     core.TransactionType(row.TransactionType),
			Category: row.Category,
			Amount:   row.TotalAmount,
		}
	}
	return core.BuildSummary(totals), nil
}

// Update implements ports.TransactionWriter
func (r *SQLiteRepository) Update(ctx context.Context, id int64, t core.Transaction) (core.Transaction, error) {
	var updated core.Transaction
	err := r.inTx(ctx, func(q *Queries) error {
		if _, err := q.GetTransaction(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return core.ErrTransactionNotFound
			}
			return fmt.Errorf("get transaction %d: %w", id, err)
		}

		if _, err := q.UpdateTransaction(ctx, UpdateTransactionParams{
			Date:            t.Date.String(),
			Category:        t.Category,
			Amount:          t.Amount,
			TransactionType: t.Type.String(),
			ID:              id,
		}); err != nil {
			return fmt.Errorf("update transaction %d: %w", id, err)
		}

		updated = t
		updated.ID = id
		return nil
	})
	return updated, err
}

// Delete implements ports.TransactionWriter
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	return r.inTx(ctx, func(q *Queries) error {
		n, err := q.DeleteTransaction(ctx, id)
		if err != nil {
			return fmt.Errorf("delete transaction %d: %w", id, err)
		}
		if n == 0 {
			return core.ErrTransactionNotFound
		}
		return nil
	})
}

// inTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back on every other path, including panics.
func (r *SQLiteRepository) inTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(r.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func toCore(row Transaction) (core.Transaction, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %d has corrupt date: %w", row.ID, err)
	}
	return core.Transaction{
		ID:       row.ID,
		Date:     date,
		Category: row.Category,
		Amount:   row.Amount,
		Type:     core.TransactionType(row.TransactionType),
	}, nil
}
