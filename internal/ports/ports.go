package ports

import (
	"context"

	"fintrack/internal/core"
)

// Ports for the transaction store.
type (
	TransactionWriter interface {
		// Create persists t and returns it with the store assigned ID.
		Create(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// Update replaces every non-id field of the transaction with the given id.
		// Returns core.ErrTransactionNotFound when no such transaction exists.
		Update(ctx context.Context, id int64, t core.Transaction) (core.Transaction, error)
		// Delete removes the transaction with the given id.
		// Returns core.ErrTransactionNotFound when no such transaction exists.
		Delete(ctx context.Context, id int64) error
	}

	TransactionLister interface {
		// List returns every transaction, most recent date first.
		List(ctx context.Context) ([]core.Transaction, error)
	}

	// SummaryReader computes aggregate figures over all transactions.
	SummaryReader interface {
		Summary(ctx context.Context) (core.Summary, error)
	}

	TransactionStore interface {
		TransactionWriter
		TransactionLister
		SummaryReader
	}

	// Pinger reports whether the underlying store is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
