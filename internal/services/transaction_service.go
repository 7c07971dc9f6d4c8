package services

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/ports"
)

// EventPublisher delivers transaction change notifications.
type EventPublisher interface {
	Publish(ctx context.Context, ev *amqp.TransactionEvent) error
}

// TransactionService validates input, delegates persistence to the store and
// announces successful writes. It implements ports.TransactionStore.
type TransactionService struct {
	store     ports.TransactionStore
	publisher EventPublisher
	closers   []func() error
}

// NewTransactionService wires a store and an optional publisher. A nil
// publisher disables notifications. closers run, in order, on Close.
func NewTransactionService(store ports.TransactionStore, publisher EventPublisher, closers ...func() error) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
		closers:   closers,
	}
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	created, err := s.store.Create(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.announce(ctx, amqp.ActionCreated, created.ID)
	return created, nil
}

func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.List(ctx)
}

func (s *TransactionService) Summary(ctx context.Context) (core.Summary, error) {
	return s.store.Summary(ctx)
}

func (s *TransactionService) Update(ctx context.Context, id int64, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	updated, err := s.store.Update(ctx, id, t)
	if err != nil {
		return core.Transaction{}, err
	}
	s.announce(ctx, amqp.ActionUpdated, id)
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, amqp.ActionDeleted, id)
	return nil
}

// Ping implements ports.Pinger when the store does.
func (s *TransactionService) Ping(ctx context.Context) error {
	if p, ok := s.store.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// announce publishes a change event. The write already succeeded, so a
// publish failure is logged and swallowed.
func (s *TransactionService) announce(ctx context.Context, action amqp.Action, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, amqp.NewTransactionEvent(action, id)); err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentAMQP).ErrorContext(ctx, "Failed to publish transaction event",
			"action", action,
			applog.FieldTransactionID, id,
			applog.FieldError, err)
	}
}

// Close releases the store and publisher resources handed to the constructor.
func (s *TransactionService) Close() error {
	var errs []error
	for _, c := range s.closers {
		if c == nil {
			continue
		}
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}
	return nil
}
