package memory

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/core"
)

// Store keeps transactions in process memory. IDs come from a counter that
// never goes backwards, so a deleted ID is never handed out again.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]core.Transaction
}

func New() *Store {
	return &Store{nextID: 1, items: make(map[int64]core.Transaction)}
}

// Create stores the transaction under a fresh ID.
func (s *Store) Create(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items[t.ID] = t
	return t, nil
}

// List returns a copy of every transaction, newest date first and, within a
// day, newest ID first.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	out := make([]core.Transaction, 0, len(s.items))
	for _, t := range s.items {
		out = append(out, t)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Summary(_ context.Context) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct {
		tt       core.TransactionType
		category string
	}
	grouped := make(map[key]float64)
	for _, t := range s.items {
		grouped[key{t.Type, t.Category}] += t.Amount
	}

	rows := make([]core.CategoryTotal, 0, len(grouped))
	for k, amount := range grouped {
		rows = append(rows, core.CategoryTotal{Type: k.tt, Category: k.category, Amount: amount})
	}
	return core.BuildSummary(rows), nil
}

func (s *Store) Update(_ context.Context, id int64, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return core.Transaction{}, core.ErrTransactionNotFound
	}
	t.ID = id
	s.items[id] = t
	return t, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return core.ErrTransactionNotFound
	}
	delete(s.items, id)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}
