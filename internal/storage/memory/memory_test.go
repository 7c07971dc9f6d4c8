package memory

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestMemoryStoreCreateAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 5), Category: "Groceries", Amount: 40, Type: core.Expense})
	if err != nil || a.ID != 1 {
		t.Fatalf("unexpected create: %+v err=%v", a, err)
	}
	b, _ := s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 6), Category: "Salary", Amount: 2000, Type: core.Income})
	c, _ := s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 5), Category: "Coffee", Amount: 3, Type: core.Expense})

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{b.ID, c.ID, a.ID}
	if len(list) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, list[i].ID)
		}
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Create(context.Background(), core.Transaction{Date: core.NewDate(2024, 1, 5), Category: "x", Amount: 1, Type: "refund"})
	if !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestMemoryStoreUpdateDeleteAndIDs(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 5), Category: "Groceries", Amount: 40, Type: core.Expense})

	if _, err := s.Update(ctx, 99, a); !errors.Is(err, core.ErrTransactionNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if err := s.Delete(ctx, 99); !errors.Is(err, core.ErrTransactionNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}

	u, err := s.Update(ctx, a.ID, core.Transaction{Date: core.NewDate(2024, 3, 1), Category: "Gift", Amount: 10, Type: core.Income})
	if err != nil || u.ID != a.ID || u.Category != "Gift" {
		t.Fatalf("unexpected update: %+v err=%v", u, err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	b, _ := s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 5), Category: "Groceries", Amount: 1, Type: core.Expense})
	if b.ID == a.ID {
		t.Fatalf("id %d reused after delete", b.ID)
	}
}

func TestMemoryStoreSummary(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 5), Category: "Groceries", Amount: 40, Type: core.Expense})
	s.Create(ctx, core.Transaction{Date: core.NewDate(2024, 1, 6), Category: "Salary", Amount: 2000, Type: core.Income})

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Income != 2000 || sum.Expenses != 40 || sum.Balance != 1960 || sum.CategoryExpenses["Groceries"] != 40 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
