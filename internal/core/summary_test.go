package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildSummaryExample(t *testing.T) {
	s := BuildSummary([]CategoryTotal{
		{Type: Expense, Category: "Groceries", Amount: 40},
		{Type: Income, Category: "Salary", Amount: 2000},
	})
	if s.Income != 2000 || s.Expenses != 40 || s.Balance != 1960 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if len(s.CategoryExpenses) != 1 || s.CategoryExpenses["Groceries"] != 40 {
		t.Fatalf("unexpected categories: %v", s.CategoryExpenses)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil)
	if s.Income != 0 || s.Expenses != 0 || s.Balance != 0 {
		t.Fatalf("expected zero totals, got %+v", s)
	}
	if s.CategoryExpenses == nil || len(s.CategoryExpenses) != 0 {
		t.Fatalf("expected empty non-nil categories, got %v", s.CategoryExpenses)
	}
}

func checkSummaryInvariants(t *testing.T, s Summary) {
	t.Helper()
	if got := SumCategories(s.CategoryExpenses); got != s.Expenses {
		t.Fatalf("category sum %v != expenses %v", got, s.Expenses)
	}
	if got := s.Income - s.Expenses; got != s.Balance {
		t.Fatalf("income - expenses = %v, balance %v", got, s.Balance)
	}
}

func TestBuildSummaryInvariants(t *testing.T) {
	tests := []struct {
		name string
		rows []CategoryTotal
	}{
		{
			name: "fractional amounts",
			rows: []CategoryTotal{
				{Type: Expense, Category: "A", Amount: 0.1},
				{Type: Expense, Category: "B", Amount: 0.2},
				{Type: Income, Category: "Salary", Amount: 0.3},
				{Type: Income, Category: "Gift", Amount: 0.1},
			},
		},
		{
			name: "repeated category and unknown type",
			rows: []CategoryTotal{
				{Type: Expense, Category: "Food", Amount: 0.1},
				{Type: Expense, Category: "Rent", Amount: 0.2},
				{Type: Expense, Category: "Food", Amount: 0.7},
				{Type: Income, Category: "Salary", Amount: 1.1},
				{Type: "refund", Category: "Ignored", Amount: 99},
			},
		},
		{
			name: "non finite rows skipped",
			rows: []CategoryTotal{
				{Type: Expense, Category: "A", Amount: 0.3},
				{Type: Expense, Category: "B", Amount: math.Inf(1)},
				{Type: Income, Category: "Salary", Amount: math.NaN()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BuildSummary(tt.rows)
			checkSummaryInvariants(t, s)
			if _, ok := s.CategoryExpenses["Ignored"]; ok {
				t.Fatal("unknown type leaked into categories")
			}
		})
	}
}

func TestBuildSummaryGroupsInDecimal(t *testing.T) {
	s := BuildSummary([]CategoryTotal{
		{Type: Expense, Category: "Food", Amount: 0.1},
		{Type: Expense, Category: "Food", Amount: 0.2},
	})
	if s.CategoryExpenses["Food"] != 0.3 {
		t.Fatalf("expected Food 0.3, got %v", s.CategoryExpenses["Food"])
	}
}

func TestBuildSummaryRandomAmounts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	categories := []string{"Food", "Rent", "Travel", "Fun", "Misc"}

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(20)
		rows := make([]CategoryTotal, 0, n)
		for i := 0; i < n; i++ {
			tt := Expense
			if rng.Intn(3) == 0 {
				tt = Income
			}
			cents := rng.Int63n(1_000_000)
			rows = append(rows, CategoryTotal{
				Type:     tt,
				Category: categories[rng.Intn(len(categories))],
				Amount:   decimal.New(cents, -2).InexactFloat64(),
			})
		}
		checkSummaryInvariants(t, BuildSummary(rows))
	}
}
