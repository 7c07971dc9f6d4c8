package core

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one row of the type/category grouped sum.
type CategoryTotal struct {
	Type     TransactionType
	Category string
	Amount   float64
}

// Summary is the derived read-only view over all transactions.
type Summary struct {
	Income           float64
	Expenses         float64
	Balance          float64
	CategoryExpenses map[string]float64
}

// BuildSummary folds grouped totals into a Summary.
//
// Each category and the income are summed in decimal and then rounded once to
// float64. Expenses is the float64 sum of the category values taken in sorted
// name order, and Balance is Income minus Expenses in float64, so both hold
// exactly for a client doing the arithmetic on the JSON numbers. Rows of
// unknown type or with a non-finite amount are ignored.
func BuildSummary(rows []CategoryTotal) Summary {
	income := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, r := range rows {
		if math.IsInf(r.Amount, 0) || math.IsNaN(r.Amount) {
			continue
		}
		amount := decimal.NewFromFloat(r.Amount)
		switch r.Type {
		case Income:
			income = income.Add(amount)
		case Expense:
			byCategory[r.Category] = byCategory[r.Category].Add(amount)
		}
	}

	categories := make(map[string]float64, len(byCategory))
	for name, amount := range byCategory {
		categories[name] = amount.InexactFloat64()
	}

	s := Summary{
		Income:           income.InexactFloat64(),
		Expenses:         SumCategories(categories),
		CategoryExpenses: categories,
	}
	s.Balance = s.Income - s.Expenses
	return s
}

// SumCategories adds the values in ascending key order.
func SumCategories(categories map[string]float64) float64 {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var total float64
	for _, name := range names {
		total += categories[name]
	}
	return total
}
