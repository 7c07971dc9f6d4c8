package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire and storage format of a transaction date.
const DateLayout = "2006-01-02"

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// MaxCategoryLength is the longest category label accepted, in characters.
const MaxCategoryLength = 50

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Transaction struct {
		ID       int64
		Date     Date
		Category string          `validate:"required,max=50"`
		Amount   float64         `validate:"gte=0"`
		Type     TransactionType `validate:"required,oneof=income expense"`
	}
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidCategory     = errors.New("invalid category")
)

var validate = validator.New()

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC calendar day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string. Anything else is rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q must be YYYY-MM-DD", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	return nil
}

// ParseTransactionType accepts exactly "income" or "expense".
func ParseTransactionType(s string) (TransactionType, error) {
	switch tt := TransactionType(strings.TrimSpace(s)); tt {
	case Income, Expense:
		return tt, nil
	default:
		return "", fmt.Errorf("%w: %q must be %q or %q", ErrInvalidType, s, Income, Expense)
	}
}

func (tt TransactionType) String() string {
	return string(tt)
}

// Validate checks every field of the transaction. The ID is not checked since
// the store assigns it.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if math.IsInf(t.Amount, 0) || math.IsNaN(t.Amount) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidAmount)
	}
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Category":
		if fe.Tag() == "max" {
			return fmt.Errorf("%w: category longer than %d characters", ErrInvalidCategory, MaxCategoryLength)
		}
		return fmt.Errorf("%w: category is required", ErrInvalidCategory)
	case "Amount":
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	case "Type":
		return fmt.Errorf("%w: %q must be %q or %q", ErrInvalidType, string(t.Type), Income, Expense)
	default:
		return fmt.Errorf("invalid %s: failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
