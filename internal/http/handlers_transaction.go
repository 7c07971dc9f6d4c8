package http

import (
	"net/http"
	"sync/atomic"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

type transactionJSON struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
}

type summaryJSON struct {
	Income           float64            `json:"income"`
	Expenses         float64            `json:"expenses"`
	Balance          float64            `json:"balance"`
	CategoryExpenses map[string]float64 `json:"category_expenses"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:       t.ID,
		Date:     t.Date.String(),
		Category: t.Category,
		Amount:   t.Amount,
		Type:     t.Type.String(),
	}
}

func (s *Server) recordWrite(r *http.Request, op string, t core.Transaction) {
	atomic.AddInt64(&s.appMetrics.transactionsWritten, 1)
	applog.NewStructuredLogger(applog.FromContext(r.Context())).LogTransactionWritten(r.Context(),
		op, t.ID, t.Date.String(), t.Category, t.Amount, t.Type.String())
}

// handleAddTransaction reads a form-encoded transaction and redirects home.
func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, applog.OpCreate, errMalformedRequest)
		return
	}

	t, err := parseTransaction(func(key string) string { return sanitizeInput(r.PostForm.Get(key)) })
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}

	created, err := s.store.Create(r.Context(), t)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	s.recordWrite(r, applog.OpCreate, created)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}

	out := make([]transactionJSON, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionJSON(t))
	}
	NewJSONResponse().Payload(out).Write(w)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpSummarize, err)
		return
	}

	categories := sum.CategoryExpenses
	if categories == nil {
		categories = map[string]float64{}
	}
	NewJSONResponse().Payload(summaryJSON{
		Income:           sum.Income,
		Expenses:         sum.Expenses,
		Balance:          sum.Balance,
		CategoryExpenses: categories,
	}).Write(w)
}

// handleUpdateTransaction replaces every field of an existing transaction.
// The amount may arrive as a JSON number or a numeric string.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}

	parser := NewRequestBodyParser(w, r)
	if err := parser.Parse(); err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}

	t, err := parseTransaction(parser.Get)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}

	updated, err := s.store.Update(r.Context(), id, t)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	s.recordWrite(r, applog.OpUpdate, updated)

	MessageJSON("Transaction updated successfully!").Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	atomic.AddInt64(&s.appMetrics.transactionsWritten, 1)
	applog.FromContext(r.Context()).WithComponent(applog.ComponentTransaction).InfoContext(r.Context(),
		"Transaction delete succeeded", applog.FieldTransactionID, id, applog.FieldOperation, applog.OpDelete)

	MessageJSON("Transaction deleted successfully!").Write(w)
}
