package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"fintrack/internal/core"
)

func TestRequestBodyParser(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     bool
		want        map[string]string
	}{
		{
			name:        "json with numeric amount",
			body:        `{"date":"2024-01-05","category":" Rent ","amount":1200.5,"type":"expense"}`,
			contentType: "application/json",
			want:        map[string]string{"date": "2024-01-05", "category": "Rent", "amount": "1200.5", "type": "expense"},
		},
		{
			name:        "json with string amount",
			body:        `{"amount":"40"}`,
			contentType: "application/json",
			want:        map[string]string{"amount": "40", "date": ""},
		},
		{
			name:        "json null and nested values render empty",
			body:        `{"amount":null,"category":{"x":1}}`,
			contentType: "application/json",
			want:        map[string]string{"amount": "", "category": ""},
		},
		{
			name:        "form encoded",
			body:        "date=2024-01-06&category=Salary&amount=2000&type=income",
			contentType: "application/x-www-form-urlencoded",
			want:        map[string]string{"category": "Salary", "amount": "2000"},
		},
		{
			name:        "control characters stripped",
			body:        "category=Food%00%01",
			contentType: "application/x-www-form-urlencoded",
			want:        map[string]string{"category": "Food"},
		},
		{
			name:        "malformed json",
			body:        `{"date":`,
			contentType: "application/json",
			wantErr:     true,
		},
		{
			name:        "json array",
			body:        `[1,2]`,
			contentType: "application/json",
			wantErr:     true,
		},
		{
			name:        "json null body",
			body:        `null`,
			contentType: "application/json",
			wantErr:     true,
		},
		{
			name: "empty body",
			body: "",
			want: map[string]string{"date": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			p := NewRequestBodyParser(httptest.NewRecorder(), req)
			err := p.Parse()
			if tt.wantErr {
				if !errors.Is(err, errMalformedRequest) {
					t.Fatalf("expected malformed request error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			for key, want := range tt.want {
				if got := p.Get(key); got != want {
					t.Errorf("Get(%q) = %q, want %q", key, got, want)
				}
			}
		})
	}
}

func TestParseIsCached(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{bad`))
	p := NewRequestBodyParser(httptest.NewRecorder(), req)
	first := p.Parse()
	if first == nil || p.Parse() != first {
		t.Fatal("expected the same error on repeated Parse")
	}
}

func TestParseTransaction(t *testing.T) {
	valid := map[string]string{"date": "2024-01-05", "category": "Groceries", "amount": "40.0", "type": "expense"}

	tests := []struct {
		name    string
		change  map[string]string
		wantErr error
	}{
		{name: "valid"},
		{name: "bad date", change: map[string]string{"date": "05/01/2024"}, wantErr: core.ErrInvalidDate},
		{name: "missing date", change: map[string]string{"date": ""}, wantErr: core.ErrInvalidDate},
		{name: "non numeric amount", change: map[string]string{"amount": "forty"}, wantErr: core.ErrInvalidAmount},
		{name: "negative amount", change: map[string]string{"amount": "-1"}, wantErr: core.ErrInvalidAmount},
		{name: "unknown type", change: map[string]string{"type": "refund"}, wantErr: core.ErrInvalidType},
		{name: "empty category", change: map[string]string{"category": ""}, wantErr: core.ErrInvalidCategory},
		{name: "long category", change: map[string]string{"category": strings.Repeat("x", 51)}, wantErr: core.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := make(map[string]string, len(valid))
			for k, v := range valid {
				fields[k] = v
			}
			for k, v := range tt.change {
				fields[k] = v
			}

			got, err := parseTransaction(func(key string) string { return fields[key] })
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if statusForError(err) != http.StatusBadRequest {
					t.Fatalf("status = %d, want 400", statusForError(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Date.String() != "2024-01-05" || got.Category != "Groceries" || got.Amount != 40 || got.Type != core.Expense {
				t.Fatalf("unexpected transaction %+v", got)
			}
		})
	}
}

func TestParsePathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": "42"})
	if id, err := parsePathID(req); err != nil || id != 42 {
		t.Fatalf("parsePathID = %d, %v", id, err)
	}

	req = mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": "99999999999999999999"})
	if _, err := parsePathID(req); !errors.Is(err, core.ErrTransactionNotFound) {
		t.Fatalf("expected not found for overflowing id, got %v", err)
	}
}

func TestStatusForError(t *testing.T) {
	if statusForError(errors.New("disk I/O error")) != http.StatusInternalServerError {
		t.Fatal("unknown errors should map to 500")
	}
	if statusForError(core.ErrTransactionNotFound) != http.StatusNotFound {
		t.Fatal("not found should map to 404")
	}
}
