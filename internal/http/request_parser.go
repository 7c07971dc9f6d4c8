package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"fintrack/internal/core"
)

// RequestBodyParser reads a request body once and exposes its fields whether
// it was sent as JSON or form-encoded.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads at most maxBodyBytes of the request body.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if p.err != nil {
		p.err = fmt.Errorf("%w: read body: %v", errMalformedRequest, p.err)
	}
	return p
}

// Parse decodes the body as a JSON object when it looks like one, and as
// form values otherwise.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := bytes.TrimSpace(p.body)
	if len(trimmed) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if trimmed[0] == '{' || trimmed[0] == '[' || strings.HasPrefix(p.contentType, "application/json") {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&p.jsonData); err != nil {
			p.jsonData = nil
			p.err = fmt.Errorf("%w: body is not a JSON object: %v", errMalformedRequest, err)
			return p.err
		}
		if p.jsonData == nil {
			p.err = fmt.Errorf("%w: body is not a JSON object", errMalformedRequest)
		}
		return p.err
	}

	form, err := url.ParseQuery(string(trimmed))
	if err != nil {
		p.err = fmt.Errorf("%w: %v", errMalformedRequest, err)
		return p.err
	}
	p.formData = form
	return nil
}

// Get returns a sanitized string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// stringValue renders a decoded JSON scalar as text. Objects, arrays and
// null render empty.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseTransaction builds a validated transaction from the date, category,
// amount and type fields returned by get.
func parseTransaction(get func(string) string) (core.Transaction, error) {
	date, err := core.ParseDate(get("date"))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(get("amount"))
	if err != nil {
		return core.Transaction{}, err
	}
	txType, err := core.ParseTransactionType(get("type"))
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Date:     date,
		Category: get("category"),
		Amount:   amount,
		Type:     txType,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// parsePathID reads the {id} route variable. The route only matches digits,
// so the one failure left is overflow, which can name no stored row.
func parsePathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %s", core.ErrTransactionNotFound, raw)
	}
	return id, nil
}
