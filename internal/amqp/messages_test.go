package amqp

import (
	"strings"
	"testing"
	"time"
)

func TestTransactionEventJSON(t *testing.T) {
	ev := NewTransactionEvent(ActionUpdated, 7)
	if ev.Timestamp.IsZero() || ev.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", ev.Timestamp)
	}

	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"action":"updated"`, `"id":7`, `"timestamp":`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s in %s", want, data)
		}
	}

	back, err := TransactionEventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Action != ActionUpdated || back.ID != 7 || !back.Timestamp.Equal(ev.Timestamp) {
		t.Fatalf("unexpected decoded event: %+v", back)
	}
}

func TestTransactionEventFromJSONInvalid(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestCloseNilClient(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Fatalf("close on empty client: %v", err)
	}
}
