package amqp

import (
	"encoding/json"
	"time"
)

// Action names the change a TransactionEvent reports.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// TransactionEvent is a lightweight change notification. It carries only the
// ID, consumers read the current row from the API if they need it.
type TransactionEvent struct {
	Action    Action    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionEvent(action Action, id int64) *TransactionEvent {
	return &TransactionEvent{
		Action:    action,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event produced by ToJSON.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
