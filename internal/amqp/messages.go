package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventCreated = "created"
	EventDeleted = "deleted"
)

// TransactionEvent is the lightweight message published after a
// transaction insert or delete. The worker fetches the full row from the
// database; the event carries only identity.
type TransactionEvent struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionEvent(kind string, id int64, userID string) *TransactionEvent {
	return &TransactionEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
