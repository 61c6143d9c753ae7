package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
)

// Envelope é o formato das mensagens publicadas
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// NewEnvelope serializa o payload do evento num envelope com ID novo
func NewEnvelope(producer string, ev usecase.Event) (Envelope, error) {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode payload %s: %w", ev.Type, err)
	}
	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    ev.Type,
		EventVersion: 1,
		OccurredAt:   occurred.UTC(),
		Producer:     producer,
		Payload:      payload,
	}, nil
}
