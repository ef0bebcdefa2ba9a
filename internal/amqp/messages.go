package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"finance/internal/core"

	"github.com/google/uuid"
)

// RecordEventMessage is the wire form of a core.RecordEvent. Consumers load
// whatever else they need from the store.
type RecordEventMessage struct {
	MessageID   string `json:"message_id"`
	Kind        string `json:"kind"`
	Action      string `json:"action"`
	RecordID    int64  `json:"record_id"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	Date        string `json:"date,omitempty"`
	// PreviousDate is the record's date before an update or deletion.
	PreviousDate string    `json:"previous_date,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewRecordEventMessage creates a message with a fresh id and timestamp.
func NewRecordEventMessage(ev core.RecordEvent) *RecordEventMessage {
	return &RecordEventMessage{
		MessageID:    uuid.NewString(),
		Kind:         string(ev.Kind),
		Action:       string(ev.Action),
		RecordID:     ev.RecordID,
		AmountCents:  ev.Amount.Cents,
		Date:         ev.Date.String(),
		PreviousDate: ev.PreviousDate.String(),
		OccurredAt:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON decodes and checks a message body.
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch core.Kind(msg.Kind) {
	case core.KindIncome, core.KindExpense:
	default:
		return nil, fmt.Errorf("unknown record kind %q", msg.Kind)
	}
	return &msg, nil
}

// Event converts the message back to a core.RecordEvent.
func (m *RecordEventMessage) Event() (core.RecordEvent, error) {
	ev := core.RecordEvent{
		Kind:     core.Kind(m.Kind),
		Action:   core.Action(m.Action),
		RecordID: m.RecordID,
		Amount:   core.Money{Cents: m.AmountCents},
	}
	if m.Date != "" {
		d, err := core.ParseDate(m.Date)
		if err != nil {
			return core.RecordEvent{}, err
		}
		ev.Date = d
	}
	if m.PreviousDate != "" {
		d, err := core.ParseDate(m.PreviousDate)
		if err != nil {
			return core.RecordEvent{}, err
		}
		ev.PreviousDate = d
	}
	return ev, nil
}
