package notify

import (
	"encoding/json"
	"time"

	"github.com/spendlog/server/internal/domain/records"
)

// RecordCreatedMessage is the payload emitted after a spending record is
// stored. Consumers fetch nothing further; the message carries the full row.
type RecordCreatedMessage struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CategoryID int64     `json:"category_id"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	EmittedAt  time.Time `json:"emitted_at"`
}

func NewRecordCreatedMessage(record *records.Record) *RecordCreatedMessage {
	return &RecordCreatedMessage{
		ID:         record.ID,
		UserID:     record.UserID,
		CategoryID: record.CategoryID,
		Amount:     record.Amount,
		CreatedAt:  record.CreatedAt,
		EmittedAt:  time.Now(),
	}
}

func (m *RecordCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordCreatedMessageFromJSON(data []byte) (*RecordCreatedMessage, error) {
	var msg RecordCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
