package notify

import (
	"testing"
	"time"

	"github.com/spendlog/server/internal/domain/records"
)

func TestNewRecordCreatedMessage(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	record := &records.Record{ID: 12, UserID: 3, CategoryID: 4, Amount: 9.99, CreatedAt: created}

	msg := NewRecordCreatedMessage(record)

	if msg.ID != 12 || msg.UserID != 3 || msg.CategoryID != 4 {
		t.Errorf("message ids = %d/%d/%d, want 12/3/4", msg.ID, msg.UserID, msg.CategoryID)
	}
	if msg.Amount != 9.99 {
		t.Errorf("message amount = %v, want 9.99", msg.Amount)
	}
	if !msg.CreatedAt.Equal(created) {
		t.Errorf("message created_at = %v, want %v", msg.CreatedAt, created)
	}
	if msg.EmittedAt.IsZero() {
		t.Error("EmittedAt should be set")
	}
	if time.Since(msg.EmittedAt) > time.Second {
		t.Error("EmittedAt should be recent")
	}
}

func TestRecordCreatedMessage_JSON(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	record := &records.Record{ID: 12, UserID: 3, CategoryID: 4, Amount: 9.99, CreatedAt: created}

	jsonBytes, err := NewRecordCreatedMessage(record).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := RecordCreatedMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("RecordCreatedMessageFromJSON() error = %v", err)
	}

	if parsed.ID != 12 || parsed.UserID != 3 || parsed.CategoryID != 4 {
		t.Errorf("parsed ids = %d/%d/%d, want 12/3/4", parsed.ID, parsed.UserID, parsed.CategoryID)
	}
	if !parsed.CreatedAt.Equal(created) {
		t.Errorf("parsed created_at = %v, want %v", parsed.CreatedAt, created)
	}
}

func TestRecordCreatedMessage_InvalidJSON(t *testing.T) {
	if _, err := RecordCreatedMessageFromJSON([]byte(`{"id":"nope"}`)); err == nil {
		t.Error("RecordCreatedMessageFromJSON() should fail with invalid JSON")
	}
}
