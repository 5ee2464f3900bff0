package events

import (
	"testing"
	"time"

	"github.com/vereinsapp/club-backend/internal/models"
)

func TestNewLedgerEntryRecorded(t *testing.T) {
	userID := 3
	now := time.Now()
	entry := &models.LedgerEntry{
		ID:          21,
		UserID:      &userID,
		AmountCents: 500,
		EntryType:   "debit",
		Category:    "fine",
		CreatedAt:   now,
	}

	event := NewLedgerEntryRecorded(entry)
	if event.EntryID != 21 || event.AmountCents != 500 || event.EntryType != "debit" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.UserID == nil || *event.UserID != userID {
		t.Errorf("user ID not carried: %+v", event.UserID)
	}
	if !event.OccurredAt.Equal(now) {
		t.Errorf("occurred_at: got %v, want %v", event.OccurredAt, now)
	}
}

func TestNoopPublisher(t *testing.T) {
	if err := (NoopPublisher{}).Publish(TopicLedgerEntries, "anything"); err != nil {
		t.Fatalf("noop publish returned error: %v", err)
	}
}
