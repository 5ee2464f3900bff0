package kafka

import (
	"os"
	"strings"
	"testing"

	"github.com/vereinsapp/club-backend/internal/events"
)

// Requires a reachable broker; set KAFKA_TEST_BROKERS to run.
func TestPublishIntegration(t *testing.T) {
	raw := os.Getenv("KAFKA_TEST_BROKERS")
	if raw == "" {
		t.Skip("KAFKA_TEST_BROKERS not set, skipping integration test")
	}

	publisher := NewPublisher(strings.Split(raw, ","), events.TopicLedgerEntries)
	defer publisher.Close()

	err := publisher.Publish(events.TopicLedgerEntries, events.LedgerEntryRecorded{
		EntryID:     1,
		AmountCents: 500,
		EntryType:   "debit",
		Category:    "fine",
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
}

func TestPublishRejectsUnmarshalableEvent(t *testing.T) {
	publisher := NewPublisher([]string{"localhost:9092"}, events.TopicLedgerEntries)
	defer publisher.Close()

	if err := publisher.Publish(events.TopicLedgerEntries, func() {}); err == nil {
		t.Fatal("expected marshal error for non-serializable event")
	}
}
