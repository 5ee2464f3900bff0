package events

import (
	"time"

	"github.com/vereinsapp/club-backend/internal/models"
)

// Publisher pushes domain events to an external stream. Publishing happens
// after the owning transaction commits and is best effort only.
type Publisher interface {
	Publish(topic string, event any) error
}

const TopicLedgerEntries = "ledger_entries"

type LedgerEntryRecorded struct {
	EntryID     int       `json:"entry_id"`
	UserID      *int      `json:"user_id,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	EntryType   string    `json:"entry_type"`
	Category    string    `json:"category"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewLedgerEntryRecorded(entry *models.LedgerEntry) LedgerEntryRecorded {
	return LedgerEntryRecorded{
		EntryID:     entry.ID,
		UserID:      entry.UserID,
		AmountCents: entry.AmountCents,
		EntryType:   entry.EntryType,
		Category:    entry.Category,
		OccurredAt:  entry.CreatedAt,
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(topic string, event any) error { return nil }
