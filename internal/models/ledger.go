package models

import "time"

type LedgerEntry struct {
	ID          int       `json:"id"`
	UserID      *int      `json:"user_id,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	EntryType   string    `json:"entry_type"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type LedgerEntryType string

const (
	EntryTypeCredit LedgerEntryType = "credit"
	EntryTypeDebit  LedgerEntryType = "debit"
)

func ValidEntryType(entryType string) bool {
	switch LedgerEntryType(entryType) {
	case EntryTypeCredit, EntryTypeDebit:
		return true
	}
	return false
}

// Signed returns the entry's effect on a balance: credits add, debits subtract.
func (e *LedgerEntry) Signed() int64 {
	if e.EntryType == string(EntryTypeDebit) {
		return -e.AmountCents
	}
	return e.AmountCents
}

type CreateEntryRequest struct {
	UserID      *int    `json:"user_id,omitempty"`
	AmountCents int64   `json:"amount_cents"`
	EntryType   string  `json:"entry_type"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
}
