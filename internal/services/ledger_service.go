package services

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/vereinsapp/club-backend/internal/events"
	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

// LedgerService is the only writer of users.balance_cents. Every balance
// change is backed by exactly one ledger entry, written in the same
// transaction.
type LedgerService struct {
	db        *sql.DB
	logger    zerolog.Logger
	publisher events.Publisher
	mu        sync.Map
}

func NewLedgerService(db *sql.DB, logger zerolog.Logger, publisher events.Publisher) *LedgerService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &LedgerService{
		db:        db,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *LedgerService) getMutex(userID int) *sync.Mutex {
	mu, _ := s.mu.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Record persists a ledger entry and, for user-attributed entries, adjusts
// the user's balance in the same transaction. Both writes commit together or
// neither does.
func (s *LedgerService) Record(req *models.CreateEntryRequest) (*models.LedgerEntry, error) {
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidEntryType(req.EntryType) {
		return nil, ErrInvalidEntryType
	}

	if req.UserID != nil {
		mu := s.getMutex(*req.UserID)
		mu.Lock()
		defer mu.Unlock()
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting ledger transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	entryID, err := s.recordInTx(tx, req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing ledger entry")
		return nil, fmt.Errorf("failed to commit ledger entry: %w", err)
	}

	entry, err := s.GetEntryByID(int(entryID))
	if err != nil {
		return nil, err
	}

	s.publishEntry(entry)

	s.logger.Info().
		Int("entry_id", entry.ID).
		Str("entry_type", entry.EntryType).
		Str("category", entry.Category).
		Int64("amount_cents", entry.AmountCents).
		Msg("Ledger entry recorded")

	return entry, nil
}

// recordInTx writes the entry and the balance update inside the caller's
// transaction. The user row is locked before anything is written, so the
// existence check cannot race against the balance read.
func (s *LedgerService) recordInTx(tx *sql.Tx, req *models.CreateEntryRequest) (int64, error) {
	var newBalance *int64

	if req.UserID != nil {
		var balance int64
		err := tx.QueryRow(
			"SELECT balance_cents FROM users WHERE id = ? FOR UPDATE",
			*req.UserID,
		).Scan(&balance)
		if err == sql.ErrNoRows {
			return 0, ErrUserNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("failed to lock user row: %w", err)
		}

		updated := balance
		if req.EntryType == string(models.EntryTypeDebit) {
			updated -= req.AmountCents
		} else {
			updated += req.AmountCents
		}
		newBalance = &updated
	}

	result, err := tx.Exec(
		"INSERT INTO ledger_entries (user_id, amount_cents, entry_type, category, description) VALUES (?, ?, ?, ?, ?)",
		req.UserID, req.AmountCents, req.EntryType, req.Category, req.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	entryID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get entry ID: %w", err)
	}

	if newBalance != nil {
		_, err = tx.Exec(
			"UPDATE users SET balance_cents = ? WHERE id = ?",
			*newBalance, *req.UserID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update balance: %w", err)
		}
	}

	return entryID, nil
}

func (s *LedgerService) publishEntry(entry *models.LedgerEntry) {
	if err := s.publisher.Publish(events.TopicLedgerEntries, events.NewLedgerEntryRecorded(entry)); err != nil {
		s.logger.Warn().Err(err).Int("entry_id", entry.ID).Msg("Failed to publish ledger event (non-critical)")
	}
}

func (s *LedgerService) BalanceOf(userID int) (*models.Balance, error) {
	var balance models.Balance

	err := s.db.QueryRow(
		"SELECT id, balance_cents FROM users WHERE id = ?",
		userID,
	).Scan(&balance.UserID, &balance.BalanceCents)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error fetching balance")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &balance, nil
}

func (s *LedgerService) ListEntries() ([]*models.LedgerEntry, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, amount_cents, entry_type, category, description, created_at FROM ledger_entries ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching ledger entries")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *LedgerService) GetEntryByID(entryID int) (*models.LedgerEntry, error) {
	row := s.db.QueryRow(
		"SELECT id, user_id, amount_cents, entry_type, category, description, created_at FROM ledger_entries WHERE id = ?",
		entryID,
	)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("entry_id", entryID).Msg("Error fetching ledger entry")
		return nil, err
	}

	return entry, nil
}

// SumEntries returns the signed sum of a user's entries. At any quiescent
// point it must equal the cached balance_cents column.
func (s *LedgerService) SumEntries(userID int) (int64, error) {
	var total int64

	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(CASE WHEN entry_type = 'credit' THEN amount_cents ELSE -amount_cents END), 0) FROM ledger_entries WHERE user_id = ?",
		userID,
	).Scan(&total)

	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error summing ledger entries")
		return 0, fmt.Errorf("database error: %w", err)
	}

	return total, nil
}

// Reconcile compares the cached balance against the entry sum and logs any
// drift. It never mutates.
func (s *LedgerService) Reconcile(userID int) error {
	balance, err := s.BalanceOf(userID)
	if err != nil {
		return err
	}

	total, err := s.SumEntries(userID)
	if err != nil {
		return err
	}

	if balance.BalanceCents != total {
		s.logger.Warn().
			Int("user_id", userID).
			Int64("cached_balance", balance.BalanceCents).
			Int64("entry_sum", total).
			Msg("Balance discrepancy detected")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	var userID sql.NullInt64
	var description sql.NullString

	err := row.Scan(
		&entry.ID, &userID, &entry.AmountCents, &entry.EntryType,
		&entry.Category, &description, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		val := int(userID.Int64)
		entry.UserID = &val
	}
	if description.Valid {
		entry.Description = &description.String
	}

	return &entry, nil
}
