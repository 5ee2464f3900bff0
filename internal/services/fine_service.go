package services

import (
	"database/sql"
	"fmt"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

type FineService struct {
	db     *sql.DB
	logger zerolog.Logger
	ledger *LedgerService
}

func NewFineService(db *sql.DB, logger zerolog.Logger, ledger *LedgerService) *FineService {
	return &FineService{
		db:     db,
		logger: logger,
		ledger: ledger,
	}
}

func (s *FineService) List() ([]*models.Fine, error) {
	rows, err := s.db.Query("SELECT id, title, amount_cents, description FROM fines")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching fines")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var fines []*models.Fine
	for rows.Next() {
		var fine models.Fine
		var description sql.NullString
		if err := rows.Scan(&fine.ID, &fine.Title, &fine.AmountCents, &description); err != nil {
			return nil, fmt.Errorf("error scanning fine: %w", err)
		}
		if description.Valid {
			fine.Description = &description.String
		}
		fines = append(fines, &fine)
	}

	return fines, rows.Err()
}

func (s *FineService) Create(req *models.CreateFineRequest) (*models.Fine, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	result, err := s.db.Exec(
		"INSERT INTO fines (title, amount_cents, description) VALUES (?, ?, ?)",
		req.Title, req.AmountCents, req.Description,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating fine")
		return nil, fmt.Errorf("failed to create fine: %w", err)
	}

	fineID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get fine ID: %w", err)
	}

	return s.GetFineByID(int(fineID))
}

func (s *FineService) GetFineByID(fineID int) (*models.Fine, error) {
	var fine models.Fine
	var description sql.NullString

	err := s.db.QueryRow(
		"SELECT id, title, amount_cents, description FROM fines WHERE id = ?",
		fineID,
	).Scan(&fine.ID, &fine.Title, &fine.AmountCents, &description)

	if err == sql.ErrNoRows {
		return nil, ErrFineNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("fine_id", fineID).Msg("Error fetching fine")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if description.Valid {
		fine.Description = &description.String
	}

	return &fine, nil
}

// Assign instantiates a fine against a user. The assignment row, the ledger
// debit, and the balance decrement are a single transaction; a failure in any
// step leaves no trace of the others.
func (s *FineService) Assign(req *models.AssignFineRequest, actorID int) (*models.AssignedFine, error) {
	mu := s.ledger.getMutex(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting fine assignment transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Existence checks before any write, on the locked user row.
	var userID int
	err = tx.QueryRow("SELECT id FROM users WHERE id = ? FOR UPDATE", req.UserID).Scan(&userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	var fine models.Fine
	err = tx.QueryRow("SELECT id, title, amount_cents FROM fines WHERE id = ?", req.FineID).
		Scan(&fine.ID, &fine.Title, &fine.AmountCents)
	if err == sql.ErrNoRows {
		return nil, ErrFineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check fine: %w", err)
	}

	result, err := tx.Exec(
		"INSERT INTO assigned_fines (fine_id, user_id, event_id, assigned_by) VALUES (?, ?, ?, ?)",
		req.FineID, req.UserID, req.EventID, actorID,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating fine assignment")
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	assignmentID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment ID: %w", err)
	}

	description := "Fine: " + fine.Title
	entryID, err := s.ledger.recordInTx(tx, &models.CreateEntryRequest{
		UserID:      &req.UserID,
		AmountCents: fine.AmountCents,
		EntryType:   string(models.EntryTypeDebit),
		Category:    "fine",
		Description: &description,
	})
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", req.UserID).Msg("Error recording fine debit")
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing fine assignment")
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}

	if entry, err := s.ledger.GetEntryByID(int(entryID)); err == nil {
		s.ledger.publishEntry(entry)
	} else {
		s.logger.Warn().Err(err).Msg("Failed to load entry for publishing (non-critical)")
	}

	assignment, err := s.GetAssignmentByID(int(assignmentID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("assignment_id", assignment.ID).
		Int("fine_id", req.FineID).
		Int("user_id", req.UserID).
		Int64("amount_cents", fine.AmountCents).
		Msg("Fine assigned")

	return assignment, nil
}

func (s *FineService) GetAssignmentByID(assignmentID int) (*models.AssignedFine, error) {
	var assignment models.AssignedFine
	var eventID, assignedBy sql.NullInt64

	err := s.db.QueryRow(
		"SELECT id, fine_id, user_id, event_id, assigned_by, assigned_at FROM assigned_fines WHERE id = ?",
		assignmentID,
	).Scan(
		&assignment.ID, &assignment.FineID, &assignment.UserID,
		&eventID, &assignedBy, &assignment.AssignedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("assignment_id", assignmentID).Msg("Error fetching assignment")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if eventID.Valid {
		val := int(eventID.Int64)
		assignment.EventID = &val
	}
	if assignedBy.Valid {
		val := int(assignedBy.Int64)
		assignment.AssignedBy = &val
	}

	return &assignment, nil
}
