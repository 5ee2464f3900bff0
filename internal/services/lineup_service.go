package services

import (
	"database/sql"
	"fmt"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

type LineupService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLineupService(db *sql.DB, logger zerolog.Logger) *LineupService {
	return &LineupService{
		db:     db,
		logger: logger,
	}
}

func (s *LineupService) Create(req *models.CreateLineupRequest, actorID int) (*models.Lineup, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	var eventID int
	err := s.db.QueryRow("SELECT id FROM events WHERE id = ?", req.EventID).Scan(&eventID)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO lineups (event_id, name, formation, created_by) VALUES (?, ?, ?, ?)",
		req.EventID, req.Name, req.Formation, actorID,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating lineup")
		return nil, fmt.Errorf("failed to create lineup: %w", err)
	}

	lineupID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get lineup ID: %w", err)
	}

	return s.getLineupByID(int(lineupID))
}

func (s *LineupService) AddSlot(lineupID int, req *models.AddSlotRequest) (*models.LineupSlot, error) {
	if _, err := s.getLineupByID(lineupID); err != nil {
		return nil, err
	}

	var userID int
	err := s.db.QueryRow("SELECT id FROM users WHERE id = ?", req.UserID).Scan(&userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO lineup_slots (lineup_id, user_id, position_label) VALUES (?, ?, ?)",
		lineupID, req.UserID, req.PositionLabel,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error adding lineup slot")
		return nil, fmt.Errorf("failed to add slot: %w", err)
	}

	slotID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get slot ID: %w", err)
	}

	var slot models.LineupSlot
	var positionLabel sql.NullString
	err = s.db.QueryRow(
		"SELECT id, lineup_id, user_id, position_label FROM lineup_slots WHERE id = ?",
		slotID,
	).Scan(&slot.ID, &slot.LineupID, &slot.UserID, &positionLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if positionLabel.Valid {
		slot.PositionLabel = &positionLabel.String
	}

	return &slot, nil
}

func (s *LineupService) Get(lineupID int) (*models.LineupDetail, error) {
	lineup, err := s.getLineupByID(lineupID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT id, lineup_id, user_id, position_label FROM lineup_slots WHERE lineup_id = ?",
		lineupID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("lineup_id", lineupID).Msg("Error fetching slots")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	slots := []models.LineupSlot{}
	for rows.Next() {
		var slot models.LineupSlot
		var positionLabel sql.NullString
		if err := rows.Scan(&slot.ID, &slot.LineupID, &slot.UserID, &positionLabel); err != nil {
			return nil, fmt.Errorf("error scanning slot: %w", err)
		}
		if positionLabel.Valid {
			slot.PositionLabel = &positionLabel.String
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.LineupDetail{Lineup: lineup, Slots: slots}, nil
}

func (s *LineupService) getLineupByID(lineupID int) (*models.Lineup, error) {
	var lineup models.Lineup
	var formation sql.NullString
	var createdBy sql.NullInt64

	err := s.db.QueryRow(
		"SELECT id, event_id, name, formation, created_by FROM lineups WHERE id = ?",
		lineupID,
	).Scan(&lineup.ID, &lineup.EventID, &lineup.Name, &formation, &createdBy)

	if err == sql.ErrNoRows {
		return nil, ErrLineupNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("lineup_id", lineupID).Msg("Error fetching lineup")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if formation.Valid {
		lineup.Formation = &formation.String
	}
	if createdBy.Valid {
		val := int(createdBy.Int64)
		lineup.CreatedBy = &val
	}

	return &lineup, nil
}
