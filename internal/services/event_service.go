package services

import (
	"database/sql"
	"fmt"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

type EventService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewEventService(db *sql.DB, logger zerolog.Logger) *EventService {
	return &EventService{
		db:     db,
		logger: logger,
	}
}

func (s *EventService) List() ([]*models.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, title, event_type, location, starts_at, ends_at, requires_response, notes_allowed, created_by FROM events ORDER BY starts_at",
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching events")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *EventService) Create(req *models.CreateEventRequest, actorID int) (*models.Event, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !models.ValidEventType(req.EventType) {
		return nil, fmt.Errorf("invalid event type: %s", req.EventType)
	}

	result, err := s.db.Exec(
		"INSERT INTO events (title, event_type, location, starts_at, ends_at, requires_response, notes_allowed, created_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		req.Title, req.EventType, req.Location, req.StartsAt, req.EndsAt,
		req.RequiresResponse, req.NotesAllowed, actorID,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	eventID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get event ID: %w", err)
	}

	return s.GetEventByID(int(eventID))
}

func (s *EventService) GetEventByID(eventID int) (*models.Event, error) {
	row := s.db.QueryRow(
		"SELECT id, title, event_type, location, starts_at, ends_at, requires_response, notes_allowed, created_by FROM events WHERE id = ?",
		eventID,
	)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error fetching event")
		return nil, err
	}

	return event, nil
}

// Respond upserts the caller's attendance response for an event.
func (s *EventService) Respond(eventID, userID int, req *models.RespondRequest) (*models.EventResponse, error) {
	if !models.ValidResponseStatus(req.Response) {
		return nil, fmt.Errorf("invalid response: %s", req.Response)
	}

	if _, err := s.GetEventByID(eventID); err != nil {
		return nil, err
	}

	_, err := s.db.Exec(
		"INSERT INTO event_responses (event_id, user_id, response, note) VALUES (?, ?, ?, ?) ON DUPLICATE KEY UPDATE response = VALUES(response), note = VALUES(note), responded_at = CURRENT_TIMESTAMP",
		eventID, userID, req.Response, req.Note,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Int("user_id", userID).Msg("Error saving response")
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	var response models.EventResponse
	var note sql.NullString
	err = s.db.QueryRow(
		"SELECT id, event_id, user_id, response, note, responded_at FROM event_responses WHERE event_id = ? AND user_id = ?",
		eventID, userID,
	).Scan(&response.ID, &response.EventID, &response.UserID, &response.Response, &note, &response.RespondedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load response: %w", err)
	}
	if note.Valid {
		response.Note = &note.String
	}

	return &response, nil
}

func (s *EventService) ListResponses(eventID int) ([]*models.EventResponse, error) {
	if _, err := s.GetEventByID(eventID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT id, event_id, user_id, response, note, responded_at FROM event_responses WHERE event_id = ?",
		eventID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error fetching responses")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var responses []*models.EventResponse
	for rows.Next() {
		var response models.EventResponse
		var note sql.NullString
		err := rows.Scan(
			&response.ID, &response.EventID, &response.UserID,
			&response.Response, &note, &response.RespondedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning response: %w", err)
		}
		if note.Valid {
			response.Note = &note.String
		}
		responses = append(responses, &response)
	}

	return responses, rows.Err()
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var location sql.NullString
	var endsAt sql.NullTime
	var createdBy sql.NullInt64

	err := row.Scan(
		&event.ID, &event.Title, &event.EventType, &location,
		&event.StartsAt, &endsAt, &event.RequiresResponse,
		&event.NotesAllowed, &createdBy,
	)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		event.Location = &location.String
	}
	if endsAt.Valid {
		event.EndsAt = &endsAt.Time
	}
	if createdBy.Valid {
		val := int(createdBy.Int64)
		event.CreatedBy = &val
	}

	return &event, nil
}
