package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

type TickerService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTickerService(db *sql.DB, logger zerolog.Logger) *TickerService {
	return &TickerService{
		db:     db,
		logger: logger,
	}
}

func (s *TickerService) AddEvent(eventID int, req *models.AddTickerEventRequest) (*models.TickerEvent, error) {
	if req.EventType == "" {
		return nil, fmt.Errorf("event_type is required")
	}

	var id int
	err := s.db.QueryRow("SELECT id FROM events WHERE id = ?", eventID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO live_ticker_events (event_id, minute, event_type, description, team_for) VALUES (?, ?, ?, ?, ?)",
		eventID, req.Minute, req.EventType, req.Description, req.TeamFor,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error adding ticker event")
		return nil, fmt.Errorf("failed to add ticker event: %w", err)
	}

	tickerID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker event ID: %w", err)
	}

	var ticker models.TickerEvent
	var description, teamFor sql.NullString
	err = s.db.QueryRow(
		"SELECT id, event_id, minute, event_type, description, team_for, created_at FROM live_ticker_events WHERE id = ?",
		tickerID,
	).Scan(&ticker.ID, &ticker.EventID, &ticker.Minute, &ticker.EventType, &description, &teamFor, &ticker.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticker event: %w", err)
	}
	if description.Valid {
		ticker.Description = &description.String
	}
	if teamFor.Valid {
		ticker.TeamFor = &teamFor.String
	}

	return &ticker, nil
}

// Feed returns the ticker entries for an event together with the running
// score, counting one point per "goal" entry for the named team.
func (s *TickerService) Feed(eventID int) (*models.TickerFeed, error) {
	var id int
	err := s.db.QueryRow("SELECT id FROM events WHERE id = ?", eventID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT id, event_id, minute, event_type, description, team_for, created_at FROM live_ticker_events WHERE event_id = ? ORDER BY minute, id",
		eventID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("event_id", eventID).Msg("Error fetching ticker events")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	feed := &models.TickerFeed{
		Events: []models.TickerEvent{},
		Score:  make(map[string]int),
	}
	for rows.Next() {
		var ticker models.TickerEvent
		var description, teamFor sql.NullString
		err := rows.Scan(
			&ticker.ID, &ticker.EventID, &ticker.Minute, &ticker.EventType,
			&description, &teamFor, &ticker.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning ticker event: %w", err)
		}
		if description.Valid {
			ticker.Description = &description.String
		}
		if teamFor.Valid {
			ticker.TeamFor = &teamFor.String
		}
		feed.Events = append(feed.Events, ticker)

		if strings.EqualFold(ticker.EventType, "goal") {
			team := "home"
			if ticker.TeamFor != nil && *ticker.TeamFor != "" {
				team = *ticker.TeamFor
			}
			feed.Score[team]++
		}
	}

	return feed, rows.Err()
}
