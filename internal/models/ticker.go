package models

import "time"

type TickerEvent struct {
	ID          int       `json:"id"`
	EventID     int       `json:"event_id"`
	Minute      int       `json:"minute"`
	EventType   string    `json:"event_type"`
	Description *string   `json:"description,omitempty"`
	TeamFor     *string   `json:"team_for,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AddTickerEventRequest struct {
	Minute      int     `json:"minute"`
	EventType   string  `json:"event_type"`
	Description *string `json:"description,omitempty"`
	TeamFor     *string `json:"team_for,omitempty"`
}

type TickerFeed struct {
	Events []TickerEvent  `json:"events"`
	Score  map[string]int `json:"score"`
}
