package models

import "time"

type Event struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	EventType        string     `json:"event_type"`
	Location         *string    `json:"location,omitempty"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	RequiresResponse bool       `json:"requires_response"`
	NotesAllowed     bool       `json:"notes_allowed"`
	CreatedBy        *int       `json:"created_by,omitempty"`
}

type EventType string

const (
	EventTypeTraining EventType = "training"
	EventTypeMatch    EventType = "match"
	EventTypeEvent    EventType = "event"
)

func ValidEventType(eventType string) bool {
	switch EventType(eventType) {
	case EventTypeTraining, EventTypeMatch, EventTypeEvent:
		return true
	}
	return false
}

type EventResponse struct {
	ID          int       `json:"id"`
	EventID     int       `json:"event_id"`
	UserID      int       `json:"user_id"`
	Response    string    `json:"response"`
	Note        *string   `json:"note,omitempty"`
	RespondedAt time.Time `json:"responded_at"`
}

type ResponseStatus string

const (
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseTentative ResponseStatus = "tentative"
	ResponseDeclined  ResponseStatus = "declined"
)

func ValidResponseStatus(response string) bool {
	switch ResponseStatus(response) {
	case ResponseAccepted, ResponseTentative, ResponseDeclined:
		return true
	}
	return false
}

type CreateEventRequest struct {
	Title            string     `json:"title"`
	EventType        string     `json:"event_type"`
	Location         *string    `json:"location,omitempty"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	RequiresResponse bool       `json:"requires_response"`
	NotesAllowed     bool       `json:"notes_allowed"`
}

type RespondRequest struct {
	Response string  `json:"response"`
	Note     *string `json:"note,omitempty"`
}
