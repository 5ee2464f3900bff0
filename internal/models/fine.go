package models

import "time"

type Fine struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	AmountCents int64   `json:"amount_cents"`
	Description *string `json:"description,omitempty"`
}

type AssignedFine struct {
	ID         int       `json:"id"`
	FineID     int       `json:"fine_id"`
	UserID     int       `json:"user_id"`
	EventID    *int      `json:"event_id,omitempty"`
	AssignedBy *int      `json:"assigned_by,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}

type CreateFineRequest struct {
	Title       string  `json:"title"`
	AmountCents int64   `json:"amount_cents"`
	Description *string `json:"description,omitempty"`
}

type AssignFineRequest struct {
	FineID  int  `json:"fine_id"`
	UserID  int  `json:"user_id"`
	EventID *int `json:"event_id,omitempty"`
}
