package models

type Lineup struct {
	ID        int     `json:"id"`
	EventID   int     `json:"event_id"`
	Name      string  `json:"name"`
	Formation *string `json:"formation,omitempty"`
	CreatedBy *int    `json:"created_by,omitempty"`
}

type LineupSlot struct {
	ID            int     `json:"id"`
	LineupID      int     `json:"lineup_id"`
	UserID        int     `json:"user_id"`
	PositionLabel *string `json:"position_label,omitempty"`
}

type CreateLineupRequest struct {
	EventID   int     `json:"event_id"`
	Name      string  `json:"name"`
	Formation *string `json:"formation,omitempty"`
}

type AddSlotRequest struct {
	UserID        int     `json:"user_id"`
	PositionLabel *string `json:"position_label,omitempty"`
}

type LineupDetail struct {
	Lineup *Lineup      `json:"lineup"`
	Slots  []LineupSlot `json:"slots"`
}
