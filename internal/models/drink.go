package models

import "time"

type Drink struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

type DrinkOrder struct {
	ID        int       `json:"id"`
	DrinkID   int       `json:"drink_id"`
	UserID    int       `json:"user_id"`
	EventID   *int      `json:"event_id,omitempty"`
	Quantity  int       `json:"quantity"`
	Mode      string    `json:"mode"`
	OrderedAt time.Time `json:"ordered_at"`
}

type DrinkOrderMode string

const (
	OrderModeQR    DrinkOrderMode = "qr"
	OrderModeKiosk DrinkOrderMode = "kiosk"
	OrderModeApp   DrinkOrderMode = "app"
)

func ValidOrderMode(mode string) bool {
	switch DrinkOrderMode(mode) {
	case OrderModeQR, OrderModeKiosk, OrderModeApp:
		return true
	}
	return false
}

type CreateDrinkRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

type BookDrinkRequest struct {
	Quantity int    `json:"quantity"`
	Mode     string `json:"mode"`
	EventID  *int   `json:"event_id,omitempty"`
}

type DrinkStats struct {
	Ordered map[int]int `json:"ordered"`
}
