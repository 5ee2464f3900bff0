package db

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed fills an empty database with the club's starting data. It is a no-op
// when any users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []struct {
		email        string
		playerNumber *string
		displayName  string
		role         string
	}{
		{"admin@example.com", nil, "Admin", "admin"},
		{"cash@example.com", nil, "Kassenwart", "treasurer"},
		{"player@example.com", strPtr("9"), "Max Mustermann", "player"},
	}
	for _, u := range users {
		_, err := db.Exec(
			"INSERT INTO users (email, player_number, display_name, role, password_hash) VALUES (?, ?, ?, ?, ?)",
			u.email, u.playerNumber, u.displayName, u.role, string(hash),
		)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	now := time.Now().UTC()
	events := []struct {
		title     string
		eventType string
		location  string
		startsAt  time.Time
		endsAt    time.Time
	}{
		{"Wöchentliches Training", "training", "Sportplatz Hauptstraße", now.AddDate(0, 0, 2), now.AddDate(0, 0, 2).Add(2 * time.Hour)},
		{"Spiel gegen FC Stadtmitte", "match", "Sportpark Zentrum", now.AddDate(0, 0, 5), now.AddDate(0, 0, 5).Add(2 * time.Hour)},
	}
	for _, e := range events {
		_, err := db.Exec(
			"INSERT INTO events (title, event_type, location, starts_at, ends_at, requires_response, notes_allowed, created_by) VALUES (?, ?, ?, ?, ?, TRUE, TRUE, 1)",
			e.title, e.eventType, e.location, e.startsAt, e.endsAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed event %s: %w", e.title, err)
		}
	}

	drinks := []struct {
		name       string
		priceCents int64
		stock      int
	}{
		{"Wasser", 150, 50},
		{"Isodrink", 300, 30},
	}
	for _, d := range drinks {
		if _, err := db.Exec("INSERT INTO drinks (name, price_cents, stock) VALUES (?, ?, ?)", d.name, d.priceCents, d.stock); err != nil {
			return fmt.Errorf("failed to seed drink %s: %w", d.name, err)
		}
	}

	fines := []struct {
		title       string
		amountCents int64
	}{
		{"Zu spät gekommen", 500},
		{"Trainingsausfall ohne Absage", 1000},
	}
	for _, f := range fines {
		if _, err := db.Exec("INSERT INTO fines (title, amount_cents) VALUES (?, ?)", f.title, f.amountCents); err != nil {
			return fmt.Errorf("failed to seed fine %s: %w", f.title, err)
		}
	}

	plans := []struct {
		name       string
		interval   string
		priceCents int64
		features   string
	}{
		{"Basic", "monthly", 0, "Begrenzte Teams, keine Kassenstatistiken"},
		{"Premium", "monthly", 1299, "Alle Funktionen freigeschaltet"},
	}
	for _, p := range plans {
		_, err := db.Exec(
			"INSERT INTO subscription_plans (name, `interval`, price_cents, features) VALUES (?, ?, ?, ?)",
			p.name, p.interval, p.priceCents, p.features,
		)
		if err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", p.name, err)
		}
	}

	_, err = db.Exec(
		"INSERT INTO club_settings (club_name, dues_amount_cents) VALUES (?, ?)",
		"Verein 24", 500,
	)
	if err != nil {
		return fmt.Errorf("failed to seed club settings: %w", err)
	}

	return nil
}

func strPtr(s string) *string { return &s }
