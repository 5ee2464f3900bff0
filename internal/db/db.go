package db

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

// InitDB opens the MySQL connection. The DSN must include parseTime=true so
// DATETIME columns scan into time.Time.
func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		log.Fatal("cannot open database connection:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("database is not responding:", err)
	}

	log.Println("connected to database")
	return db
}

func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(100) UNIQUE,
			player_number VARCHAR(20) UNIQUE,
			display_name VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'player',
			balance_cents BIGINT NOT NULL DEFAULT 0,
			password_hash VARCHAR(255),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			event_type VARCHAR(20) NOT NULL,
			location VARCHAR(200),
			starts_at DATETIME NOT NULL,
			ends_at DATETIME,
			requires_response BOOLEAN NOT NULL DEFAULT FALSE,
			notes_allowed BOOLEAN NOT NULL DEFAULT TRUE,
			created_by INT,
			INDEX idx_events_starts_at (starts_at)
		);`,
		`CREATE TABLE IF NOT EXISTS event_responses (
			id INT AUTO_INCREMENT PRIMARY KEY,
			event_id INT NOT NULL,
			user_id INT NOT NULL,
			response VARCHAR(20) NOT NULL,
			note TEXT,
			responded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_event_user (event_id, user_id),
			FOREIGN KEY (event_id) REFERENCES events(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS drinks (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			price_cents BIGINT NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS drink_orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			drink_id INT NOT NULL,
			user_id INT NOT NULL,
			event_id INT,
			quantity INT NOT NULL DEFAULT 1,
			mode VARCHAR(20) NOT NULL DEFAULT 'app',
			ordered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (drink_id) REFERENCES drinks(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT,
			amount_cents BIGINT NOT NULL,
			entry_type VARCHAR(10) NOT NULL,
			category VARCHAR(50) NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_ledger_user_id (user_id),
			INDEX idx_ledger_created_at (created_at)
		);`,
		`CREATE TABLE IF NOT EXISTS fines (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			amount_cents BIGINT NOT NULL,
			description TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS assigned_fines (
			id INT AUTO_INCREMENT PRIMARY KEY,
			fine_id INT NOT NULL,
			user_id INT NOT NULL,
			event_id INT,
			assigned_by INT,
			assigned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (fine_id) REFERENCES fines(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS lineups (
			id INT AUTO_INCREMENT PRIMARY KEY,
			event_id INT NOT NULL,
			name VARCHAR(100) NOT NULL,
			formation VARCHAR(20),
			created_by INT,
			FOREIGN KEY (event_id) REFERENCES events(id)
		);`,
		`CREATE TABLE IF NOT EXISTS lineup_slots (
			id INT AUTO_INCREMENT PRIMARY KEY,
			lineup_id INT NOT NULL,
			user_id INT NOT NULL,
			position_label VARCHAR(50),
			FOREIGN KEY (lineup_id) REFERENCES lineups(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS live_ticker_events (
			id INT AUTO_INCREMENT PRIMARY KEY,
			event_id INT NOT NULL,
			minute INT NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			description TEXT,
			team_for VARCHAR(50),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (event_id) REFERENCES events(id)
		);`,
		`CREATE TABLE IF NOT EXISTS subscription_plans (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			` + "`interval`" + ` VARCHAR(20) NOT NULL,
			price_cents BIGINT NOT NULL,
			features TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			plan_id INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'trial',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (plan_id) REFERENCES subscription_plans(id)
		);`,
		`CREATE TABLE IF NOT EXISTS club_settings (
			id INT AUTO_INCREMENT PRIMARY KEY,
			club_name VARCHAR(100) NOT NULL,
			default_response_required BOOLEAN NOT NULL DEFAULT TRUE,
			allow_notes_on_responses BOOLEAN NOT NULL DEFAULT TRUE,
			dues_interval VARCHAR(20) NOT NULL DEFAULT 'monthly',
			dues_amount_cents BIGINT NOT NULL DEFAULT 0
		);`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("migration failed:", err)
		}
	}
	log.Println("migrations applied")
}
