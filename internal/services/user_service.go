package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	if req.DisplayName == "" || req.Password == "" {
		return nil, errors.New("display_name and password are required")
	}
	if req.Email == "" && req.PlayerNumber == "" {
		return nil, errors.New("email or player_number is required")
	}

	if req.Email != "" {
		var existingID int
		err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", req.Email).Scan(&existingID)
		if err == nil {
			return nil, errors.New("email already registered")
		} else if err != sql.ErrNoRows {
			s.logger.Error().Err(err).Msg("Error checking existing email")
			return nil, fmt.Errorf("database error: %w", err)
		}
	}
	if req.PlayerNumber != "" {
		var existingID int
		err := s.db.QueryRow("SELECT id FROM users WHERE player_number = ?", req.PlayerNumber).Scan(&existingID)
		if err == nil {
			return nil, errors.New("player number already registered")
		} else if err != sql.ErrNoRows {
			s.logger.Error().Err(err).Msg("Error checking existing player number")
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO users (email, player_number, display_name, role, password_hash) VALUES (?, ?, ?, ?, ?)",
		nullable(req.Email), nullable(req.PlayerNumber), req.DisplayName, string(models.RolePlayer), string(hashedPassword),
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	user, err := s.GetUserByID(int(userID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("display_name", user.DisplayName).Msg("User registered")
	return user, nil
}

func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.findByIdentifier(req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return user, nil
}

func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, email, player_number, display_name, role, balance_cents, password_hash, created_at FROM users WHERE id = ?",
		userID,
	)
	return scanUser(row)
}

// Lookup finds a user by email or player number.
func (s *UserService) Lookup(identifier string) (*models.User, error) {
	return s.findByIdentifier(identifier)
}

func (s *UserService) findByIdentifier(identifier string) (*models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, email, player_number, display_name, role, balance_cents, password_hash, created_at FROM users WHERE email = ? OR player_number = ?",
		identifier, identifier,
	)
	return scanUser(row)
}

func (s *UserService) ListUsers() ([]*models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, email, player_number, display_name, role, balance_cents, password_hash, created_at FROM users",
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching users")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (s *UserService) AssignRole(userID int, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	result, err := s.db.Exec("UPDATE users SET role = ? WHERE id = ?", role, userID)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error assigning role")
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		// Role may already match; distinguish missing user from no-op update.
		if _, err := s.GetUserByID(userID); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int("user_id", userID).Str("role", role).Msg("Role assigned")
	return s.GetUserByID(userID)
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var email, playerNumber, passwordHash sql.NullString

	err := row.Scan(
		&user.ID, &email, &playerNumber, &user.DisplayName,
		&user.Role, &user.BalanceCents, &passwordHash, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if email.Valid {
		user.Email = &email.String
	}
	if playerNumber.Valid {
		user.PlayerNumber = &playerNumber.String
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}

	return &user, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
