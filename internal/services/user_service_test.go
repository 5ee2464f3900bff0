package services

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vereinsapp/club-backend/internal/models"
)

func newUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserService(db, zerolog.Nop()), mock
}

func userColumns() []string {
	return []string{"id", "email", "player_number", "display_name", "role", "balance_cents", "password_hash", "created_at"}
}

func TestRegisterCreatesPlayer(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ?")).
		WithArgs("max@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (email, player_number, display_name, role, password_hash) VALUES (?, ?, ?, ?, ?)")).
		WithArgs("max@example.com", nil, "Max Mustermann", "player", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(4, "max@example.com", nil, "Max Mustermann", "player", 0, "hash", time.Now()))

	user, err := svc.Register(&models.RegisterRequest{
		DisplayName: "Max Mustermann",
		Email:       "max@example.com",
		Password:    "changeme",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != string(models.RolePlayer) || user.BalanceCents != 0 {
		t.Errorf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ?")).
		WithArgs("max@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	_, err := svc.Register(&models.RegisterRequest{
		DisplayName: "Max Mustermann",
		Email:       "max@example.com",
		Password:    "changeme",
	})
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
}

func TestRegisterRequiresIdentifier(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Register(&models.RegisterRequest{DisplayName: "Max", Password: "changeme"})
	if err == nil {
		t.Fatal("expected error without email or player number")
	}
}

func TestAuthenticate(t *testing.T) {
	svc, mock := newUserService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ? OR player_number = ?")).
		WithArgs("max@example.com", "max@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(4, "max@example.com", "9", "Max Mustermann", "player", 0, string(hash), time.Now()))

	user, err := svc.Authenticate(&models.LoginRequest{Email: "max@example.com", Password: "changeme"})
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != 4 {
		t.Errorf("user ID: got %d, want 4", user.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, mock := newUserService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.MinCost)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ? OR player_number = ?")).
		WithArgs("max@example.com", "max@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(4, "max@example.com", nil, "Max Mustermann", "player", 0, string(hash), time.Now()))

	_, err := svc.Authenticate(&models.LoginRequest{Email: "max@example.com", Password: "wrong"})
	if err == nil {
		t.Fatal("expected invalid credentials error")
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetUserByID(99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.AssignRole(4, "referee"); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}
