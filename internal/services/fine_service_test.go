package services

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/vereinsapp/club-backend/internal/models"
)

func newFineService(t *testing.T) (*FineService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ledger := NewLedgerService(db, zerolog.Nop(), nil)
	return NewFineService(db, zerolog.Nop(), ledger), mock
}

func TestAssignDebitsFineAmount(t *testing.T) {
	svc, mock := newFineService(t)
	userID, fineID, actorID := 3, 1, 2
	description := "Fine: Zu spät gekommen"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, amount_cents FROM fines WHERE id = ?")).
		WithArgs(fineID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "amount_cents"}).
			AddRow(fineID, "Zu spät gekommen", 500))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO assigned_fines (fine_id, user_id, event_id, assigned_by) VALUES (?, ?, ?, ?)")).
		WithArgs(fineID, userID, nil, actorID).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT balance_cents FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ledger_entries")).
		WithArgs(userID, 500, "debit", "fine", description).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance_cents = ? WHERE id = ?")).
		WithArgs(-500, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("FROM ledger_entries WHERE id = ?")).
		WithArgs(21).
		WillReturnRows(sqlmock.NewRows(entryColumns()).
			AddRow(21, userID, 500, "debit", "fine", description, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM assigned_fines WHERE id = ?")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fine_id", "user_id", "event_id", "assigned_by", "assigned_at"}).
			AddRow(11, fineID, userID, nil, actorID, time.Now()))

	assignment, err := svc.Assign(&models.AssignFineRequest{FineID: fineID, UserID: userID}, actorID)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if assignment.ID != 11 || assignment.FineID != fineID || assignment.UserID != userID {
		t.Errorf("unexpected assignment: %+v", assignment)
	}
	if assignment.AssignedBy == nil || *assignment.AssignedBy != actorID {
		t.Errorf("assigned_by not recorded: %+v", assignment.AssignedBy)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignUnknownUserWritesNothing(t *testing.T) {
	svc, mock := newFineService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Assign(&models.AssignFineRequest{FineID: 1, UserID: 99}, 2)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignUnknownFineWritesNothing(t *testing.T) {
	svc, mock := newFineService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, amount_cents FROM fines WHERE id = ?")).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Assign(&models.AssignFineRequest{FineID: 42, UserID: 3}, 2)
	if !errors.Is(err, ErrFineNotFound) {
		t.Fatalf("expected ErrFineNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignRollsBackOnLedgerFailure(t *testing.T) {
	svc, mock := newFineService(t)
	userID, fineID := 3, 1

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, amount_cents FROM fines WHERE id = ?")).
		WithArgs(fineID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "amount_cents"}).
			AddRow(fineID, "Trainingsausfall ohne Absage", 1000))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO assigned_fines")).
		WithArgs(fineID, userID, nil, 2).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT balance_cents FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(userID).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Assign(&models.AssignFineRequest{FineID: fineID, UserID: userID}, 2)
	if err == nil {
		t.Fatal("expected ledger failure to surface")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFineValidation(t *testing.T) {
	svc, _ := newFineService(t)

	if _, err := svc.Create(&models.CreateFineRequest{Title: "", AmountCents: 500}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.Create(&models.CreateFineRequest{Title: "Foul", AmountCents: 0}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
