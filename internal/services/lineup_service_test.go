package services

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/vereinsapp/club-backend/internal/models"
)

func newLineupService(t *testing.T) (*LineupService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewLineupService(db, zerolog.Nop()), mock
}

func TestGetLineupWithSlots(t *testing.T) {
	svc, mock := newLineupService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lineups WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "formation", "created_by"}).
			AddRow(1, 2, "Startelf", "4-4-2", 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM lineup_slots WHERE lineup_id = ?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lineup_id", "user_id", "position_label"}).
			AddRow(1, 1, 3, "ST").
			AddRow(2, 1, 4, nil))

	detail, err := svc.Get(1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Lineup.Name != "Startelf" {
		t.Errorf("lineup name: got %q", detail.Lineup.Name)
	}
	if len(detail.Slots) != 2 {
		t.Fatalf("slots: got %d, want 2", len(detail.Slots))
	}
	if detail.Slots[0].PositionLabel == nil || *detail.Slots[0].PositionLabel != "ST" {
		t.Errorf("unexpected first slot: %+v", detail.Slots[0])
	}
	if detail.Slots[1].PositionLabel != nil {
		t.Errorf("expected unlabeled second slot, got %+v", detail.Slots[1])
	}
}

func TestGetUnknownLineup(t *testing.T) {
	svc, mock := newLineupService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lineups WHERE id = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(99)
	if !errors.Is(err, ErrLineupNotFound) {
		t.Fatalf("expected ErrLineupNotFound, got %v", err)
	}
}

func TestCreateLineupUnknownEvent(t *testing.T) {
	svc, mock := newLineupService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM events WHERE id = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Create(&models.CreateLineupRequest{EventID: 99, Name: "Startelf"}, 1)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
