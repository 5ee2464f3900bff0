package router

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/vereinsapp/club-backend/internal/models"
	"github.com/vereinsapp/club-backend/internal/services"
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return SetupRouter(db, zerolog.Nop(), nil), mock
}

func authToken(t *testing.T, userID int, role string) string {
	t.Helper()
	token, err := services.NewAuthService(zerolog.Nop()).GenerateToken(userID, "test@example.com", role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}

func TestLedgerRequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/ledger", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAssignFineForbiddenForPlayers(t *testing.T) {
	router, _ := newTestRouter(t)
	token := authToken(t, 3, "player")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/fines/assign", token,
		models.AssignFineRequest{FineID: 1, UserID: 3})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}

// A treasurer assigns a 500 cent fine; the user's balance afterwards reads
// -500 from a starting balance of zero.
func TestAssignFineThenReadBalance(t *testing.T) {
	router, mock := newTestRouter(t)
	token := authToken(t, 2, "treasurer")
	userID, fineID := 3, 1
	description := "Fine: Zu spät gekommen"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, amount_cents FROM fines WHERE id = ?")).
		WithArgs(fineID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "amount_cents"}).
			AddRow(fineID, "Zu spät gekommen", 500))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO assigned_fines")).
		WithArgs(fineID, userID, nil, 2).
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
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount_cents", "entry_type", "category", "description", "created_at"}).
			AddRow(21, userID, 500, "debit", "fine", description, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM assigned_fines WHERE id = ?")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fine_id", "user_id", "event_id", "assigned_by", "assigned_at"}).
			AddRow(11, fineID, userID, nil, 2, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, balance_cents FROM users WHERE id = ?")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance_cents"}).AddRow(userID, -500))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/fines/assign", token,
		models.AssignFineRequest{FineID: fineID, UserID: userID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("assign status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/ledger/3/balance", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balance status: got %d, want 200", rec.Code)
	}

	var balance models.Balance
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("failed to decode balance: %v", err)
	}
	if balance.BalanceCents != -500 {
		t.Errorf("balance: got %d, want -500", balance.BalanceCents)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignFineUnknownUserReturns404(t *testing.T) {
	router, mock := newTestRouter(t)
	token := authToken(t, 2, "admin")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/fines/assign", token,
		models.AssignFineRequest{FineID: 1, UserID: 99})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookDrinkReducesStock(t *testing.T) {
	router, mock := newTestRouter(t)
	token := authToken(t, 3, "player")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM drinks WHERE id = ? FOR UPDATE")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(50))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE drinks SET stock = ? WHERE id = ?")).
		WithArgs(48, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO drink_orders")).
		WithArgs(1, 3, nil, 2, "qr").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("FROM drink_orders WHERE id = ?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "drink_id", "user_id", "event_id", "quantity", "mode", "ordered_at"}).
			AddRow(5, 1, 3, nil, 2, "qr", time.Now()))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/drinks/1/book", token,
		models.BookDrinkRequest{Quantity: 2, Mode: "qr"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var order models.DrinkOrder
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}
	if order.Quantity != 2 || order.Mode != "qr" {
		t.Errorf("unexpected order: %+v", order)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookDrinkInsufficientStockReturns400(t *testing.T) {
	router, mock := newTestRouter(t)
	token := authToken(t, 3, "player")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT stock FROM drinks WHERE id = ? FOR UPDATE")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(48))
	mock.ExpectRollback()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/drinks/1/book", token,
		models.BookDrinkRequest{Quantity: 1000})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestCreateLedgerEntryForbiddenForPlayers(t *testing.T) {
	router, _ := newTestRouter(t)
	token := authToken(t, 3, "player")
	userID := 3

	rec := doJSON(t, router, http.MethodPost, "/api/v1/ledger", token,
		models.CreateEntryRequest{UserID: &userID, AmountCents: 100, EntryType: "credit", Category: "dues"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}
