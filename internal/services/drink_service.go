package services

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

// DrinkService is the only writer of drinks.stock.
type DrinkService struct {
	db     *sql.DB
	logger zerolog.Logger
	mu     sync.Map
}

func NewDrinkService(db *sql.DB, logger zerolog.Logger) *DrinkService {
	return &DrinkService{
		db:     db,
		logger: logger,
	}
}

func (s *DrinkService) getMutex(drinkID int) *sync.Mutex {
	mu, _ := s.mu.LoadOrStore(drinkID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *DrinkService) List() ([]*models.Drink, error) {
	rows, err := s.db.Query("SELECT id, name, price_cents, stock FROM drinks")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching drinks")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var drinks []*models.Drink
	for rows.Next() {
		var drink models.Drink
		if err := rows.Scan(&drink.ID, &drink.Name, &drink.PriceCents, &drink.Stock); err != nil {
			return nil, fmt.Errorf("error scanning drink: %w", err)
		}
		drinks = append(drinks, &drink)
	}

	return drinks, rows.Err()
}

func (s *DrinkService) Create(req *models.CreateDrinkRequest) (*models.Drink, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative")
	}

	result, err := s.db.Exec(
		"INSERT INTO drinks (name, price_cents, stock) VALUES (?, ?, ?)",
		req.Name, req.PriceCents, req.Stock,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating drink")
		return nil, fmt.Errorf("failed to create drink: %w", err)
	}

	drinkID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get drink ID: %w", err)
	}

	return s.GetDrinkByID(int(drinkID))
}

func (s *DrinkService) GetDrinkByID(drinkID int) (*models.Drink, error) {
	var drink models.Drink

	err := s.db.QueryRow(
		"SELECT id, name, price_cents, stock FROM drinks WHERE id = ?",
		drinkID,
	).Scan(&drink.ID, &drink.Name, &drink.PriceCents, &drink.Stock)

	if err == sql.ErrNoRows {
		return nil, ErrDrinkNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("drink_id", drinkID).Msg("Error fetching drink")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &drink, nil
}

// Book decrements stock and creates the order in one transaction. The stock
// read is taken under FOR UPDATE, so two concurrent bookings of the last unit
// serialize and the loser fails with ErrInsufficientStock.
func (s *DrinkService) Book(drinkID, userID int, req *models.BookDrinkRequest) (*models.DrinkOrder, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	mode := req.Mode
	if mode == "" {
		mode = string(models.OrderModeApp)
	}
	if !models.ValidOrderMode(mode) {
		return nil, ErrInvalidOrderMode
	}

	mu := s.getMutex(drinkID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting booking transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var stock int
	err = tx.QueryRow("SELECT stock FROM drinks WHERE id = ? FOR UPDATE", drinkID).Scan(&stock)
	if err == sql.ErrNoRows {
		return nil, ErrDrinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock drink row: %w", err)
	}

	if stock < req.Quantity {
		return nil, ErrInsufficientStock
	}

	_, err = tx.Exec(
		"UPDATE drinks SET stock = ? WHERE id = ?",
		stock-req.Quantity, drinkID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	result, err := tx.Exec(
		"INSERT INTO drink_orders (drink_id, user_id, event_id, quantity, mode) VALUES (?, ?, ?, ?, ?)",
		drinkID, userID, req.EventID, req.Quantity, mode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order ID: %w", err)
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Error committing booking")
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	order, err := s.GetOrderByID(int(orderID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("order_id", order.ID).
		Int("drink_id", drinkID).
		Int("user_id", userID).
		Int("quantity", req.Quantity).
		Msg("Drink booked")

	return order, nil
}

func (s *DrinkService) GetOrderByID(orderID int) (*models.DrinkOrder, error) {
	var order models.DrinkOrder
	var eventID sql.NullInt64

	err := s.db.QueryRow(
		"SELECT id, drink_id, user_id, event_id, quantity, mode, ordered_at FROM drink_orders WHERE id = ?",
		orderID,
	).Scan(
		&order.ID, &order.DrinkID, &order.UserID, &eventID,
		&order.Quantity, &order.Mode, &order.OrderedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", orderID).Msg("Error fetching order")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if eventID.Valid {
		val := int(eventID.Int64)
		order.EventID = &val
	}

	return &order, nil
}

func (s *DrinkService) Stats() (*models.DrinkStats, error) {
	rows, err := s.db.Query("SELECT drink_id, COALESCE(SUM(quantity), 0) FROM drink_orders GROUP BY drink_id")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching drink stats")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	stats := &models.DrinkStats{Ordered: make(map[int]int)}
	for rows.Next() {
		var drinkID, total int
		if err := rows.Scan(&drinkID, &total); err != nil {
			return nil, fmt.Errorf("error scanning stats: %w", err)
		}
		stats.Ordered[drinkID] = total
	}

	return stats, rows.Err()
}
