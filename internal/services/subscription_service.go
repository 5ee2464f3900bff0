package services

import (
	"database/sql"
	"fmt"

	"github.com/vereinsapp/club-backend/internal/models"

	"github.com/rs/zerolog"
)

type SubscriptionService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSubscriptionService(db *sql.DB, logger zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{
		db:     db,
		logger: logger,
	}
}

func (s *SubscriptionService) ListPlans() ([]*models.SubscriptionPlan, error) {
	rows, err := s.db.Query("SELECT id, name, `interval`, price_cents, features FROM subscription_plans")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching plans")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var plans []*models.SubscriptionPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (s *SubscriptionService) CreatePlan(req *models.CreatePlanRequest) (*models.SubscriptionPlan, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !models.ValidInterval(req.Interval) {
		return nil, fmt.Errorf("invalid interval: %s", req.Interval)
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("price_cents must not be negative")
	}

	result, err := s.db.Exec(
		"INSERT INTO subscription_plans (name, `interval`, price_cents, features) VALUES (?, ?, ?, ?)",
		req.Name, req.Interval, req.PriceCents, req.Features,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating plan")
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	planID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get plan ID: %w", err)
	}

	return s.GetPlanByID(int(planID))
}

func (s *SubscriptionService) GetPlanByID(planID int) (*models.SubscriptionPlan, error) {
	row := s.db.QueryRow(
		"SELECT id, name, `interval`, price_cents, features FROM subscription_plans WHERE id = ?",
		planID,
	)

	plan, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("plan_id", planID).Msg("Error fetching plan")
		return nil, err
	}

	return plan, nil
}

func (s *SubscriptionService) Subscribe(req *models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if _, err := s.GetPlanByID(req.PlanID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = string(models.SubscriptionTrial)
	}

	result, err := s.db.Exec(
		"INSERT INTO subscriptions (user_id, plan_id, status, expires_at) VALUES (?, ?, ?, ?)",
		req.UserID, req.PlanID, status, req.ExpiresAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating subscription")
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	subscriptionID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription ID: %w", err)
	}

	return s.GetSubscriptionByID(int(subscriptionID))
}

func (s *SubscriptionService) Cancel(subscriptionID int) (*models.Subscription, error) {
	if _, err := s.GetSubscriptionByID(subscriptionID); err != nil {
		return nil, err
	}

	_, err := s.db.Exec(
		"UPDATE subscriptions SET status = ? WHERE id = ?",
		string(models.SubscriptionCanceled), subscriptionID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("subscription_id", subscriptionID).Msg("Error canceling subscription")
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	return s.GetSubscriptionByID(subscriptionID)
}

func (s *SubscriptionService) GetSubscriptionByID(subscriptionID int) (*models.Subscription, error) {
	var subscription models.Subscription
	var expiresAt sql.NullTime

	err := s.db.QueryRow(
		"SELECT id, user_id, plan_id, status, started_at, expires_at FROM subscriptions WHERE id = ?",
		subscriptionID,
	).Scan(
		&subscription.ID, &subscription.UserID, &subscription.PlanID,
		&subscription.Status, &subscription.StartedAt, &expiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Int("subscription_id", subscriptionID).Msg("Error fetching subscription")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if expiresAt.Valid {
		subscription.ExpiresAt = &expiresAt.Time
	}

	return &subscription, nil
}

func (s *SubscriptionService) GetSettings() (*models.ClubSettings, error) {
	var settings models.ClubSettings

	err := s.db.QueryRow(
		"SELECT id, club_name, default_response_required, allow_notes_on_responses, dues_interval, dues_amount_cents FROM club_settings LIMIT 1",
	).Scan(
		&settings.ID, &settings.ClubName, &settings.DefaultResponseRequired,
		&settings.AllowNotesOnResponses, &settings.DuesInterval, &settings.DuesAmountCents,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching club settings")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &settings, nil
}

func (s *SubscriptionService) UpdateSettings(settings *models.ClubSettings) (*models.ClubSettings, error) {
	existing, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	if settings.ClubName == "" {
		settings.ClubName = existing.ClubName
	}
	if !models.ValidInterval(settings.DuesInterval) {
		settings.DuesInterval = existing.DuesInterval
	}

	_, err = s.db.Exec(
		"UPDATE club_settings SET club_name = ?, default_response_required = ?, allow_notes_on_responses = ?, dues_interval = ?, dues_amount_cents = ? WHERE id = ?",
		settings.ClubName, settings.DefaultResponseRequired, settings.AllowNotesOnResponses,
		settings.DuesInterval, settings.DuesAmountCents, existing.ID,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error updating club settings")
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return s.GetSettings()
}

func scanPlan(row rowScanner) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	var features sql.NullString

	err := row.Scan(&plan.ID, &plan.Name, &plan.Interval, &plan.PriceCents, &features)
	if err != nil {
		return nil, err
	}

	if features.Valid {
		plan.Features = &features.String
	}

	return &plan, nil
}
