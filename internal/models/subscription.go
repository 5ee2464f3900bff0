package models

import "time"

type SubscriptionPlan struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Interval   string  `json:"interval"`
	PriceCents int64   `json:"price_cents"`
	Features   *string `json:"features,omitempty"`
}

type SubscriptionInterval string

const (
	IntervalMonthly SubscriptionInterval = "monthly"
	IntervalYearly  SubscriptionInterval = "yearly"
)

func ValidInterval(interval string) bool {
	switch SubscriptionInterval(interval) {
	case IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

type Subscription struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	PlanID    int        `json:"plan_id"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionTrial    SubscriptionStatus = "trial"
)

type CreatePlanRequest struct {
	Name       string  `json:"name"`
	Interval   string  `json:"interval"`
	PriceCents int64   `json:"price_cents"`
	Features   *string `json:"features,omitempty"`
}

type CreateSubscriptionRequest struct {
	UserID    int        `json:"user_id"`
	PlanID    int        `json:"plan_id"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ClubSettings struct {
	ID                      int    `json:"id"`
	ClubName                string `json:"club_name"`
	DefaultResponseRequired bool   `json:"default_response_required"`
	AllowNotesOnResponses   bool   `json:"allow_notes_on_responses"`
	DuesInterval            string `json:"dues_interval"`
	DuesAmountCents         int64  `json:"dues_amount_cents"`
}
