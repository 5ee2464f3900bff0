package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vereinsapp/club-backend/internal/models"
	"github.com/vereinsapp/club-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	logger              zerolog.Logger
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

func (h *SubscriptionHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.subscriptionService.ListPlans()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list plans")
		respondServiceError(w, err)
		return
	}

	if plans == nil {
		plans = []*models.SubscriptionPlan{}
	}
	respondWithJSON(w, http.StatusOK, plans)
}

func (h *SubscriptionHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	plan, err := h.subscriptionService.CreatePlan(&req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create plan")
		respondWithError(w, http.StatusBadRequest, "create_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, plan)
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	subscription, err := h.subscriptionService.Subscribe(&req)
	if err != nil {
		h.logger.Error().Err(err).Int("plan_id", req.PlanID).Msg("Failed to create subscription")
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, subscription)
}

func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_subscription_id", "Invalid subscription ID")
		return
	}

	subscription, err := h.subscriptionService.Cancel(subscriptionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, subscription)
}

func (h *SubscriptionHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.subscriptionService.GetSettings()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, settings)
}

func (h *SubscriptionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.ClubSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	updated, err := h.subscriptionService.UpdateSettings(&settings)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}
