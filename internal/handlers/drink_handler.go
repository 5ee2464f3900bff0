package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vereinsapp/club-backend/internal/middleware"
	"github.com/vereinsapp/club-backend/internal/models"
	"github.com/vereinsapp/club-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type DrinkHandler struct {
	drinkService *services.DrinkService
	logger       zerolog.Logger
}

func NewDrinkHandler(drinkService *services.DrinkService, logger zerolog.Logger) *DrinkHandler {
	return &DrinkHandler{
		drinkService: drinkService,
		logger:       logger,
	}
}

func (h *DrinkHandler) List(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinkService.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list drinks")
		respondServiceError(w, err)
		return
	}

	if drinks == nil {
		drinks = []*models.Drink{}
	}
	respondWithJSON(w, http.StatusOK, drinks)
}

func (h *DrinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDrinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	drink, err := h.drinkService.Create(&req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create drink")
		respondWithError(w, http.StatusBadRequest, "create_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, drink)
}

func (h *DrinkHandler) Book(w http.ResponseWriter, r *http.Request) {
	drinkID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_drink_id", "Invalid drink ID")
		return
	}

	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	req := models.BookDrinkRequest{Quantity: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}
	}

	order, err := h.drinkService.Book(drinkID, userID, &req)
	if err != nil {
		h.logger.Warn().Err(err).Int("drink_id", drinkID).Int("user_id", userID).Msg("Drink booking rejected")
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

func (h *DrinkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.drinkService.Stats()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch drink stats")
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
