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

type TickerHandler struct {
	tickerService *services.TickerService
	logger        zerolog.Logger
}

func NewTickerHandler(tickerService *services.TickerService, logger zerolog.Logger) *TickerHandler {
	return &TickerHandler{
		tickerService: tickerService,
		logger:        logger,
	}
}

func (h *TickerHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["event_id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}

	var req models.AddTickerEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	ticker, err := h.tickerService.AddEvent(eventID, &req)
	if err != nil {
		if services.IsNotFound(err) {
			respondServiceError(w, err)
			return
		}
		h.logger.Error().Err(err).Int("event_id", eventID).Msg("Failed to add ticker event")
		respondWithError(w, http.StatusBadRequest, "add_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, ticker)
}

func (h *TickerHandler) Feed(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["event_id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}

	feed, err := h.tickerService.Feed(eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, feed)
}
