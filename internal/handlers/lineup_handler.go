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

type LineupHandler struct {
	lineupService *services.LineupService
	logger        zerolog.Logger
}

func NewLineupHandler(lineupService *services.LineupService, logger zerolog.Logger) *LineupHandler {
	return &LineupHandler{
		lineupService: lineupService,
		logger:        logger,
	}
}

func (h *LineupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	actorID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	lineup, err := h.lineupService.Create(&req, actorID)
	if err != nil {
		if services.IsNotFound(err) {
			respondServiceError(w, err)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to create lineup")
		respondWithError(w, http.StatusBadRequest, "create_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, lineup)
}

func (h *LineupHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	lineupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_lineup_id", "Invalid lineup ID")
		return
	}

	var req models.AddSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	slot, err := h.lineupService.AddSlot(lineupID, &req)
	if err != nil {
		h.logger.Error().Err(err).Int("lineup_id", lineupID).Msg("Failed to add slot")
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, slot)
}

func (h *LineupHandler) Get(w http.ResponseWriter, r *http.Request) {
	lineupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_lineup_id", "Invalid lineup ID")
		return
	}

	detail, err := h.lineupService.Get(lineupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}
