package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vereinsapp/club-backend/internal/middleware"
	"github.com/vereinsapp/club-backend/internal/models"
	"github.com/vereinsapp/club-backend/internal/services"

	"github.com/rs/zerolog"
)

type FineHandler struct {
	fineService *services.FineService
	logger      zerolog.Logger
}

func NewFineHandler(fineService *services.FineService, logger zerolog.Logger) *FineHandler {
	return &FineHandler{
		fineService: fineService,
		logger:      logger,
	}
}

func (h *FineHandler) List(w http.ResponseWriter, r *http.Request) {
	fines, err := h.fineService.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list fines")
		respondServiceError(w, err)
		return
	}

	if fines == nil {
		fines = []*models.Fine{}
	}
	respondWithJSON(w, http.StatusOK, fines)
}

func (h *FineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	fine, err := h.fineService.Create(&req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create fine")
		respondWithError(w, http.StatusBadRequest, "create_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, fine)
}

func (h *FineHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignFineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	actorID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	assignment, err := h.fineService.Assign(&req, actorID)
	if err != nil {
		h.logger.Error().Err(err).Int("fine_id", req.FineID).Int("user_id", req.UserID).Msg("Failed to assign fine")
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, assignment)
}
