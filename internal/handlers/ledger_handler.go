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

type LedgerHandler struct {
	ledgerService *services.LedgerService
	logger        zerolog.Logger
}

func NewLedgerHandler(ledgerService *services.LedgerService, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerService.ListEntries()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list ledger entries")
		respondServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []*models.LedgerEntry{}
	}
	respondWithJSON(w, http.StatusOK, entries)
}

func (h *LedgerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	entry, err := h.ledgerService.Record(&req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to record ledger entry")
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_user_id", "Invalid user ID")
		return
	}

	balance, err := h.ledgerService.BalanceOf(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, balance)
}
