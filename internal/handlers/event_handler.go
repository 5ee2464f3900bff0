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

type EventHandler struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

func NewEventHandler(eventService *services.EventService, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list events")
		respondServiceError(w, err)
		return
	}

	if events == nil {
		events = []*models.Event{}
	}
	respondWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	actorID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	event, err := h.eventService.Create(&req, actorID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create event")
		respondWithError(w, http.StatusBadRequest, "create_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Respond(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}

	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	var req models.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	response, err := h.eventService.Respond(eventID, userID, &req)
	if err != nil {
		if services.IsNotFound(err) {
			respondServiceError(w, err)
			return
		}
		h.logger.Error().Err(err).Int("event_id", eventID).Msg("Failed to save response")
		respondWithError(w, http.StatusBadRequest, "respond_failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *EventHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_event_id", "Invalid event ID")
		return
	}

	responses, err := h.eventService.ListResponses(eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if responses == nil {
		responses = []*models.EventResponse{}
	}
	respondWithJSON(w, http.StatusOK, responses)
}
