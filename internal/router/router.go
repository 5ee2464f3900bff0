package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/vereinsapp/club-backend/internal/events"
	"github.com/vereinsapp/club-backend/internal/handlers"
	"github.com/vereinsapp/club-backend/internal/middleware"
	"github.com/vereinsapp/club-backend/internal/models"
	"github.com/vereinsapp/club-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(db *sql.DB, logger zerolog.Logger, publisher events.Publisher) *mux.Router {
	userService := services.NewUserService(db, logger)
	authService := services.NewAuthService(logger)
	ledgerService := services.NewLedgerService(db, logger, publisher)
	fineService := services.NewFineService(db, logger, ledgerService)
	drinkService := services.NewDrinkService(db, logger)
	eventService := services.NewEventService(db, logger)
	lineupService := services.NewLineupService(db, logger)
	tickerService := services.NewTickerService(db, logger)
	subscriptionService := services.NewSubscriptionService(db, logger)

	authHandler := handlers.NewAuthHandler(userService, authService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, logger)
	fineHandler := handlers.NewFineHandler(fineService, logger)
	drinkHandler := handlers.NewDrinkHandler(drinkService, logger)
	eventHandler := handlers.NewEventHandler(eventService, logger)
	lineupHandler := handlers.NewLineupHandler(lineupService, logger)
	tickerHandler := handlers.NewTickerHandler(tickerService, logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, logger)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		logger.Warn().Msg("JWT_SECRET not set, using default key")
	}

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api/v1").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	adminOnly := middleware.RequireRole(string(models.RoleAdmin))
	staffOnly := middleware.RequireRole(string(models.RoleAdmin), string(models.RoleTreasurer))

	users := api.PathPrefix("/users").Subrouter()
	users.Use(middleware.Authentication(jwtSecret, logger))
	users.HandleFunc("", userHandler.List).Methods("GET")
	users.HandleFunc("/me", userHandler.Me).Methods("GET")
	users.HandleFunc("/lookup/{identifier}", userHandler.Lookup).Methods("GET")
	users.Handle("/assign-role/{id}", adminOnly(http.HandlerFunc(userHandler.AssignRole))).Methods("POST")

	eventsRouter := api.PathPrefix("/events").Subrouter()
	eventsRouter.Use(middleware.Authentication(jwtSecret, logger))
	eventsRouter.HandleFunc("", eventHandler.List).Methods("GET")
	eventsRouter.Handle("", staffOnly(http.HandlerFunc(eventHandler.Create))).Methods("POST")
	eventsRouter.HandleFunc("/{id}/respond", eventHandler.Respond).Methods("POST")
	eventsRouter.HandleFunc("/{id}/responses", eventHandler.ListResponses).Methods("GET")

	drinks := api.PathPrefix("/drinks").Subrouter()
	drinks.Use(middleware.Authentication(jwtSecret, logger))
	drinks.HandleFunc("", drinkHandler.List).Methods("GET")
	drinks.Handle("", staffOnly(http.HandlerFunc(drinkHandler.Create))).Methods("POST")
	drinks.HandleFunc("/stats", drinkHandler.Stats).Methods("GET")
	drinks.HandleFunc("/{id}/book", drinkHandler.Book).Methods("POST")

	ledger := api.PathPrefix("/ledger").Subrouter()
	ledger.Use(middleware.Authentication(jwtSecret, logger))
	ledger.HandleFunc("", ledgerHandler.ListEntries).Methods("GET")
	ledger.Handle("", staffOnly(http.HandlerFunc(ledgerHandler.CreateEntry))).Methods("POST")
	ledger.HandleFunc("/{user_id}/balance", ledgerHandler.GetBalance).Methods("GET")

	fines := api.PathPrefix("/fines").Subrouter()
	fines.Use(middleware.Authentication(jwtSecret, logger))
	fines.HandleFunc("", fineHandler.List).Methods("GET")
	fines.Handle("", staffOnly(http.HandlerFunc(fineHandler.Create))).Methods("POST")
	fines.Handle("/assign", staffOnly(http.HandlerFunc(fineHandler.Assign))).Methods("POST")

	lineups := api.PathPrefix("/lineups").Subrouter()
	lineups.Use(middleware.Authentication(jwtSecret, logger))
	lineups.Handle("", staffOnly(http.HandlerFunc(lineupHandler.Create))).Methods("POST")
	lineups.Handle("/{id}/slots", staffOnly(http.HandlerFunc(lineupHandler.AddSlot))).Methods("POST")
	lineups.HandleFunc("/{id}", lineupHandler.Get).Methods("GET")

	ticker := api.PathPrefix("/ticker").Subrouter()
	ticker.Use(middleware.Authentication(jwtSecret, logger))
	ticker.Handle("/{event_id}", staffOnly(http.HandlerFunc(tickerHandler.AddEvent))).Methods("POST")
	ticker.HandleFunc("/{event_id}", tickerHandler.Feed).Methods("GET")

	subscriptions := api.PathPrefix("/subscriptions").Subrouter()
	subscriptions.Use(middleware.Authentication(jwtSecret, logger))
	subscriptions.HandleFunc("/plans", subscriptionHandler.ListPlans).Methods("GET")
	subscriptions.Handle("/plans", adminOnly(http.HandlerFunc(subscriptionHandler.CreatePlan))).Methods("POST")
	subscriptions.HandleFunc("/settings", subscriptionHandler.GetSettings).Methods("GET")
	subscriptions.Handle("/settings", staffOnly(http.HandlerFunc(subscriptionHandler.UpdateSettings))).Methods("PUT")
	subscriptions.Handle("", staffOnly(http.HandlerFunc(subscriptionHandler.Subscribe))).Methods("POST")
	subscriptions.Handle("/{id}/cancel", adminOnly(http.HandlerFunc(subscriptionHandler.Cancel))).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
