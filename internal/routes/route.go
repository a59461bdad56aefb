package routes

import (
	"net/http"

	"resq-bknd/internal/config"
	"resq-bknd/internal/database"
	"resq-bknd/internal/handlers"
	"resq-bknd/internal/logger"
	"resq-bknd/internal/maps"
	"resq-bknd/internal/push"
	"resq-bknd/internal/realtime"
	"resq-bknd/internal/roam"
	"resq-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uptrace/bun"
)

// NewRouter wires provider clients, services, the websocket hub and all HTTP
// routes together.
func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// provider clients
	roamClient := roam.NewClient(cfg.RoamAPIURL, cfg.RoamAPIKey, cfg.ExternalTimeout)
	pushClient := push.NewClient(cfg.FCMAPIURL, cfg.FCMServerKey, cfg.ExternalTimeout)
	mapsClient := maps.NewClient(cfg.MapsAPIURL, cfg.MapsAPIKey, cfg.ExternalTimeout)

	// shared state and real-time hub
	state := services.NewTrackerState()
	hub := realtime.NewHub(state, logr.Component("realtime"))

	// services
	planner := services.NewPlanner(state, mapsClient, hub, cfg.ExternalTimeout, logr.Component("planner"))
	dispatcher := services.NewDispatcher(nil, state, hub, pushClient, planner, logr.Component("dispatcher"))
	incidentSvc := services.NewIncidentService(roamClient, database.NewIncidentRepo(db), logr.Component("incidents"))
	vehicleSvc := services.NewVehicleService(database.NewVehicleRepo(db), hub, logr.Component("vehicles"))

	// handlers
	webhookHandler := handlers.NewWebhookHandler(dispatcher, logr.Component("webhook"))
	incidentHandler := handlers.NewIncidentHandler(incidentSvc, logr.Component("incidents"))
	locationHandler := handlers.NewLocationHandler(state, planner, logr.Component("location"))
	vehicleHandler := handlers.NewVehicleHandler(vehicleSvc, logr.Component("vehicles"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})

	// Provider webhook and websocket endpoint sit outside the API prefix.
	r.Post("/webhook", webhookHandler.HandleEvents)
	r.Get("/ws", hub.HandleWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/report-incident", incidentHandler.ReportIncident)
		r.Get("/incidents", incidentHandler.ListIncidents)
		r.Get("/incidents/{id}", incidentHandler.GetIncidentByID)

		r.Post("/current-location", locationHandler.UpdateCurrentLocation)

		r.Post("/emergency-vehicle-location", vehicleHandler.UpsertLocation)
		r.Post("/emergency-vehicle", vehicleHandler.BroadcastLocation)
	})

	return r
}
