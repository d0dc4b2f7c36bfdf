package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mehdios/senteur/internal/handler"
	customMiddleware "github.com/mehdios/senteur/internal/middleware"
	"github.com/mehdios/senteur/internal/realtime"
)

func NewRouter(
	orders *handler.OrderHandler,
	pushH *handler.PushHandler,
	health *handler.HealthHandler,
	hub *realtime.Hub,
) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(customMiddleware.MetricsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// REST routes run under a request timeout. The websocket route is
	// registered outside this group: the timeout would cancel the
	// connection's context and kill long-lived sessions.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.Create)
			r.Get("/", orders.GetAll)
			r.Get("/{id}", orders.GetByID)
			r.Put("/{id}", orders.UpdateStatus)
		})

		r.Post("/push-subscription", pushH.Subscribe)
		r.Post("/test-notification", pushH.TestNotification)
	})

	// Admin realtime channel
	r.Get("/ws", hub.ServeWS)

	// Health & Readiness Routes
	r.Get("/healthz", health.Liveness)
	r.Get("/readyz", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
