package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmcdani2/field-cheat-sheets/internal/calculator"
	"github.com/mmcdani2/field-cheat-sheets/internal/handlers"
	"github.com/mmcdani2/field-cheat-sheets/internal/observability"
)

func NewRouter(svc *calculator.Service) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	svc.RegisterRoutes(r)

	return r
}
