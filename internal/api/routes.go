package api

import (
	"net/http"

	logging "github.com/adamanr/departments_service/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the resource routes next to /metrics and, when health is
// not nil, /healthz.
func NewRouter(s *Server, metrics *Metrics, metricsHandler http.Handler, health http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(s.deps.Logger))
	r.Use(metrics.Middleware)

	r.NotFound(s.NotFound)
	r.Handle("/metrics", metricsHandler)
	if health != nil {
		r.Handle("/healthz", health)
	}

	// Each operation answers on both /resource and /resource/{id}.
	r.Route("/departments", func(r chi.Router) {
		for _, pattern := range []string{"/", "/{id}"} {
			r.Get(pattern, s.GetDepartments)
			r.Post(pattern, s.CreateDepartment)
			r.Put(pattern, s.UpdateDepartment)
			r.Delete(pattern, s.DeleteDepartment)
		}
	})

	r.Route("/employees", func(r chi.Router) {
		for _, pattern := range []string{"/", "/{id}"} {
			r.Get(pattern, s.GetEmployees)
			r.Post(pattern, s.CreateEmployee)
			r.Put(pattern, s.UpdateEmployee)
			r.Delete(pattern, s.DeleteEmployee)
		}
	})

	return r
}
