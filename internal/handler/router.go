package handler

import (
	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the public and authenticated routes
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	// Public routes
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/advisor/recommend", h.Recommend).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/advisor").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/report", h.Report).Methods("GET")
	authRouter.HandleFunc("/report.xml", h.ReportXML).Methods("GET")

	return r
}
