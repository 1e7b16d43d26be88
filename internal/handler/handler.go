package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dan9191/finance-advisor/internal/advisor"
	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/export"
	"github.com/Dan9191/finance-advisor/internal/middleware"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/repository"
	"github.com/Dan9191/finance-advisor/internal/service"
	"github.com/Dan9191/finance-advisor/internal/utils"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	cfg *config.Config
	log *logrus.Logger
}

func NewHandler(svc *service.Service, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Recommend analyzes the transactions and goals carried in the request body
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	txs, goals, ref, err := req.toModels()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.svc.Recommend(txs, goals, ref, req.BufferSavings)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeReport(w, report)
}

// Report returns the authenticated user's report built from stored data
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	report, ok := h.userReport(w, r)
	if !ok {
		return
	}
	h.writeReport(w, report)
}

// ReportXML is Report rendered as XML
func (h *Handler) ReportXML(w http.ResponseWriter, r *http.Request) {
	report, ok := h.userReport(w, r)
	if !ok {
		return
	}
	body, err := export.ReportXML(report)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set(utils.SignatureHeader, utils.GenerateHMAC(body, h.cfg.HMACSecret))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Healthz reports liveness
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) userReport(w http.ResponseWriter, r *http.Request) (*models.AdvisoryReport, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	var ref time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		var err error
		if ref, err = parseDate(d); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
	}

	report, err := h.svc.UserReport(r.Context(), userID, ref)
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return report, true
}

func (h *Handler) writeReport(w http.ResponseWriter, report *models.AdvisoryReport) {
	body, err := json.Marshal(report)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(utils.SignatureHeader, utils.GenerateHMAC(body, h.cfg.HMACSecret))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// fail maps an error onto an HTTP status
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advisor.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		h.log.Errorf("Request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
