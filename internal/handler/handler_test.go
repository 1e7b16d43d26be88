package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/repository"
	"github.com/Dan9191/finance-advisor/internal/service"
	"github.com/Dan9191/finance-advisor/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "jwt-secret",
		HMACSecret:          "hmac-secret",
		ReportCacheTTL:      time.Minute,
		HistoryMonths:       12,
		EMAAlpha:            0.3,
		SoftmaxLambda:       2,
		BufferTargetMonths:  4,
		EssentialCategories: []string{"Rent", "Utilities", "Groceries", "Transport"},
	}
}

func newTestRouter(t *testing.T) (*mux.Router, *service.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := service.NewMockStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := testConfig()

	svc, err := service.NewService(store, logger, cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(svc.Close)
	return NewRouter(NewHandler(svc, cfg, logger), cfg, logger), store
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte("jwt-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + s
}

const recommendBody = `{
	"reference_date": "2025-07-15",
	"transactions": [
		{"date": "2025-05-01", "amount": 3000, "type": "income", "category": "Salary", "recurring": true},
		{"date": "2025-05-03", "amount": -2000, "type": "expense", "category": "Rent"},
		{"date": "2025-06-01", "amount": 3000, "type": "income", "category": "Salary"},
		{"date": "2025-06-03T09:00:00Z", "amount": -2000, "type": "Expense", "category": "Rent"}
	],
	"goals": [
		{"id": 5, "name": "Car", "target_amount": 6000, "deadline": "2026-01-15"}
	],
	"buffer_savings": 8000
}`

func TestRecommend(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/advisor/recommend", strings.NewReader(recommendBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if sig := rec.Header().Get(utils.SignatureHeader); !utils.VerifyHMAC(rec.Body.Bytes(), sig, "hmac-secret") {
		t.Fatalf("signature %q does not match body", sig)
	}

	var report models.AdvisoryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.ReferenceDate != "2025-07-15" || report.Summary.ProjectedBalance != 1000 {
		t.Fatalf("summary = %+v on %s, want balance 1000 on 2025-07-15", report.Summary, report.ReferenceDate)
	}
	if len(report.Goals) != 1 || report.Goals[0].RequiredInstallment != 1000 || report.Goals[0].SuggestedAllocation != 1000 {
		t.Fatalf("goals = %+v, want one goal funded at 1000", report.Goals)
	}
	if report.Buffer.Priority != models.BufferPriorityMet {
		t.Fatalf("buffer = %+v, want met", report.Buffer)
	}
}

func TestRecommendRejectsBadPayloads(t *testing.T) {
	router, _ := newTestRouter(t)
	cases := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing amount", `{"transactions":[{"date":"2025-01-01","type":"income"}]}`},
		{"unknown type", `{"transactions":[{"date":"2025-01-01","amount":5,"type":"transfer"}]}`},
		{"bad date", `{"transactions":[{"date":"01/02/2025","amount":5,"type":"income"}]}`},
		{"missing deadline", `{"goals":[{"id":1,"name":"x","target_amount":10}]}`},
		{"missing target", `{"goals":[{"id":1,"name":"x","deadline":"2026-01-01"}]}`},
		{"bad reference date", `{"reference_date":"tomorrow"}`},
		{"negative buffer savings", `{"buffer_savings":-1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/advisor/recommend", strings.NewReader(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPayloadDefaults(t *testing.T) {
	var req recommendRequest
	body := `{"transactions":[{"date":"2025-01-01","amount":-12.5,"type":"expense"}],
		"goals":[{"id":1,"name":"Trip","target_amount":100,"deadline":"2025-06-01"}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	txs, goals, ref, err := req.toModels()
	if err != nil {
		t.Fatalf("toModels: %v", err)
	}
	if !ref.IsZero() {
		t.Fatalf("reference date = %v, want zero when omitted", ref)
	}
	tx := txs[0]
	if tx.Amount != 12.5 || tx.Category != "Other" || tx.Recurring || tx.Kind != models.KindExpense {
		t.Fatalf("transaction = %+v, want absolute amount and Other category", tx)
	}
	if goals[0].Priority != 3 || goals[0].CurrentSavings != 0 {
		t.Fatalf("goal = %+v, want priority 3 and no savings", goals[0])
	}
}

func TestReportRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/advisor/report", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestReportFromStore(t *testing.T) {
	router, store := newTestRouter(t)
	deadline := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	store.EXPECT().FindUserByID(gomock.Any(), int64(11)).Return(&models.User{ID: 11}, nil)
	store.EXPECT().ListTransactions(gomock.Any(), int64(11), gomock.Any(), gomock.Any()).Return(nil, nil)
	store.EXPECT().ListGoals(gomock.Any(), int64(11)).Return([]models.Goal{
		{ID: 2, Name: "Laptop", TargetAmount: 1000, Deadline: deadline, Priority: 3},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/advisor/report?date=2025-07-15", nil)
	req.Header.Set("Authorization", bearer(t, "11"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report models.AdvisoryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Alerts) != 1 || report.Alerts[0].Type != models.AlertDelayedGoal {
		t.Fatalf("alerts = %+v, want one DelayedGoal", report.Alerts)
	}
}

func TestReportXML(t *testing.T) {
	router, store := newTestRouter(t)

	store.EXPECT().FindUserByID(gomock.Any(), int64(4)).Return(&models.User{ID: 4}, nil)
	store.EXPECT().ListTransactions(gomock.Any(), int64(4), gomock.Any(), gomock.Any()).Return(nil, nil)
	store.EXPECT().ListGoals(gomock.Any(), int64(4)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/advisor/report.xml?date=2025-07-15", nil)
	req.Header.Set("Authorization", bearer(t, "4"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `<AdvisoryReport referenceDate="2025-07-15">`) {
		t.Fatalf("unexpected body:\n%s", rec.Body.String())
	}
}

func TestReportErrors(t *testing.T) {
	router, store := newTestRouter(t)

	store.EXPECT().FindUserByID(gomock.Any(), int64(8)).Return(nil, fmt.Errorf("user %w", repository.ErrNotFound))
	store.EXPECT().FindUserByID(gomock.Any(), int64(9)).Return(nil, errors.New("db down"))

	cases := []struct {
		user   string
		query  string
		status int
	}{
		{"8", "?date=2025-07-15", http.StatusNotFound},
		{"9", "?date=2025-07-15", http.StatusInternalServerError},
		{"9", "?date=15.07.2025", http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/advisor/report"+tc.query, nil)
		req.Header.Set("Authorization", bearer(t, tc.user))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("user %s%s: status = %d, want %d", tc.user, tc.query, rec.Code, tc.status)
		}
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, store := newTestRouter(t)
	store.EXPECT().FindUserByEmail(gomock.Any(), "x@example.com").Return(nil, repository.ErrNotFound)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"email":"x@example.com","password":"nope"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", body))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
