package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/finance-advisor/internal/advisor"
	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/dgraph-io/ristretto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -destination=mock_store.go -package=service . Store

// ErrInvalidCredentials is returned by Login for an unknown email or wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

// Store is the persistence the service reads users, transactions and goals from
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error)
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	cache  *ristretto.Cache
	now    func() time.Time
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1e4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	return &Service{store: store, log: log, config: cfg, cache: cache, now: time.Now}, nil
}

// Close releases the report cache
func (s *Service) Close() {
	s.cache.Close()
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Recommend runs the advisor over caller-supplied records. A zero
// referenceDate means today.
func (s *Service) Recommend(txs []models.Transaction, goals []models.Goal, referenceDate time.Time, bufferSavings float64) (*models.AdvisoryReport, error) {
	cfg, err := s.config.Advisor(bufferSavings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", advisor.ErrInvalidInput, err)
	}
	if referenceDate.IsZero() {
		referenceDate = s.now()
	}

	report, err := advisor.Analyze(txs, goals, referenceDate, &cfg)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"transactions": len(txs),
		"goals":        len(goals),
		"alerts":       len(report.Alerts),
		"cuts":         len(report.Cuts),
	}).Debug("Advisory report computed")
	return report, nil
}

// UserReport builds the advisory report for a stored user from their
// transaction history and goals. Reports are cached per user and day.
func (s *Service) UserReport(ctx context.Context, userID int64, referenceDate time.Time) (*models.AdvisoryReport, error) {
	if referenceDate.IsZero() {
		referenceDate = s.now()
	}
	y, m, d := referenceDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	key := fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))
	if cached, ok := s.cache.Get(key); ok {
		if report, ok := cached.(*models.AdvisoryReport); ok {
			s.log.WithField("user_id", userID).Debug("Advisory report served from cache")
			return report, nil
		}
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Load the full months the history window can reach, up to the end of
	// the reference day.
	from := time.Date(y, m-time.Month(s.config.HistoryMonths), 1, 0, 0, 0, 0, time.UTC)
	to := day.AddDate(0, 0, 1)
	txs, err := s.store.ListTransactions(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	report, err := s.Recommend(txs, goals, day, user.EmergencyFund)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze user %d: %w", userID, err)
	}

	s.cache.SetWithTTL(key, report, 1, s.config.ReportCacheTTL)
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    report.ReferenceDate,
		"alerts":  len(report.Alerts),
	}).Info("Advisory report built")
	return report, nil
}

// Users lists every user eligible for the advisory digest
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}
