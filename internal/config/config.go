package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finance-advisor/internal/advisor"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	LogLevel       string
	JWTSecret      string
	HMACSecret     string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
	DigestCron     string
	ReportCacheTTL time.Duration

	HistoryMonths       int
	EMAAlpha            float64
	SoftmaxLambda       float64
	BufferTargetMonths  int
	EssentialCategories []string
}

// NewConfig loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finflow sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		HMACSecret:   getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "25"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "advisor@finflow.local"),
		DigestCron:   getEnv("DIGEST_CRON", "0 8 1 * *"),
	}

	var err error
	if cfg.ReportCacheTTL, err = time.ParseDuration(getEnv("REPORT_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid REPORT_CACHE_TTL: %w", err)
	}
	if cfg.HistoryMonths, err = strconv.Atoi(getEnv("ADVISOR_HISTORY_MONTHS", strconv.Itoa(advisor.DefaultHistoryMonths))); err != nil {
		return nil, fmt.Errorf("invalid ADVISOR_HISTORY_MONTHS: %w", err)
	}
	if cfg.EMAAlpha, err = strconv.ParseFloat(getEnv("ADVISOR_EMA_ALPHA", "0.3"), 64); err != nil {
		return nil, fmt.Errorf("invalid ADVISOR_EMA_ALPHA: %w", err)
	}
	if cfg.SoftmaxLambda, err = strconv.ParseFloat(getEnv("ADVISOR_SOFTMAX_LAMBDA", "2.0"), 64); err != nil {
		return nil, fmt.Errorf("invalid ADVISOR_SOFTMAX_LAMBDA: %w", err)
	}
	if cfg.BufferTargetMonths, err = strconv.Atoi(getEnv("ADVISOR_BUFFER_MONTHS", strconv.Itoa(advisor.DefaultBufferTargetMonths))); err != nil {
		return nil, fmt.Errorf("invalid ADVISOR_BUFFER_MONTHS: %w", err)
	}
	cfg.EssentialCategories = splitList(getEnv("ADVISOR_ESSENTIAL_CATEGORIES", "Rent,Utilities,Groceries,Transport"))

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}
	if _, err := cfg.Advisor(0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Advisor builds the engine configuration for a user holding bufferSavings
// in their emergency fund
func (c *Config) Advisor(bufferSavings float64) (advisor.Config, error) {
	ac := advisor.Config{
		HistoryMonths:       c.HistoryMonths,
		EMAAlpha:            c.EMAAlpha,
		SoftmaxLambda:       c.SoftmaxLambda,
		BufferTargetMonths:  c.BufferTargetMonths,
		EssentialCategories: append([]string(nil), c.EssentialCategories...),
		BufferSavings:       bufferSavings,
	}
	if err := ac.Validate(); err != nil {
		return advisor.Config{}, fmt.Errorf("invalid advisor settings: %w", err)
	}
	return ac, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
