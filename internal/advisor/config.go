package advisor

import (
	"fmt"
	"math"
)

// Defaults used when the caller does not supply a configuration
const (
	DefaultHistoryMonths      = 12
	DefaultEMAAlpha           = 0.3
	DefaultSoftmaxLambda      = 2.0
	DefaultBufferTargetMonths = 4
)

// Config tunes the advisor. It is a plain value: Analyze never mutates it
// and DefaultConfig hands out a fresh copy on every call.
type Config struct {
	HistoryMonths       int
	EMAAlpha            float64
	SoftmaxLambda       float64
	BufferTargetMonths  int
	EssentialCategories []string
	// BufferSavings is the emergency fund balance the user already holds.
	BufferSavings float64
}

// DefaultConfig returns the stock advisor configuration
func DefaultConfig() Config {
	return Config{
		HistoryMonths:       DefaultHistoryMonths,
		EMAAlpha:            DefaultEMAAlpha,
		SoftmaxLambda:       DefaultSoftmaxLambda,
		BufferTargetMonths:  DefaultBufferTargetMonths,
		EssentialCategories: []string{"Rent", "Utilities", "Groceries", "Transport"},
	}
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	if c.HistoryMonths <= 0 {
		return fmt.Errorf("history months must be positive, got %d", c.HistoryMonths)
	}
	if math.IsNaN(c.EMAAlpha) || c.EMAAlpha <= 0 || c.EMAAlpha > 1 {
		return fmt.Errorf("ema alpha must be in (0, 1], got %v", c.EMAAlpha)
	}
	if !isFinite(c.SoftmaxLambda) || c.SoftmaxLambda < 0 {
		return fmt.Errorf("softmax lambda must be finite and non-negative, got %v", c.SoftmaxLambda)
	}
	if c.BufferTargetMonths < 0 {
		return fmt.Errorf("buffer target months must not be negative, got %d", c.BufferTargetMonths)
	}
	if !isFinite(c.BufferSavings) || c.BufferSavings < 0 {
		return fmt.Errorf("buffer savings must be finite and non-negative, got %v", c.BufferSavings)
	}
	return nil
}

// essentials returns a lookup set for the essential categories
func (c Config) essentials() map[string]struct{} {
	set := make(map[string]struct{}, len(c.EssentialCategories))
	for _, cat := range c.EssentialCategories {
		set[cat] = struct{}{}
	}
	return set
}
