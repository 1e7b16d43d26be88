package models

import "time"

// Goal represents a user's savings goal
type Goal struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	TargetAmount   float64   `json:"target_amount"`
	CurrentSavings float64   `json:"current_savings"`
	Deadline       time.Time `json:"deadline"`
	Priority       int       `json:"priority"` // 1..5
}
