package repository

import (
	"context"
	"fmt"
)

// Migrate creates the schema the repository reads from when it is missing
func (r *Repository) Migrate(ctx context.Context) error {
	schema := `
	CREATE SCHEMA IF NOT EXISTS finflow;

	CREATE TABLE IF NOT EXISTS finflow.users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		emergency_fund NUMERIC(12, 2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS finflow.transactions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES finflow.users(id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		category TEXT,
		description TEXT,
		recurring BOOLEAN NOT NULL DEFAULT false,
		date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS finflow.goals (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES finflow.users(id) ON DELETE CASCADE,
		goal_name TEXT NOT NULL,
		target_amount DOUBLE PRECISION NOT NULL,
		current_progress DOUBLE PRECISION DEFAULT 0,
		deadline DATE NOT NULL,
		priority SMALLINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON finflow.transactions(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_goals_user ON finflow.goals(user_id);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
