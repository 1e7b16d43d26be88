package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

// ErrNotFound is returned when a looked up row does not exist
var ErrNotFound = errors.New("not found")

const (
	defaultCategory = "Other"
	defaultPriority = 3
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO finflow.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, "email = $1", email)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findUser(ctx, "id = $1", id)
}

func (r *Repository) findUser(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, COALESCE(emergency_fund, 0)
		FROM finflow.users
		WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.EmergencyFund)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user with an email address, ordered by id
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, email, created_at, COALESCE(emergency_fund, 0)
		FROM finflow.users
		WHERE email <> ''
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.EmergencyFund); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListTransactions returns a user's income and expense records dated in
// [from, to), oldest first. Stored amounts may be signed; they are returned
// as absolute values with missing categories set to "Other".
func (r *Repository) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT date, amount, type, category, COALESCE(recurring, false)
		FROM finflow.transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3 AND type IN ('income', 'expense')
		ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var (
			tx       models.Transaction
			kind     string
			category sql.NullString
		)
		if err := rows.Scan(&tx.Date, &tx.Amount, &kind, &category, &tx.Recurring); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = models.TransactionKind(kind)
		tx.Amount = math.Abs(tx.Amount)
		tx.Category = defaultCategory
		if category.Valid && category.String != "" {
			tx.Category = category.String
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// ListGoals returns a user's savings goals ordered by id
func (r *Repository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	query := `
		SELECT id, goal_name, target_amount, COALESCE(current_progress, 0), deadline, priority
		FROM finflow.goals
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var (
			g        models.Goal
			priority sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentSavings, &g.Deadline, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.Priority = defaultPriority
		if priority.Valid {
			g.Priority = int(priority.Int64)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}
