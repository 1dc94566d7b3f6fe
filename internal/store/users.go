package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mert-izgahi/loomis-app-sub001/internal/search"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrNotFound = errors.New("store: record not found")

// User is the application's own user record. Directory logins map onto it;
// password_hash is only set for the handful of non-directory fallback
// accounts.
type User struct {
	ID           string         `json:"id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	Active       bool           `json:"active"`
	PasswordHash sql.NullString `json:"-"`
	LastLoginAt  sql.NullTime   `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, first_name, last_name, email, role, active, password_hash, last_login_at, created_at"

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Role,
		&user.Active,
		&user.PasswordHash,
		&user.LastLoginAt,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE LOWER(email) = LOWER(?)"
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByAccountName matches the local part of the email against a directory
// account name, for entries whose mail attribute was never populated.
func (r *UserRepository) GetByAccountName(ctx context.Context, accountName string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE LOWER(SUBSTRING_INDEX(email, '@', 1)) = LOWER(?)"
	return scanUser(r.db.QueryRowContext(ctx, query, accountName))
}

func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}

	query := `INSERT INTO users (id, first_name, last_name, email, role, active, password_hash, search_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email,
		user.Role, user.Active, user.PasswordHash, searchName(user))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := "UPDATE users SET last_login_at = NOW() WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := "UPDATE users SET active = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, active, id); err != nil {
		return fmt.Errorf("failed to update active flag: %w", err)
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role string) error {
	if role != RoleAdmin && role != RoleUser {
		return fmt.Errorf("unknown role: %s", role)
	}
	query := "UPDATE users SET role = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, role, id); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// UserCounts feeds the admin stats endpoint.
type UserCounts struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Inactive int `json:"inactive"`
}

func (r *UserRepository) Counts(ctx context.Context) (*UserCounts, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(role = 'admin'), 0),
		COALESCE(SUM(NOT active), 0)
		FROM users`

	var counts UserCounts
	if err := r.db.QueryRowContext(ctx, query).Scan(&counts.Total, &counts.Admins, &counts.Inactive); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &counts, nil
}

// searchName is the folded form the list search matches against. It is
// maintained on every write so lookups stay a plain indexed LIKE.
func searchName(user *User) string {
	return search.Fold(strings.TrimSpace(user.FirstName + " " + user.LastName + " " + user.Email))
}
