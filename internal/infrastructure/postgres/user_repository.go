package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"finmirror/internal/domain/user"
)

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers a new user
func (r *UserRepository) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	query := `
		INSERT INTO users (name, email, tax_id, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, tax_id, password_hash, created_at, updated_at
	`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, params.Name, params.Email, params.TaxID, params.PasswordHash).Scan(
		&u.ID, &u.Name, &u.Email, &u.TaxID, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_email_key":
				return nil, user.ErrEmailTaken
			case "users_tax_id_key":
				return nil, user.ErrTaxIDTaken
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT id, name, email, tax_id, password_hash, created_at, updated_at FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT id, name, email, tax_id, password_hash, created_at, updated_at FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByTaxID retrieves a user by tax id
func (r *UserRepository) GetByTaxID(ctx context.Context, taxID string) (*user.User, error) {
	query := `SELECT id, name, email, tax_id, password_hash, created_at, updated_at FROM users WHERE tax_id = $1`
	return r.getOne(ctx, query, taxID)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.TaxID, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
