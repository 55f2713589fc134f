package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, organization FROM users WHERE id = $1
`, id)
	return scanUser(row, fmt.Sprintf("user %s", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, organization FROM users WHERE email = $1
`, email)
	return scanUser(row, fmt.Sprintf("user with email %s", email))
}

func scanUser(row *sql.Row, what string) (*domain.User, error) {
	var user domain.User
	var organization sql.NullString

	err := row.Scan(&user.ID, &user.Email, &organization)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch user", fmt.Errorf("%s does not exist", what))
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Organization = organization.String
	return &user, nil
}

// Save inserts the user or refreshes email/organization for an existing id.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	organization := sql.NullString{String: user.Organization, Valid: user.Organization != ""}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, email, organization) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, organization = EXCLUDED.organization
`, user.ID, user.Email, organization)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) OrganizationExists(ctx context.Context, organization string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM users WHERE organization = $1)
`, organization).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check organization: %w", err)
	}
	return exists, nil
}
