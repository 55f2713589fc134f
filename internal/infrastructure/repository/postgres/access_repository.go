package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

const uniqueViolationCode = "23505"

type AccessRepository struct {
	db *sql.DB
}

func NewAccessRepository(db *sql.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

// Create inserts a grant. The composite primary key enforces grant
// uniqueness; a duplicate surfaces as a conflict kind.
func (r *AccessRepository) Create(ctx context.Context, grant domain.UploadAccess) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO upload_access (upload_id, recipient_id, recipient_type) VALUES ($1, $2, $3)
`, grant.UploadID, grant.RecipientID, string(grant.RecipientType))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.WrapError(domain.ErrConflict, "insert grant",
				fmt.Errorf("upload %d is already shared with %s", grant.UploadID, grant.RecipientID))
		}
		return fmt.Errorf("insert grant: %w", err)
	}
	return nil
}

func (r *AccessRepository) ListByUpload(ctx context.Context, uploadID int64) ([]domain.UploadAccess, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT upload_id, recipient_id, recipient_type
FROM upload_access
WHERE upload_id = $1
ORDER BY recipient_type, recipient_id
`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("query grants: %w", err)
	}
	defer rows.Close()

	var grants []domain.UploadAccess
	for rows.Next() {
		var grant domain.UploadAccess
		var recipientType string
		if err := rows.Scan(&grant.UploadID, &grant.RecipientID, &recipientType); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grant.RecipientType = domain.RecipientType(recipientType)
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}
	return grants, nil
}

func (r *AccessRepository) HasGrant(
	ctx context.Context,
	uploadID int64,
	recipientID string,
	recipientType domain.RecipientType,
) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM upload_access
	WHERE upload_id = $1 AND recipient_id = $2 AND recipient_type = $3
)
`, uploadID, recipientID, string(recipientType)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check grant: %w", err)
	}
	return exists, nil
}

// Delete removes the matching grant; an absent grant deletes zero rows and
// is not an error.
func (r *AccessRepository) Delete(ctx context.Context, grant domain.UploadAccess) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM upload_access
WHERE upload_id = $1 AND recipient_id = $2 AND recipient_type = $3
`, grant.UploadID, grant.RecipientID, string(grant.RecipientType))
	if err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	return nil
}
