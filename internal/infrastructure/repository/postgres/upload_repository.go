package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create persists the upload row and its entries in one transaction. Entry
// ids are dense, starting at 0, in input order.
func (r *UploadRepository) Create(ctx context.Context, upload *domain.Upload, texts []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	err = tx.QueryRowContext(ctx, `
INSERT INTO uploads (name, format, status, created_by, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, upload.Name, string(upload.Format), string(upload.Status), upload.CreatedBy, upload.CreatedAt).Scan(&upload.ID)
	if err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}

	entries := make([]domain.UploadEntry, 0, len(texts))
	for i, text := range texts {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO upload_entries (upload_id, id, text) VALUES ($1, $2, $3)
`, upload.ID, i, text); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
		entries = append(entries, domain.UploadEntry{UploadID: upload.ID, ID: i, Text: text})
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	upload.Entries = entries
	return nil
}

func (r *UploadRepository) GetByID(ctx context.Context, id int64) (*domain.Upload, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, format, status, created_by, created_at
FROM uploads
WHERE id = $1
`, id)

	var upload domain.Upload
	var format, status string
	err := row.Scan(&upload.ID, &upload.Name, &format, &status, &upload.CreatedBy, &upload.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch upload", fmt.Errorf("upload %d does not exist", id))
		}
		return nil, fmt.Errorf("scan upload: %w", err)
	}
	upload.Format = domain.UploadFormat(format)
	upload.Status = domain.UploadStatus(status)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, text, sentiment
FROM upload_entries
WHERE upload_id = $1
ORDER BY id
`, id)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry := domain.UploadEntry{UploadID: id}
		var sentiment sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Text, &sentiment); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if sentiment.Valid {
			label := domain.Sentiment(sentiment.String)
			entry.Sentiment = &label
		}
		upload.Entries = append(upload.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return &upload, nil
}

// ListAccessible returns summaries of uploads the user owns, has a direct
// grant on, or can reach through an organization grant. An empty
// organization matches nothing.
func (r *UploadRepository) ListAccessible(ctx context.Context, userID, organization string) ([]domain.Upload, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT u.id, u.name, u.format, u.status, u.created_by, u.created_at
FROM uploads u
LEFT JOIN upload_access a ON a.upload_id = u.id
WHERE u.created_by = $1
   OR (a.recipient_type = 'user' AND a.recipient_id = $1)
   OR ($2 <> '' AND a.recipient_type = 'org' AND a.recipient_id = $2)
ORDER BY u.created_at DESC, u.id DESC
`, userID, organization)
	if err != nil {
		return nil, fmt.Errorf("query accessible uploads: %w", err)
	}
	defer rows.Close()

	var uploads []domain.Upload
	for rows.Next() {
		var upload domain.Upload
		var format, status string
		if err := rows.Scan(&upload.ID, &upload.Name, &format, &status, &upload.CreatedBy, &upload.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		upload.Format = domain.UploadFormat(format)
		upload.Status = domain.UploadStatus(status)
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return uploads, nil
}

// Delete removes the upload row; entries and grants go with it through the
// ON DELETE CASCADE constraints.
func (r *UploadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete upload rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete upload", fmt.Errorf("upload %d does not exist", id))
	}
	return nil
}

// MarkProcessing flips pending → processing. The status guard keeps the
// transition monotone under message redelivery; a second delivery is a
// no-op, a missing upload is not-found.
func (r *UploadRepository) MarkProcessing(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE uploads SET status = $2 WHERE id = $1 AND status = $3
`, id, string(domain.StatusProcessing), string(domain.StatusPending))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status rows affected: %w", err)
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM uploads WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check upload: %w", err)
	}
	if !exists {
		return domain.WrapError(domain.ErrNotFound, "mark processing", fmt.Errorf("upload %d does not exist", id))
	}
	return nil
}

// SaveResults writes the per-entry sentiments and the terminal status in one
// transaction. Readers either observe the previous state or all sentiments
// plus the new status; a missing entry aborts the whole transition.
func (r *UploadRepository) SaveResults(
	ctx context.Context,
	id int64,
	sentiments map[int]domain.Sentiment,
	status domain.UploadStatus,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	entryIDs := make([]int, 0, len(sentiments))
	for entryID := range sentiments {
		entryIDs = append(entryIDs, entryID)
	}
	sort.Ints(entryIDs)

	for _, entryID := range entryIDs {
		res, err := tx.ExecContext(ctx, `
UPDATE upload_entries SET sentiment = $3 WHERE upload_id = $1 AND id = $2
`, id, entryID, string(sentiments[entryID]))
		if err != nil {
			return fmt.Errorf("update entry %d: %w", entryID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update entry rows affected: %w", err)
		}
		if affected == 0 {
			return domain.WrapError(domain.ErrNotFound, "save results",
				fmt.Errorf("entry %d of upload %d does not exist", entryID, id))
		}
	}

	res, err := tx.ExecContext(ctx, `
UPDATE uploads SET status = $2 WHERE id = $1 AND status IN ($3, $4)
`, id, string(status), string(domain.StatusPending), string(domain.StatusProcessing))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "save results",
			fmt.Errorf("upload %d does not exist or already finished", id))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
