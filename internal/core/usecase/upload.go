package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
)

// UploadUseCase owns the upload lifecycle: creation with entry population,
// access-checked reads and owner-only deletion.
type UploadUseCase struct {
	uploads ports.UploadRepository
	parser  ports.ContentParser
	queue   ports.MessageQueue
	access  *AccessEvaluator
}

func NewUploadUseCase(
	uploads ports.UploadRepository,
	parser ports.ContentParser,
	queue ports.MessageQueue,
	access *AccessEvaluator,
) *UploadUseCase {
	return &UploadUseCase{
		uploads: uploads,
		parser:  parser,
		queue:   queue,
		access:  access,
	}
}

// Create parses the file into entries, persists upload and entries in one
// transaction with status pending, and enqueues the upload id strictly after
// the transaction commits.
func (uc *UploadUseCase) Create(
	ctx context.Context,
	owner *domain.User,
	filename, mimeType string,
	body io.Reader,
) (*domain.Upload, error) {
	format, texts, err := uc.parser.Parse(filename, mimeType, body)
	if err != nil {
		return nil, fmt.Errorf("parse upload content: %w", err)
	}
	if len(texts) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse upload content",
			fmt.Errorf("file %q contains no text", filename))
	}

	upload := &domain.Upload{
		Name:      filename,
		Format:    format,
		Status:    domain.StatusPending,
		CreatedBy: owner.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.uploads.Create(ctx, upload, texts); err != nil {
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	if err := uc.queue.PublishUploadCreated(ctx, upload.ID); err != nil {
		// The row is committed; the upload stays pending until a later
		// dispatch. Surface the failure so the client can retry.
		return nil, fmt.Errorf("enqueue upload %d: %w", upload.ID, err)
	}

	return upload, nil
}

// Get returns the upload with its entries after the access check. A missing
// id is not-found; an existing upload without access is forbidden.
func (uc *UploadUseCase) Get(ctx context.Context, user *domain.User, id int64) (*domain.Upload, error) {
	upload, err := uc.uploads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch upload: %w", err)
	}
	if err := uc.access.CanAccess(ctx, user, upload); err != nil {
		return nil, err
	}
	return upload, nil
}

// List returns summaries of every upload the user owns or has been granted,
// directly or through its organization.
func (uc *UploadUseCase) List(ctx context.Context, user *domain.User) ([]domain.Upload, error) {
	uploads, err := uc.uploads.ListAccessible(ctx, user.ID, user.Organization)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return uploads, nil
}

// Delete removes the upload, its entries and its grants. Only the owner may
// delete; shared access is not enough.
func (uc *UploadUseCase) Delete(ctx context.Context, user *domain.User, id int64) error {
	upload, err := uc.uploads.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch upload: %w", err)
	}
	if upload.CreatedBy != user.ID {
		return domain.WrapError(domain.ErrForbidden, "delete upload",
			fmt.Errorf("user %s does not own upload %d", user.ID, id))
	}
	if err := uc.uploads.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}
