package usecase

import (
	"context"
	"fmt"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
)

// ShareUseCase manages grants on uploads. Sharing is owner-only; revocation
// additionally allows a user to remove their own grant.
type ShareUseCase struct {
	uploads ports.UploadRepository
	users   ports.UserRepository
	access  ports.AccessRepository
	eval    *AccessEvaluator
}

func NewShareUseCase(
	uploads ports.UploadRepository,
	users ports.UserRepository,
	access ports.AccessRepository,
	eval *AccessEvaluator,
) *ShareUseCase {
	return &ShareUseCase{
		uploads: uploads,
		users:   users,
		access:  access,
		eval:    eval,
	}
}

// Share grants access on the upload. User recipients are addressed by email;
// org recipients by organization id, which must have at least one known
// member. Self-shares and duplicate grants are rejected.
func (uc *ShareUseCase) Share(
	ctx context.Context,
	caller *domain.User,
	uploadID int64,
	recipient string,
	recipientType domain.RecipientType,
) (*domain.UploadAccess, error) {
	if !recipientType.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "share upload",
			fmt.Errorf("unknown recipient type %q", recipientType))
	}

	upload, err := uc.uploads.GetByID(ctx, uploadID)
	if err != nil {
		return nil, fmt.Errorf("fetch upload: %w", err)
	}
	if upload.CreatedBy != caller.ID {
		return nil, domain.WrapError(domain.ErrForbidden, "share upload",
			fmt.Errorf("user %s does not own upload %d", caller.ID, uploadID))
	}

	grant := domain.UploadAccess{
		UploadID:      uploadID,
		RecipientType: recipientType,
	}

	switch recipientType {
	case domain.RecipientUser:
		target, err := uc.users.GetByEmail(ctx, recipient)
		if err != nil {
			return nil, fmt.Errorf("resolve recipient: %w", err)
		}
		if target.ID == caller.ID {
			return nil, domain.WrapError(domain.ErrInvalidInput, "share upload",
				fmt.Errorf("upload %d cannot be shared with its owner", uploadID))
		}
		grant.RecipientID = target.ID
	case domain.RecipientOrg:
		known, err := uc.users.OrganizationExists(ctx, recipient)
		if err != nil {
			return nil, fmt.Errorf("resolve organization: %w", err)
		}
		if !known {
			return nil, domain.WrapError(domain.ErrNotFound, "share upload",
				fmt.Errorf("organization %q has no known members", recipient))
		}
		grant.RecipientID = recipient
	}

	if err := uc.access.Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("create grant: %w", err)
	}
	return &grant, nil
}

// Recipients lists the upload's grants with display names, after the regular
// access check.
func (uc *ShareUseCase) Recipients(ctx context.Context, caller *domain.User, uploadID int64) ([]domain.Recipient, error) {
	upload, err := uc.uploads.GetByID(ctx, uploadID)
	if err != nil {
		return nil, fmt.Errorf("fetch upload: %w", err)
	}
	if err := uc.eval.CanAccess(ctx, caller, upload); err != nil {
		return nil, err
	}

	grants, err := uc.access.ListByUpload(ctx, uploadID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}

	recipients := make([]domain.Recipient, 0, len(grants))
	for _, g := range grants {
		display := g.RecipientID
		if g.RecipientType == domain.RecipientUser {
			user, err := uc.users.GetByID(ctx, g.RecipientID)
			if err == nil {
				display = user.Email
			}
		}
		recipients = append(recipients, domain.Recipient{
			RecipientID:   g.RecipientID,
			RecipientType: g.RecipientType,
			DisplayName:   display,
		})
	}
	return recipients, nil
}

// Unshare removes a grant. User grants may be removed by the owner or by the
// recipient themselves; org grants only by the owner. A missing grant is a
// silent no-op.
func (uc *ShareUseCase) Unshare(
	ctx context.Context,
	caller *domain.User,
	uploadID int64,
	recipientID string,
	recipientType domain.RecipientType,
) error {
	if !recipientType.Valid() {
		return domain.WrapError(domain.ErrInvalidInput, "unshare upload",
			fmt.Errorf("unknown recipient type %q", recipientType))
	}

	upload, err := uc.uploads.GetByID(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("fetch upload: %w", err)
	}

	isOwner := upload.CreatedBy == caller.ID
	selfRevocation := recipientType == domain.RecipientUser && recipientID == caller.ID
	if !isOwner && !selfRevocation {
		return domain.WrapError(domain.ErrForbidden, "unshare upload",
			fmt.Errorf("user %s may not revoke this grant on upload %d", caller.ID, uploadID))
	}

	if err := uc.access.Delete(ctx, domain.UploadAccess{
		UploadID:      uploadID,
		RecipientID:   recipientID,
		RecipientType: recipientType,
	}); err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	return nil
}
