package usecase

import (
	"context"
	"fmt"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
)

// AccessEvaluator decides whether a user may read a given upload. Resolution
// order: ownership, then a direct user grant, then an organization grant.
type AccessEvaluator struct {
	access ports.AccessRepository
}

func NewAccessEvaluator(access ports.AccessRepository) *AccessEvaluator {
	return &AccessEvaluator{access: access}
}

// CanAccess returns nil when access is allowed and a forbidden-kind error
// otherwise. The caller is responsible for the upload existing at all.
func (e *AccessEvaluator) CanAccess(ctx context.Context, user *domain.User, upload *domain.Upload) error {
	if upload.CreatedBy == user.ID {
		return nil
	}

	granted, err := e.access.HasGrant(ctx, upload.ID, user.ID, domain.RecipientUser)
	if err != nil {
		return fmt.Errorf("check user grant: %w", err)
	}
	if granted {
		return nil
	}

	if user.Organization != "" {
		granted, err := e.access.HasGrant(ctx, upload.ID, user.Organization, domain.RecipientOrg)
		if err != nil {
			return fmt.Errorf("check org grant: %w", err)
		}
		if granted {
			return nil
		}
	}

	return domain.WrapError(domain.ErrForbidden, "access upload",
		fmt.Errorf("user %s has no access to upload %d", user.ID, upload.ID))
}
