package usecase

import (
	"context"
	"fmt"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
)

// IdentityUseCase maps verified token claims to durable user records. The
// identity provider is the source of truth: stored email and organization
// follow the claims on every login.
type IdentityUseCase struct {
	users ports.UserRepository
}

func NewIdentityUseCase(users ports.UserRepository) *IdentityUseCase {
	return &IdentityUseCase{users: users}
}

func (uc *IdentityUseCase) ResolveUser(ctx context.Context, claims domain.IdentityClaims) (*domain.User, error) {
	if len(claims.Organizations) > 1 {
		return nil, domain.WrapError(domain.ErrMultiOrgClaim, "resolve user",
			fmt.Errorf("subject %s claims %d organizations", claims.Subject, len(claims.Organizations)))
	}

	organization := ""
	if len(claims.Organizations) == 1 {
		organization = claims.Organizations[0]
	}

	claimed := &domain.User{
		ID:           claims.Subject,
		Email:        claims.Email,
		Organization: organization,
	}

	stored, err := uc.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if !domain.IsKind(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("fetch user: %w", err)
		}
		if err := uc.users.Save(ctx, claimed); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return claimed, nil
	}

	if stored.Email == claimed.Email && stored.Organization == claimed.Organization {
		return stored, nil
	}

	if err := uc.users.Save(ctx, claimed); err != nil {
		return nil, fmt.Errorf("refresh user: %w", err)
	}
	return claimed, nil
}
