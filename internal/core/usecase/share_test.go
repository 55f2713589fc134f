package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

type shareUsersFake struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	orgs    map[string]bool
}

func (f *shareUsersFake) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "fetch user", errors.New("no row"))
	}
	return user, nil
}

func (f *shareUsersFake) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "fetch user", errors.New("no row"))
	}
	return user, nil
}

func (f *shareUsersFake) Save(context.Context, *domain.User) error {
	return errors.New("not implemented")
}

func (f *shareUsersFake) OrganizationExists(_ context.Context, organization string) (bool, error) {
	return f.orgs[organization], nil
}

type shareAccessFake struct {
	created   []domain.UploadAccess
	createErr error
	listed    []domain.UploadAccess
	deleted   []domain.UploadAccess
}

func (f *shareAccessFake) Create(_ context.Context, grant domain.UploadAccess) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, grant)
	return nil
}

func (f *shareAccessFake) ListByUpload(context.Context, int64) ([]domain.UploadAccess, error) {
	return f.listed, nil
}

func (f *shareAccessFake) HasGrant(context.Context, int64, string, domain.RecipientType) (bool, error) {
	return false, nil
}

func (f *shareAccessFake) Delete(_ context.Context, grant domain.UploadAccess) error {
	f.deleted = append(f.deleted, grant)
	return nil
}

func newShareUseCaseForTest(upload *domain.Upload, users *shareUsersFake, access *shareAccessFake) *ShareUseCase {
	store := &uploadStoreFake{byID: upload}
	return NewShareUseCase(store, users, access, NewAccessEvaluator(access))
}

func TestShareWithUser(t *testing.T) {
	users := &shareUsersFake{byEmail: map[string]*domain.User{
		"bob@example.com": {ID: "bob", Email: "bob@example.com"},
	}}
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	grant, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "bob@example.com", domain.RecipientUser)
	if err != nil {
		t.Fatalf("Share() error = %v", err)
	}
	if grant.RecipientID != "bob" {
		t.Fatalf("expected grant stored under user id, got %s", grant.RecipientID)
	}
	if len(access.created) != 1 {
		t.Fatalf("expected one grant, got %d", len(access.created))
	}
}

func TestShareWithOrganization(t *testing.T) {
	users := &shareUsersFake{orgs: map[string]bool{"acme": true}}
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	grant, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "acme", domain.RecipientOrg)
	if err != nil {
		t.Fatalf("Share() error = %v", err)
	}
	if grant.RecipientID != "acme" || grant.RecipientType != domain.RecipientOrg {
		t.Fatalf("unexpected grant %+v", grant)
	}
}

func TestShareUnknownOrganization(t *testing.T) {
	users := &shareUsersFake{orgs: map[string]bool{}}
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	_, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "ghost-org", domain.RecipientOrg)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShareUnresolvableEmail(t *testing.T) {
	users := &shareUsersFake{byEmail: map[string]*domain.User{}}
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	_, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "ghost@example.com", domain.RecipientUser)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShareWithSelf(t *testing.T) {
	users := &shareUsersFake{byEmail: map[string]*domain.User{
		"alice@example.com": {ID: "alice", Email: "alice@example.com"},
	}}
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	_, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "alice@example.com", domain.RecipientUser)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for self-share, got %v", err)
	}
}

func TestShareNotOwner(t *testing.T) {
	users := &shareUsersFake{byEmail: map[string]*domain.User{
		"bob@example.com": {ID: "bob", Email: "bob@example.com"},
	}}
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	_, err := uc.Share(context.Background(), &domain.User{ID: "carol"}, 7, "bob@example.com", domain.RecipientUser)
	if !domain.IsKind(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestShareDuplicateGrant(t *testing.T) {
	users := &shareUsersFake{byEmail: map[string]*domain.User{
		"bob@example.com": {ID: "bob", Email: "bob@example.com"},
	}}
	access := &shareAccessFake{
		createErr: domain.WrapError(domain.ErrConflict, "create grant", errors.New("duplicate key")),
	}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	_, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "bob@example.com", domain.RecipientUser)
	if !domain.IsKind(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestShareInvalidRecipientType(t *testing.T) {
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, &shareUsersFake{}, &shareAccessFake{})

	_, err := uc.Share(context.Background(), &domain.User{ID: "alice"}, 7, "bob@example.com", domain.RecipientType("group"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRecipientsResolvesUserEmails(t *testing.T) {
	users := &shareUsersFake{byID: map[string]*domain.User{
		"bob": {ID: "bob", Email: "bob@example.com"},
	}}
	access := &shareAccessFake{listed: []domain.UploadAccess{
		{UploadID: 7, RecipientID: "acme", RecipientType: domain.RecipientOrg},
		{UploadID: 7, RecipientID: "bob", RecipientType: domain.RecipientUser},
	}}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, users, access)

	recipients, err := uc.Recipients(context.Background(), &domain.User{ID: "alice"}, 7)
	if err != nil {
		t.Fatalf("Recipients() error = %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(recipients))
	}
	if recipients[0].DisplayName != "acme" {
		t.Fatalf("expected org display name acme, got %s", recipients[0].DisplayName)
	}
	if recipients[1].DisplayName != "bob@example.com" {
		t.Fatalf("expected user display name by email, got %s", recipients[1].DisplayName)
	}
}

func TestUnshareByOwner(t *testing.T) {
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, &shareUsersFake{}, access)

	err := uc.Unshare(context.Background(), &domain.User{ID: "alice"}, 7, "bob", domain.RecipientUser)
	if err != nil {
		t.Fatalf("Unshare() error = %v", err)
	}
	if len(access.deleted) != 1 || access.deleted[0].RecipientID != "bob" {
		t.Fatalf("expected deletion of bob's grant, got %v", access.deleted)
	}
}

func TestUnshareSelfRevocation(t *testing.T) {
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, &shareUsersFake{}, access)

	err := uc.Unshare(context.Background(), &domain.User{ID: "bob"}, 7, "bob", domain.RecipientUser)
	if err != nil {
		t.Fatalf("Unshare() error = %v", err)
	}
	if len(access.deleted) != 1 {
		t.Fatalf("expected one deletion, got %d", len(access.deleted))
	}
}

func TestUnshareOrgGrantRequiresOwner(t *testing.T) {
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, &shareUsersFake{}, access)

	err := uc.Unshare(context.Background(), &domain.User{ID: "bob", Organization: "acme"}, 7, "acme", domain.RecipientOrg)
	if !domain.IsKind(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(access.deleted) != 0 {
		t.Fatalf("expected no deletion, got %v", access.deleted)
	}
}

func TestUnshareStranger(t *testing.T) {
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, &shareUsersFake{}, access)

	err := uc.Unshare(context.Background(), &domain.User{ID: "carol"}, 7, "bob", domain.RecipientUser)
	if !domain.IsKind(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUnshareMissingGrantIsNoOp(t *testing.T) {
	access := &shareAccessFake{}
	uc := newShareUseCaseForTest(&domain.Upload{ID: 7, CreatedBy: "alice"}, &shareUsersFake{}, access)

	if err := uc.Unshare(context.Background(), &domain.User{ID: "alice"}, 7, "nobody", domain.RecipientUser); err != nil {
		t.Fatalf("Unshare() error = %v", err)
	}
}
