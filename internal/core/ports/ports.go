package ports

import (
	"context"
	"io"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	OrganizationExists(ctx context.Context, organization string) (bool, error)
}

type UploadRepository interface {
	// Create persists the upload and one entry per text in a single
	// transaction, assigning the upload id and dense 0-based entry ids.
	Create(ctx context.Context, upload *domain.Upload, texts []string) error
	GetByID(ctx context.Context, id int64) (*domain.Upload, error)
	// ListAccessible returns summaries (no entries) of uploads owned by the
	// user, shared with the user directly, or shared with its organization.
	ListAccessible(ctx context.Context, userID, organization string) ([]domain.Upload, error)
	Delete(ctx context.Context, id int64) error
	// MarkProcessing flips pending → processing; it never regresses a
	// terminal status and is a no-op on redelivery.
	MarkProcessing(ctx context.Context, id int64) error
	// SaveResults writes the given per-entry sentiments and the terminal
	// status in one transaction.
	SaveResults(ctx context.Context, id int64, sentiments map[int]domain.Sentiment, status domain.UploadStatus) error
}

type AccessRepository interface {
	Create(ctx context.Context, grant domain.UploadAccess) error
	ListByUpload(ctx context.Context, uploadID int64) ([]domain.UploadAccess, error)
	HasGrant(ctx context.Context, uploadID int64, recipientID string, recipientType domain.RecipientType) (bool, error)
	// Delete removes the matching grant; deleting an absent grant is not an
	// error.
	Delete(ctx context.Context, grant domain.UploadAccess) error
}

type MessageQueue interface {
	PublishUploadCreated(ctx context.Context, uploadID int64) error
	SubscribeUploadCreated(ctx context.Context, handler func(context.Context, int64) error) error
}

// SentimentClassifier is the external prediction oracle: one text in, one of
// the five labels out.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (domain.Sentiment, error)
}

// ContentParser turns an uploaded file into ordered entry texts. Unsupported
// file types fail with an invalid-input kind before anything is persisted.
type ContentParser interface {
	Parse(filename, mimeType string, r io.Reader) (domain.UploadFormat, []string, error)
}
