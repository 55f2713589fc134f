package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
)

// QueueLagObserver records the delay between upload creation and the start
// of its processing.
type QueueLagObserver interface {
	ObserveQueueLag(lag time.Duration)
}

// ProcessUploadUseCase is the worker side of dispatch: it classifies every
// entry of an upload and commits the results together with the terminal
// status. A failed entry leaves already-classified sentiments in place and
// ends the upload in the error status instead of ready.
type ProcessUploadUseCase struct {
	uploads    ports.UploadRepository
	classifier ports.SentimentClassifier
	lag        QueueLagObserver
}

func NewProcessUploadUseCase(
	uploads ports.UploadRepository,
	classifier ports.SentimentClassifier,
	lag QueueLagObserver,
) *ProcessUploadUseCase {
	return &ProcessUploadUseCase{
		uploads:    uploads,
		classifier: classifier,
		lag:        lag,
	}
}

func (uc *ProcessUploadUseCase) ProcessByID(ctx context.Context, uploadID int64) error {
	upload, err := uc.uploads.GetByID(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("fetch upload: %w", err)
	}
	if upload.Status.Terminal() {
		// Redelivered message for an upload that already finished.
		slog.Info("skip_processed_upload", "upload_id", uploadID, "status", upload.Status)
		return nil
	}

	if uc.lag != nil {
		uc.lag.ObserveQueueLag(time.Since(upload.CreatedAt))
	}

	if err := uc.uploads.MarkProcessing(ctx, uploadID); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	sentiments := make(map[int]domain.Sentiment, len(upload.Entries))
	var firstErr error
	for _, entry := range upload.Entries {
		label, err := uc.classifier.Classify(ctx, SanitizeEntryText(entry.Text))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			slog.Error("classify_entry_failed", "upload_id", uploadID, "entry_id", entry.ID, "error", err)
			continue
		}
		sentiments[entry.ID] = label
	}

	status := domain.StatusReady
	if firstErr != nil {
		status = domain.StatusError
	}

	if err := uc.uploads.SaveResults(ctx, uploadID, sentiments, status); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	if firstErr != nil {
		return fmt.Errorf("classify upload %d: %w", uploadID, firstErr)
	}
	return nil
}

// SanitizeEntryText strips code points outside the low ASCII range before
// classification, dropping residual encoding artifacts the model was never
// trained on.
func SanitizeEntryText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}
