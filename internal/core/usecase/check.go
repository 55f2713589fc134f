package usecase

import (
	"context"
	"fmt"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
	"github.com/sweetykitty777/sentiment-analyzer/internal/core/ports"
)

const (
	maxCheckTexts      = 10
	maxCheckTextLength = 1000
)

// CheckUseCase classifies texts synchronously with no persistence.
type CheckUseCase struct {
	classifier ports.SentimentClassifier
}

func NewCheckUseCase(classifier ports.SentimentClassifier) *CheckUseCase {
	return &CheckUseCase{classifier: classifier}
}

func (uc *CheckUseCase) Check(ctx context.Context, texts []string) ([]domain.CheckResult, error) {
	if len(texts) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "check sentiment",
			fmt.Errorf("at least one text is required"))
	}
	if len(texts) > maxCheckTexts {
		return nil, domain.WrapError(domain.ErrInvalidInput, "check sentiment",
			fmt.Errorf("at most %d texts per request, got %d", maxCheckTexts, len(texts)))
	}

	results := make([]domain.CheckResult, 0, len(texts))
	for _, text := range texts {
		if len(text) > maxCheckTextLength {
			return nil, domain.WrapError(domain.ErrInvalidInput, "check sentiment",
				fmt.Errorf("text exceeds %d characters", maxCheckTextLength))
		}
		label, err := uc.classifier.Classify(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("classify text: %w", err)
		}
		results = append(results, domain.CheckResult{Text: text, Sentiment: label})
	}
	return results, nil
}
