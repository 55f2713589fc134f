package domain

import "fmt"

// Sentiment is one of the five ordinal labels produced by the model.
type Sentiment string

const (
	VeryNegative Sentiment = "VERY_NEGATIVE"
	Negative     Sentiment = "NEGATIVE"
	Neutral      Sentiment = "NEUTRAL"
	Positive     Sentiment = "POSITIVE"
	VeryPositive Sentiment = "VERY_POSITIVE"
)

func ParseSentiment(raw string) (Sentiment, error) {
	switch s := Sentiment(raw); s {
	case VeryNegative, Negative, Neutral, Positive, VeryPositive:
		return s, nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", raw)
	}
}

// CheckResult pairs an input text with its synchronous classification.
type CheckResult struct {
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
}
