// Package classifier adapts an external sentiment classification service
// behind a single Classify call. The adapter itself never retries; retry
// policy, if any, belongs to the caller.
package classifier

import (
	"context"
	"fmt"
	"time"

	"review-sentiment-orchestrator/internal/domain"
)

type Classifier interface {
	Classify(ctx context.Context, text string) (domain.SentimentResult, error)
}

// ClassificationError signals upstream unavailability or malformed input.
// It is fatal to the workflow execution that triggered the call.
type ClassificationError struct {
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classification failed: %s", e.Reason)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Config is injected at construction; the adapter reads no ambient
// process state at call time.
type Config struct {
	Model        string
	LanguageCode string
	Timeout      time.Duration
}

type OpenAIClassifier struct {
	client CompletionClient
	cfg    Config
}

func NewOpenAIClassifier(client CompletionClient, cfg Config) *OpenAIClassifier {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIClassifier{client: client, cfg: cfg}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (domain.SentimentResult, error) {
	if err := domain.ValidateReviewText(text); err != nil {
		return domain.SentimentResult{}, &ClassificationError{Reason: "invalid input", Err: err}
	}

	raw, err := c.client.CompleteJSON(ctx, CompletionRequest{
		Model:        c.cfg.Model,
		SystemPrompt: SENTIMENT_SYSTEM,
		UserPrompt:   BuildSentimentUserPrompt(c.cfg.LanguageCode, text),
		Timeout:      c.cfg.Timeout,
	})
	if err != nil {
		return domain.SentimentResult{}, &ClassificationError{Reason: "classifier unavailable", Err: err}
	}

	result, err := ParseSentimentOutput(raw)
	if err != nil {
		return domain.SentimentResult{}, &ClassificationError{
			Reason: fmt.Sprintf("malformed classifier output %q", previewText(raw, 120)),
			Err:    err,
		}
	}
	return result, nil
}
