package temporal

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"

	"review-sentiment-orchestrator/internal/classifier"
	"review-sentiment-orchestrator/internal/domain"
	"review-sentiment-orchestrator/internal/notify"
)

type ReviewStore interface {
	PutReview(ctx context.Context, rec domain.ReviewRecord) error
}

type IDGenerator interface {
	NewReviewID() string
}

type Activities struct {
	Classifier classifier.Classifier
	IDs        IDGenerator
	Store      ReviewStore
	Notifier   notify.Notifier
}

type DetectSentimentInput struct {
	ReviewText string
}

type DetectSentimentOutput struct {
	Result domain.SentimentResult
}

type GenerateReviewIDOutput struct {
	ReviewID string
}

type SaveReviewInput struct {
	ReviewID        string
	CustomerMessage string
	Sentiment       domain.Sentiment
}

type NotifyNegativeReviewInput struct {
	ReviewID        string
	CustomerMessage string
	Sentiment       domain.Sentiment
}

func (a *Activities) DetectSentimentActivity(ctx context.Context, input DetectSentimentInput) (DetectSentimentOutput, error) {
	result, err := a.Classifier.Classify(ctx, input.ReviewText)
	if err != nil {
		return DetectSentimentOutput{}, err
	}
	activity.GetLogger(ctx).Info("sentiment detected", "label", result.Label, "score", result.Score)
	return DetectSentimentOutput{Result: result}, nil
}

// GenerateReviewIDActivity cannot fail. Its result is recorded in workflow
// history, so the ID is never regenerated on replay and never retried after
// the record is written.
func (a *Activities) GenerateReviewIDActivity(ctx context.Context) (GenerateReviewIDOutput, error) {
	_ = ctx
	return GenerateReviewIDOutput{ReviewID: a.IDs.NewReviewID()}, nil
}

func (a *Activities) SaveReviewActivity(ctx context.Context, input SaveReviewInput) error {
	return a.Store.PutReview(ctx, domain.ReviewRecord{
		ReviewID:        input.ReviewID,
		CustomerMessage: input.CustomerMessage,
		Sentiment:       input.Sentiment,
		CreatedAt:       time.Now().UTC(),
	})
}

func (a *Activities) NotifyNegativeReviewActivity(ctx context.Context, input NotifyNegativeReviewInput) error {
	return a.Notifier.Notify(ctx, notify.Notification{
		ReviewID:  input.ReviewID,
		Sentiment: input.Sentiment,
		Message:   notify.ComposeMessage(input.Sentiment, input.CustomerMessage),
	})
}
