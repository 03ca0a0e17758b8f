package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"review-sentiment-orchestrator/internal/domain"
)

const ReviewSentimentWorkflowName = "ReviewSentimentWorkflow"

// DefaultWorkflowTimeout bounds the wall clock of one execution. The
// ingress router sets it as the run timeout at start; exceeding it fails
// the execution and abandons any in-flight activity call.
const DefaultWorkflowTimeout = 30 * time.Second

type WorkflowInput struct {
	ReviewText  string
	SubmittedAt time.Time
}

type WorkflowResult struct {
	ReviewID  string
	Sentiment domain.Sentiment
	State     domain.ExecutionState
}

// ReviewSentimentWorkflow runs the fixed four-stage pipeline for one
// submitted review: classify, generate the review ID, persist, then notify
// when the sentiment is NEGATIVE. Classification and persistence failures
// are fatal; notification failure is logged and swallowed because the
// record is already the durable source of truth. Fatal errors carry the
// originating stage as the application error type.
func ReviewSentimentWorkflow(ctx workflow.Context, input WorkflowInput) (WorkflowResult, error) {
	logger := workflow.GetLogger(ctx)

	state := domain.StateStarted
	if err := workflow.SetQueryHandler(ctx, ExecutionStateQueryName, func() (domain.ExecutionState, error) {
		return state, nil
	}); err != nil {
		return WorkflowResult{}, err
	}

	fail := func(stage domain.ExecutionState, err error) (WorkflowResult, error) {
		state = domain.StateFailed
		return WorkflowResult{State: domain.StateFailed}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("stage %s failed", stage),
			string(stage),
			err,
		)
	}

	state = domain.StateDetectingSentiment
	var detected DetectSentimentOutput
	if err := workflow.ExecuteActivity(
		mustActivityContext(ctx, ActivityPolicyDetectSentiment),
		(*Activities).DetectSentimentActivity,
		DetectSentimentInput{ReviewText: input.ReviewText},
	).Get(ctx, &detected); err != nil {
		return fail(domain.StateDetectingSentiment, err)
	}

	state = domain.StateGeneratingID
	var generated GenerateReviewIDOutput
	if err := workflow.ExecuteActivity(
		mustActivityContext(ctx, ActivityPolicyGenerateReviewID),
		(*Activities).GenerateReviewIDActivity,
	).Get(ctx, &generated); err != nil {
		return fail(domain.StateGeneratingID, err)
	}

	state = domain.StatePersisting
	if err := workflow.ExecuteActivity(
		mustActivityContext(ctx, ActivityPolicySaveReview),
		(*Activities).SaveReviewActivity,
		SaveReviewInput{
			ReviewID:        generated.ReviewID,
			CustomerMessage: input.ReviewText,
			Sentiment:       detected.Result.Label,
		},
	).Get(ctx, nil); err != nil {
		return fail(domain.StatePersisting, err)
	}

	// Pure branch, no side effect.
	state = domain.StateEvaluatingSentiment
	if detected.Result.Label == domain.SentimentNegative {
		state = domain.StateNotifying
		if err := workflow.ExecuteActivity(
			mustActivityContext(ctx, ActivityPolicyNotifyNegativeReview),
			(*Activities).NotifyNegativeReviewActivity,
			NotifyNegativeReviewInput{
				ReviewID:        generated.ReviewID,
				CustomerMessage: input.ReviewText,
				Sentiment:       detected.Result.Label,
			},
		).Get(ctx, nil); err != nil {
			logger.Warn("notification dispatch failed, record is already persisted",
				"review_id", generated.ReviewID, "error", err)
		}
	}

	state = domain.StateCompleted
	return WorkflowResult{
		ReviewID:  generated.ReviewID,
		Sentiment: detected.Result.Label,
		State:     domain.StateCompleted,
	}, nil
}
