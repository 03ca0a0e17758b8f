package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	ActivityPolicyDetectSentiment      = "detect_sentiment"
	ActivityPolicyGenerateReviewID     = "generate_review_id"
	ActivityPolicySaveReview           = "save_review"
	ActivityPolicyNotifyNegativeReview = "notify_negative_review"
)

type activityPolicy struct {
	StartToCloseTimeout time.Duration
	RetryPolicy         temporal.RetryPolicy
}

// The orchestrator retries no stage: every policy caps attempts at one.
// Retry, if ever added, belongs to the adapters, which must accept
// at-most-once persistence and at-least-once notification.
var activityPolicies = map[string]activityPolicy{
	ActivityPolicyDetectSentiment: {
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	},
	ActivityPolicyGenerateReviewID: {
		StartToCloseTimeout: 5 * time.Second,
		RetryPolicy: temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	},
	ActivityPolicySaveReview: {
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	},
	ActivityPolicyNotifyNegativeReview: {
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	},
}

func ActivityOptionsFor(policyName string) (workflow.ActivityOptions, error) {
	policy, ok := activityPolicies[policyName]
	if !ok {
		return workflow.ActivityOptions{}, fmt.Errorf("unknown activity policy: %s", policyName)
	}

	retry := policy.RetryPolicy
	return workflow.ActivityOptions{
		StartToCloseTimeout: policy.StartToCloseTimeout,
		RetryPolicy:         &retry,
	}, nil
}

func mustActivityContext(ctx workflow.Context, policyName string) workflow.Context {
	ao, err := ActivityOptionsFor(policyName)
	if err != nil {
		panic(err)
	}
	return workflow.WithActivityOptions(ctx, ao)
}
