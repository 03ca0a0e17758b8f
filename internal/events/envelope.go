// Package events carries typed events between the mutation entry point and
// the workflow ingress. The bus is at-least-once with no cross-event
// ordering; consumers must tolerate duplicate delivery.
package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"review-sentiment-orchestrator/internal/domain"
)

const DetailTypeReviewSubmitted = "ReviewSubmitted"

// Envelope wraps an event payload with routing metadata. DetailType is the
// discriminator the ingress router filters on.
type Envelope struct {
	ID         string          `json:"id"`
	DetailType string          `json:"detail_type"`
	Timestamp  time.Time       `json:"timestamp"`
	Detail     json.RawMessage `json:"detail"`
}

// NewReviewSubmittedEnvelope builds the envelope the mutation entry point
// publishes for one submitted review.
func NewReviewSubmittedEnvelope(ev domain.ReviewSubmitted) (Envelope, error) {
	detail, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal review submitted detail: %w", err)
	}
	return Envelope{
		ID:         uuid.NewString(),
		DetailType: DetailTypeReviewSubmitted,
		Timestamp:  time.Now().UTC(),
		Detail:     detail,
	}, nil
}

func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if strings.TrimSpace(env.ID) == "" {
		return Envelope{}, fmt.Errorf("envelope missing id")
	}
	if strings.TrimSpace(env.DetailType) == "" {
		return Envelope{}, fmt.Errorf("envelope missing detail type")
	}
	return env, nil
}

// ReviewSubmittedDetail decodes the envelope payload for a ReviewSubmitted
// event and validates the review text.
func ReviewSubmittedDetail(env Envelope) (domain.ReviewSubmitted, error) {
	if env.DetailType != DetailTypeReviewSubmitted {
		return domain.ReviewSubmitted{}, fmt.Errorf("unexpected detail type %q", env.DetailType)
	}
	var ev domain.ReviewSubmitted
	if err := json.Unmarshal(env.Detail, &ev); err != nil {
		return domain.ReviewSubmitted{}, fmt.Errorf("decode review submitted detail: %w", err)
	}
	if err := domain.ValidateReviewText(ev.ReviewText); err != nil {
		return domain.ReviewSubmitted{}, err
	}
	if ev.SubmittedAt.IsZero() {
		ev.SubmittedAt = env.Timestamp
	}
	return ev, nil
}
