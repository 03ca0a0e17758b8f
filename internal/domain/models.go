package domain

import (
	"encoding/json"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentMixed    Sentiment = "MIXED"
)

func ParseSentiment(raw string) (Sentiment, bool) {
	switch Sentiment(raw) {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return Sentiment(raw), true
	default:
		return "", false
	}
}

// ReviewSubmitted is the event payload that triggers one workflow execution.
type ReviewSubmitted struct {
	ReviewText  string    `json:"review_text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SentimentResult is the classifier's output. Raw keeps the unparsed
// classifier response for audit and debugging.
type SentimentResult struct {
	Label Sentiment       `json:"label"`
	Score float64         `json:"score"`
	Raw   json.RawMessage `json:"raw,omitempty"`
}

// ReviewRecord is the authoritative persisted output of one successful
// execution. Written exactly once, keyed by ReviewID, never updated.
type ReviewRecord struct {
	ReviewID        string    `json:"review_id"`
	CustomerMessage string    `json:"customer_message"`
	Sentiment       Sentiment `json:"sentiment"`
	CreatedAt       time.Time `json:"created_at"`
}
