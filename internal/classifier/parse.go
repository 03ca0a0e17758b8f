package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"review-sentiment-orchestrator/internal/domain"
)

type modelOutput struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// ParseSentimentOutput decodes the model's JSON strictly: exactly the keys
// sentiment and score, a label from the closed enum, and a score in [0, 1].
func ParseSentimentOutput(raw string) (domain.SentimentResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.SentimentResult{}, fmt.Errorf("empty model output")
	}

	var out modelOutput
	if err := strictDecode([]byte(trimmed), &out); err != nil {
		return domain.SentimentResult{}, err
	}

	label, ok := domain.ParseSentiment(strings.ToUpper(strings.TrimSpace(out.Sentiment)))
	if !ok {
		return domain.SentimentResult{}, fmt.Errorf("unknown sentiment label %q", out.Sentiment)
	}
	if out.Score < 0 || out.Score > 1 {
		return domain.SentimentResult{}, fmt.Errorf("score %v outside [0, 1]", out.Score)
	}

	return domain.SentimentResult{
		Label: label,
		Score: out.Score,
		Raw:   json.RawMessage(trimmed),
	}, nil
}

func strictDecode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("unexpected trailing data")
	}
	return nil
}
