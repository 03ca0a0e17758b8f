package classifier

import (
	"fmt"
	"strings"
)

const SENTIMENT_SYSTEM = `You are a customer review sentiment classification engine.
You must output ONLY valid JSON and nothing else.
No markdown. No comments. No extra keys.`

const SENTIMENT_USER_TEMPLATE = `Classify the overall sentiment of the customer review below.

Rules:
- Output JSON only, with exactly these keys: sentiment, score.
- sentiment must be one of: POSITIVE, NEGATIVE, NEUTRAL, MIXED.
- score must be a number between 0 and 1 expressing how confident you are in the label.
- The review is written in language code "{{LANGUAGE}}". Do not translate it.

Review text:
{{REVIEW_TEXT}}

Return JSON only.`

func BuildSentimentUserPrompt(languageCode, reviewText string) string {
	out := SENTIMENT_USER_TEMPLATE
	out = strings.ReplaceAll(out, "{{LANGUAGE}}", languageCode)
	out = strings.ReplaceAll(out, "{{REVIEW_TEXT}}", reviewText)
	return out
}

func previewText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return fmt.Sprintf("%s... (%d bytes)", text[:max], len(text))
}
