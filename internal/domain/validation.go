package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxReviewTextBytes = 4096

// ValidateReviewText enforces the input contract shared by the mutation
// entry point and the classifier adapter: non-empty UTF-8 text within the
// size bound. Language is not validated.
func ValidateReviewText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("review text is empty")
	}
	if len(text) > MaxReviewTextBytes {
		return fmt.Errorf("review text exceeds %d bytes", MaxReviewTextBytes)
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("review text is not valid UTF-8")
	}
	return nil
}
