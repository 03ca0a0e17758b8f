// Package notify adapts the outbound notification channel. Delivery is
// best-effort: exactly one dispatch attempt per call, no retry, no dedup.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"review-sentiment-orchestrator/internal/domain"
)

const signatureHeader = "X-Signature"

type Notification struct {
	ReviewID  string           `json:"review_id"`
	Sentiment domain.Sentiment `json:"sentiment"`
	Message   string           `json:"message"`
	Sender    string           `json:"sender"`
	Recipient string           `json:"recipient"`
	SentAt    time.Time        `json:"sent_at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationError is non-fatal to the workflow execution: callers log it
// and keep going.
type NotificationError struct {
	Reason string
	Err    error
}

func (e *NotificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("notification failed: %s", e.Reason)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// Config is injected at construction. Sender and Recipient are fixed per
// deployment; the workflow does not choose addresses.
type Config struct {
	WebhookURL string
	Sender     string
	Recipient  string
	Secret     string
	Timeout    time.Duration
}

type WebhookNotifier struct {
	cfg        Config
	httpClient *http.Client
}

func NewWebhookNotifier(cfg Config) *WebhookNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	if strings.TrimSpace(w.cfg.WebhookURL) == "" {
		return &NotificationError{Reason: "webhook url not configured"}
	}

	n.Sender = w.cfg.Sender
	n.Recipient = w.cfg.Recipient
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}

	body, err := json.Marshal(n)
	if err != nil {
		return &NotificationError{Reason: "marshal payload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return &NotificationError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if sig := signPayload(w.cfg.Secret, body); sig != "" {
		req.Header.Set(signatureHeader, sig)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return &NotificationError{Reason: "dispatch", Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &NotificationError{Reason: fmt.Sprintf("non-2xx response: %d", resp.StatusCode)}
	}
	return nil
}

func signPayload(secret string, payload []byte) string {
	if strings.TrimSpace(secret) == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// ComposeMessage builds the operator-facing notification text from the
// classified sentiment and the original customer message.
func ComposeMessage(sentiment domain.Sentiment, customerMessage string) string {
	return fmt.Sprintf("Review classified as %s: %s", sentiment, customerMessage)
}
