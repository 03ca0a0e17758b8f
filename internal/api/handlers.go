package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"review-sentiment-orchestrator/internal/config"
	"review-sentiment-orchestrator/internal/domain"
	"review-sentiment-orchestrator/internal/events"
	"review-sentiment-orchestrator/internal/storage"
)

type reviewReader interface {
	GetReview(ctx context.Context, reviewID string) (domain.ReviewRecord, error)
	ListReviewsBySentiment(ctx context.Context, sentiment domain.Sentiment) ([]domain.ReviewRecord, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	cfg   config.Config
	store reviewReader
	bus   events.Bus
}

type putReviewRequest struct {
	Message string `json:"message"`
}

type reviewResponse struct {
	ReviewID        string           `json:"review_id"`
	CustomerMessage string           `json:"customer_message"`
	Sentiment       domain.Sentiment `json:"sentiment"`
	CreatedAt       time.Time        `json:"created_at"`
}

func NewHandler(cfg config.Config, store reviewReader, bus events.Bus) *Handler {
	return &Handler{cfg: cfg, store: store, bus: bus}
}

// PutReview publishes a ReviewSubmitted event and returns without waiting
// for the workflow: submission is fire-and-forget, the caller polls the
// read API for the outcome.
func (h *Handler) PutReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req putReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if err := domain.ValidateReviewText(req.Message); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	env, err := events.NewReviewSubmittedEnvelope(domain.ReviewSubmitted{
		ReviewText:  req.Message,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to build event"})
		return
	}
	if err := h.bus.Publish(ctx, env); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to publish event"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"event_id": env.ID,
		"status":   "accepted",
	})
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request, reviewID string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "review not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to fetch review"})
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponse(rec))
}

func (h *Handler) GetReviewsBySentiment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sentiment, ok := domain.ParseSentiment(r.URL.Query().Get("sentiment"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "sentiment must be one of POSITIVE, NEGATIVE, NEUTRAL, MIXED"})
		return
	}

	records, err := h.store.ListReviewsBySentiment(ctx, sentiment)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to list reviews"})
		return
	}

	items := make([]reviewResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toReviewResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func toReviewResponse(rec domain.ReviewRecord) reviewResponse {
	return reviewResponse{
		ReviewID:        rec.ReviewID,
		CustomerMessage: rec.CustomerMessage,
		Sentiment:       rec.Sentiment,
		CreatedAt:       rec.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
