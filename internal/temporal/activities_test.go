package temporal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"review-sentiment-orchestrator/internal/classifier"
	"review-sentiment-orchestrator/internal/domain"
	"review-sentiment-orchestrator/internal/notify"
	"review-sentiment-orchestrator/internal/storage"
)

type fakeReviewStore struct {
	mu      sync.Mutex
	records map[string]domain.ReviewRecord
	putErr  error
	puts    int
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{records: make(map[string]domain.ReviewRecord)}
}

func (f *fakeReviewStore) PutReview(_ context.Context, rec domain.ReviewRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	if _, exists := f.records[rec.ReviewID]; exists {
		return &storage.StoreError{Op: "put", Err: errors.New("duplicate review id")}
	}
	f.records[rec.ReviewID] = rec
	return nil
}

func (f *fakeReviewStore) get(reviewID string) (domain.ReviewRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[reviewID]
	return rec, ok
}

func (f *fakeReviewStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type stubClassifier struct {
	mu     sync.Mutex
	result domain.SentimentResult
	err    error
	calls  []string
}

func (s *stubClassifier) Classify(_ context.Context, text string) (domain.SentimentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	if s.err != nil {
		return domain.SentimentResult{}, s.err
	}
	return s.result, nil
}

type spyNotifier struct {
	mu   sync.Mutex
	err  error
	sent []notify.Notification
}

func (s *spyNotifier) Notify(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.err
}

func (s *spyNotifier) attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type seqIDs struct {
	mu   sync.Mutex
	next int
}

func (s *seqIDs) NewReviewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("01TESTID%018d", s.next)
}

func newTestActivities(c *stubClassifier, store *fakeReviewStore, n *spyNotifier) *Activities {
	return &Activities{
		Classifier: c,
		IDs:        &seqIDs{},
		Store:      store,
		Notifier:   n,
	}
}

func TestDetectSentimentActivityPassesThroughResult(t *testing.T) {
	c := &stubClassifier{result: domain.SentimentResult{Label: domain.SentimentPositive, Score: 0.9}}
	acts := newTestActivities(c, newFakeReviewStore(), &spyNotifier{})

	out, err := acts.DetectSentimentActivity(context.Background(), DetectSentimentInput{ReviewText: "Great service!"})
	require.NoError(t, err)
	require.Equal(t, domain.SentimentPositive, out.Result.Label)
	require.Equal(t, []string{"Great service!"}, c.calls)
}

func TestDetectSentimentActivitySurfacesClassificationError(t *testing.T) {
	c := &stubClassifier{err: &classifier.ClassificationError{Reason: "classifier unavailable"}}
	acts := newTestActivities(c, newFakeReviewStore(), &spyNotifier{})

	_, err := acts.DetectSentimentActivity(context.Background(), DetectSentimentInput{ReviewText: "anything"})
	var cerr *classifier.ClassificationError
	require.ErrorAs(t, err, &cerr)
}

func TestGenerateReviewIDActivityNeverFails(t *testing.T) {
	acts := newTestActivities(&stubClassifier{}, newFakeReviewStore(), &spyNotifier{})

	first, err := acts.GenerateReviewIDActivity(context.Background())
	require.NoError(t, err)
	second, err := acts.GenerateReviewIDActivity(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.ReviewID, second.ReviewID)
}

func TestSaveReviewActivityWritesSingleRecord(t *testing.T) {
	store := newFakeReviewStore()
	acts := newTestActivities(&stubClassifier{}, store, &spyNotifier{})

	err := acts.SaveReviewActivity(context.Background(), SaveReviewInput{
		ReviewID:        "rev-1",
		CustomerMessage: "ok",
		Sentiment:       domain.SentimentNeutral,
	})
	require.NoError(t, err)

	rec, ok := store.get("rev-1")
	require.True(t, ok)
	require.Equal(t, domain.SentimentNeutral, rec.Sentiment)
	require.Equal(t, "ok", rec.CustomerMessage)
	require.False(t, rec.CreatedAt.IsZero())
}

func TestSaveReviewActivitySurfacesStoreError(t *testing.T) {
	store := newFakeReviewStore()
	store.putErr = &storage.StoreError{Op: "put", Err: errors.New("connection reset")}
	acts := newTestActivities(&stubClassifier{}, store, &spyNotifier{})

	err := acts.SaveReviewActivity(context.Background(), SaveReviewInput{ReviewID: "rev-2"})
	var serr *storage.StoreError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 0, store.count())
}

func TestNotifyNegativeReviewActivityComposesMessage(t *testing.T) {
	n := &spyNotifier{}
	acts := newTestActivities(&stubClassifier{}, newFakeReviewStore(), n)

	err := acts.NotifyNegativeReviewActivity(context.Background(), NotifyNegativeReviewInput{
		ReviewID:        "rev-3",
		CustomerMessage: "Terrible, broke immediately",
		Sentiment:       domain.SentimentNegative,
	})
	require.NoError(t, err)
	require.Equal(t, 1, n.attempts())
	require.Equal(t, "rev-3", n.sent[0].ReviewID)
	require.Contains(t, n.sent[0].Message, "NEGATIVE")
	require.Contains(t, n.sent[0].Message, "Terrible, broke immediately")
}
