//go:build system

package system_test

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "github.com/lib/pq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.temporal.io/sdk/client"

	"review-sentiment-orchestrator/internal/domain"
	appTemporal "review-sentiment-orchestrator/internal/temporal"
)

const negativeReviewText = "Terrible experience. The package arrived two weeks late, the product was broken, and support never answered my emails."

var _ = Describe("System blackbox happy path", Ordered, func() {
	var repoRoot string
	var cfg systemTestConfig
	var temporalClient client.Client

	BeforeAll(func() {
		if os.Getenv("RUN_BLACKBOX_SYSTEM_TEST") != "1" {
			Skip("set RUN_BLACKBOX_SYSTEM_TEST=1 to run real blackbox system test")
		}

		cfg = loadSystemTestConfig()

		var err error
		repoRoot, err = findRepoRoot()
		Expect(err).ToNot(HaveOccurred())

		By("verifying required docker compose services (including worker and event-handler) are already running")
		Expect(requireComposeServicesRunning(repoRoot, cfg.RequiredComposeServices)).To(Succeed())

		By("failing fast if infrastructure is unreachable")
		Expect(waitForPostgres(cfg.PostgresDSN, cfg.PreflightTimeout)).To(Succeed())
		Expect(waitForTemporal(cfg.TemporalAddress, cfg.TemporalNamespace, cfg.PreflightTimeout)).To(Succeed())
		Expect(waitForHTTPStatus(cfg.MinioReadyURL, 200, cfg.PreflightTimeout)).To(Succeed())
		Expect(waitForHTTPStatus(strings.TrimRight(cfg.APIBaseURL, "/")+cfg.APIHealthPath, 200, cfg.PreflightTimeout)).To(Succeed())
		Expect(waitForHTTPStatus(strings.TrimRight(cfg.APIBaseURL, "/")+cfg.APIReadyPath, 200, cfg.PreflightTimeout)).To(Succeed())
		Expect(waitForWorkerPoller(cfg.TemporalAddress, cfg.TemporalNamespace, cfg.TemporalTaskQueue, cfg.WorkerPollerTimeout)).To(Succeed())

		temporalClient, err = client.Dial(client.Options{
			HostPort:  cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
		})
		Expect(err).ToNot(HaveOccurred())
	})

	AfterAll(func() {
		if temporalClient != nil {
			temporalClient.Close()
		}
	})

	It("submits a review over HTTP and completes the workflow via a real event handler and worker", func() {
		ctx := context.Background()
		apiBaseURL := strings.TrimRight(cfg.APIBaseURL, "/")

		By("submitting a review exactly like a client")
		submitted, err := submitReview(apiBaseURL, negativeReviewText)
		Expect(err).ToNot(HaveOccurred())
		Expect(submitted.EventID).ToNot(BeEmpty())
		Expect(submitted.Status).To(Equal("accepted"))

		By("waiting for the event-triggered workflow to complete")
		workflowID := cfg.WorkflowIDPrefix + "-" + submitted.EventID
		result, err := waitForWorkflowResult(ctx, temporalClient, workflowID, cfg.WorkflowCompletionTimeout, cfg.WorkflowPollInterval)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.State).To(Equal(domain.StateCompleted))
		Expect(result.ReviewID).To(HaveLen(26))
		Expect(result.Sentiment).To(Equal(domain.SentimentNegative))

		By("checking the recorded activity trace")
		trace, err := collectActivityTrace(ctx, temporalClient, workflowID)
		Expect(err).ToNot(HaveOccurred())
		Expect(len(trace.ScheduledOrder)).To(BeNumerically(">=", len(cfg.ExpectedActivityOrder)))
		Expect(trace.ScheduledOrder[:len(cfg.ExpectedActivityOrder)]).To(Equal(cfg.ExpectedActivityOrder))
		Expect(trace.CompletedOrder[:len(cfg.ExpectedActivityOrder)]).To(Equal(cfg.ExpectedActivityOrder))

		detectInput, ok := trace.Inputs["DetectSentimentActivity"].(appTemporal.DetectSentimentInput)
		Expect(ok).To(BeTrue())
		Expect(detectInput.ReviewText).To(Equal(negativeReviewText))

		saveInput, ok := trace.Inputs["SaveReviewActivity"].(appTemporal.SaveReviewInput)
		Expect(ok).To(BeTrue())
		Expect(saveInput.ReviewID).To(Equal(result.ReviewID))
		Expect(saveInput.Sentiment).To(Equal(domain.SentimentNegative))

		By("fetching the persisted review through the query API")
		record, err := getReview(apiBaseURL, result.ReviewID)
		Expect(err).ToNot(HaveOccurred())
		Expect(record.ReviewID).To(Equal(result.ReviewID))
		Expect(record.CustomerMessage).To(Equal(negativeReviewText))
		Expect(record.Sentiment).To(Equal(domain.SentimentNegative))
		Expect(record.CreatedAt.IsZero()).To(BeFalse())

		By("finding the review in the sentiment listing")
		listing, err := listReviews(apiBaseURL, domain.SentimentNegative)
		Expect(err).ToNot(HaveOccurred())
		ids := make([]string, 0, len(listing.Items))
		for _, item := range listing.Items {
			ids = append(ids, item.ReviewID)
		}
		Expect(ids).To(ContainElement(result.ReviewID))

		By("verifying the row landed in postgres")
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		Expect(err).ToNot(HaveOccurred())
		defer db.Close()

		rowIDs, err := fetchStringRows(db, "SELECT review_id FROM reviews WHERE review_id = $1", result.ReviewID)
		Expect(err).ToNot(HaveOccurred())
		Expect(rowIDs).To(Equal([]string{result.ReviewID}))
	})
})
