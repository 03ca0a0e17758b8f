package main

import (
	"context"
	"log"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"review-sentiment-orchestrator/internal/classifier"
	"review-sentiment-orchestrator/internal/config"
	"review-sentiment-orchestrator/internal/ident"
	"review-sentiment-orchestrator/internal/notify"
	"review-sentiment-orchestrator/internal/storage"
	appTemporal "review-sentiment-orchestrator/internal/temporal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := storage.NewReviewStore(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	llm := classifier.NewHTTPClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	sentiment := classifier.NewOpenAIClassifier(llm, classifier.Config{
		Model:        cfg.OpenAIModel,
		LanguageCode: cfg.ClassifierLanguage,
		Timeout:      time.Duration(cfg.OpenAITimeoutSec) * time.Second,
	})

	notifier := notify.NewWebhookNotifier(notify.Config{
		WebhookURL: cfg.NotifyWebhookURL,
		Sender:     cfg.NotifySender,
		Recipient:  cfg.NotifyRecipient,
		Secret:     cfg.NotifySecret,
	})

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("connect temporal: %v", err)
	}
	defer temporalClient.Close()

	activities := &appTemporal.Activities{
		Classifier: sentiment,
		IDs:        ident.NewGenerator(),
		Store:      store,
		Notifier:   notifier,
	}

	w := worker.New(temporalClient, cfg.TemporalTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(appTemporal.ReviewSentimentWorkflow, workflow.RegisterOptions{Name: appTemporal.ReviewSentimentWorkflowName})
	w.RegisterActivity(activities.DetectSentimentActivity)
	w.RegisterActivity(activities.GenerateReviewIDActivity)
	w.RegisterActivity(activities.SaveReviewActivity)
	w.RegisterActivity(activities.NotifyNegativeReviewActivity)

	log.Printf("worker running on task queue %s", cfg.TemporalTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker stopped with error: %v", err)
	}
}
