package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"review-sentiment-orchestrator/internal/config"
	"review-sentiment-orchestrator/internal/events"
	appTemporal "review-sentiment-orchestrator/internal/temporal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("connect event bus: %v", err)
	}

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("connect temporal: %v", err)
	}
	defer temporalClient.Close()

	runTimeout := time.Duration(cfg.WorkflowTimeoutSec) * time.Second
	if runTimeout <= 0 {
		runTimeout = appTemporal.DefaultWorkflowTimeout
	}

	bus := events.NewMinioBus(minioClient, cfg.MinioBucket)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("event-handler listening for %s events on bucket=%s", events.DetailTypeReviewSubmitted, cfg.MinioBucket)
	err = bus.Run(ctx, events.DetailTypeReviewSubmitted, func(parent context.Context, env events.Envelope) error {
		ev, err := events.ReviewSubmittedDetail(env)
		if err != nil {
			log.Printf("skipping event %s with invalid detail: %v", env.ID, err)
			return nil
		}

		// The bus is at-least-once: the workflow ID is derived from the
		// envelope ID so redelivery collapses into AlreadyStarted.
		workflowID := fmt.Sprintf("%s-%s", cfg.WorkflowIDPrefix, env.ID)
		execCtx, cancel := context.WithTimeout(parent, 15*time.Second)
		defer cancel()

		_, startErr := temporalClient.ExecuteWorkflow(execCtx, client.StartWorkflowOptions{
			ID:                 workflowID,
			TaskQueue:          cfg.TemporalTaskQueue,
			WorkflowRunTimeout: runTimeout,
		}, appTemporal.ReviewSentimentWorkflowName, appTemporal.WorkflowInput{
			ReviewText:  ev.ReviewText,
			SubmittedAt: ev.SubmittedAt,
		})
		if startErr != nil {
			var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
			if errors.As(startErr, &alreadyStarted) {
				log.Printf("workflow already started for event=%s workflow_id=%s", env.ID, workflowID)
				return nil
			}
			return fmt.Errorf("start workflow for event %s: %w", env.ID, startErr)
		}

		log.Printf("started workflow workflow_id=%s event=%s", workflowID, env.ID)
		return nil
	})
	if err != nil {
		log.Fatalf("event-handler stopped with error: %v", err)
	}
}
