package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultHTTPPort           = "8080"
	defaultTemporalAddress    = "localhost:7233"
	defaultTemporalNS         = "default"
	defaultTaskQueue          = "review-sentiment-task-queue"
	defaultOpenAIModel        = "gpt-4o-mini"
	defaultOpenAITimeout      = 20
	defaultClassifierLanguage = "en"
	defaultMinioEndpoint      = "localhost:9000"
	defaultMinioBucket        = "review-events"
	defaultWorkflowTimeout    = 30
)

type Config struct {
	HTTPPort           string
	PostgresDSN        string
	TemporalAddress    string
	TemporalNamespace  string
	TemporalTaskQueue  string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	OpenAITimeoutSec   int
	ClassifierLanguage string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string
	MinioUseSSL        bool
	NotifyWebhookURL   string
	NotifySender       string
	NotifyRecipient    string
	NotifySecret       string
	WorkflowIDPrefix   string
	WorkflowTimeoutSec int
}

func Load() (Config, error) {
	cfg := Config{
		HTTPPort:           getenv("HTTP_PORT", defaultHTTPPort),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		TemporalAddress:    getenv("TEMPORAL_ADDRESS", defaultTemporalAddress),
		TemporalNamespace:  getenv("TEMPORAL_NAMESPACE", defaultTemporalNS),
		TemporalTaskQueue:  getenv("TEMPORAL_TASK_QUEUE", defaultTaskQueue),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getenv("OPENAI_MODEL", defaultOpenAIModel),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		OpenAITimeoutSec:   getenvInt("OPENAI_TIMEOUT_SEC", defaultOpenAITimeout),
		ClassifierLanguage: getenv("CLASSIFIER_LANGUAGE", defaultClassifierLanguage),
		MinioEndpoint:      getenv("MINIO_ENDPOINT", defaultMinioEndpoint),
		MinioAccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:        getenv("MINIO_BUCKET", defaultMinioBucket),
		MinioUseSSL:        getenvBool("MINIO_USE_SSL", false),
		NotifyWebhookURL:   os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifySender:       getenv("NOTIFY_SENDER", "reviews@example.com"),
		NotifyRecipient:    getenv("NOTIFY_RECIPIENT", "support@example.com"),
		NotifySecret:       os.Getenv("NOTIFY_WEBHOOK_SECRET"),
		WorkflowIDPrefix:   getenv("WORKFLOW_ID_PREFIX", "review-sentiment"),
		WorkflowTimeoutSec: getenvInt("WORKFLOW_TIMEOUT_SEC", defaultWorkflowTimeout),
	}

	if cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required")
	}

	return cfg, nil
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
