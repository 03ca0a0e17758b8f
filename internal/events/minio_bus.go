package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

const (
	objectCreatedEvent = "s3:ObjectCreated:*"
	eventObjectPrefix  = "events/"
)

type Handler func(ctx context.Context, env Envelope) error

type Bus interface {
	Publish(ctx context.Context, env Envelope) error
}

type Source interface {
	Run(ctx context.Context, detailType string, handler Handler) error
}

// MinioBus uses a bucket as the event transport: Publish writes one object
// per envelope under events/, and Run consumes object-created
// notifications for that prefix. Delivery is at-least-once; ordering
// across events is not guaranteed.
type MinioBus struct {
	client *minio.Client
	bucket string
}

func NewMinioBus(client *minio.Client, bucket string) *MinioBus {
	return &MinioBus{client: client, bucket: bucket}
}

func (b *MinioBus) Publish(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	objectKey := path.Join(eventObjectPrefix, env.ID+".json")
	_, err = b.client.PutObject(ctx, b.bucket, objectKey, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", env.ID, err)
	}
	return nil
}

// Run dispatches every envelope whose DetailType matches. Non-matching and
// undecodable events are skipped without error; a handler error stops the
// source so the process supervisor can restart from the bus's notion of
// undelivered events.
func (b *MinioBus) Run(ctx context.Context, detailType string, handler Handler) error {
	notificationCh := b.client.ListenBucketNotification(ctx, b.bucket, eventObjectPrefix, ".json", []string{objectCreatedEvent})
	for {
		select {
		case <-ctx.Done():
			return nil
		case info, ok := <-notificationCh:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("bus notification stream closed")
			}
			if info.Err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("bus notification stream error: %w", info.Err)
			}
			for _, record := range info.Records {
				objectKey, err := decodeObjectKey(record.S3.Object.Key)
				if err != nil {
					continue
				}
				env, err := b.fetchEnvelope(ctx, objectKey)
				if err != nil {
					log.Printf("skipping undecodable event object %s: %v", objectKey, err)
					continue
				}
				if env.DetailType != detailType {
					continue
				}
				if err := handler(ctx, env); err != nil {
					return err
				}
			}
		}
	}
}

func (b *MinioBus) fetchEnvelope(ctx context.Context, objectKey string) (Envelope, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return Envelope{}, err
	}
	defer obj.Close()

	data := new(bytes.Buffer)
	if _, err := data.ReadFrom(obj); err != nil {
		return Envelope{}, fmt.Errorf("read event object: %w", err)
	}
	return DecodeEnvelope(data.Bytes())
}

func decodeObjectKey(encoded string) (string, error) {
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		return "", err
	}
	decoded = strings.TrimSpace(decoded)
	if decoded == "" {
		return "", fmt.Errorf("object key is empty")
	}
	return decoded, nil
}
