package service

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
)

var (
	ErrDuplicateEmail     = errors.New("existing user found with same email address")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation")
)

const publishTimeout = 5 * time.Second

// publish never fails the caller; delivery errors are only logged.
func publish(ctx context.Context, pub mykafka.Publisher, topic, key string, event map[string]any) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event["ts"] = time.Now().UTC().Format(time.RFC3339)
	if err := pub.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_error", "topic", topic, "type", event["type"], "error", err)
	}
}
